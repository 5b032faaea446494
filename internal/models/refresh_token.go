package models

import (
	"time"
)

// RefreshToken is a stored refresh token. Tokens are rotated on every
// refresh: the old row is revoked and a new one created.
type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"size:36;index" json:"userId"`
	Token     string    `gorm:"type:text;not null" json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsRevoked bool      `gorm:"default:false" json:"isRevoked"`

	// Define the relationship to User
	User User `gorm:"foreignKey:UserID" json:"-"`
}
