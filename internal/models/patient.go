package models

import (
	"time"
)

// Patient represents a patient record managed by the admin workflows. It is
// a registry entry, not a login account; a patient may additionally have a
// User account with the patient role.
type Patient struct {
	BaseModel
	FirstName   string     `gorm:"size:100;not null" json:"firstName"`
	LastName    string     `gorm:"size:100;not null" json:"lastName"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	PhoneNumber string     `json:"phoneNumber,omitempty"`
	Address     string     `gorm:"size:255" json:"address,omitempty"`

	// Relations
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"-"`
}
