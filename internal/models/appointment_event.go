package models

import (
	"hospital-admin-server/internal/lifecycle"
)

// AppointmentEvent is an append-only audit record written for every status
// mutation, so "moved the appointment" is always distinguishable from
// "edited a note". Rows are never updated or deleted.
type AppointmentEvent struct {
	BaseModel
	AppointmentID string                      `gorm:"size:36;index" json:"appointmentId"`
	FromStatus    lifecycle.AppointmentStatus `gorm:"size:20" json:"fromStatus"`
	ToStatus      lifecycle.AppointmentStatus `gorm:"size:20" json:"toStatus"`
	ActorID       string                      `gorm:"size:36" json:"actorId"`
	ActorRole     lifecycle.ActorRole         `gorm:"size:20" json:"actorRole"`
	Reason        string                      `gorm:"size:255" json:"reason,omitempty"`

	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
}
