package models

import (
	"time"

	"hospital-admin-server/internal/lifecycle"
)

// Appointment represents a scheduled visit. Status and cancellation reason
// are only ever written through the lifecycle package; handlers must not set
// them directly.
type Appointment struct {
	BaseModel
	PatientID          string                      `gorm:"size:36;index" json:"patientId"`
	DoctorID           string                      `gorm:"size:36;index" json:"doctorId"`
	DepartmentID       string                      `gorm:"size:36;index" json:"departmentId"`
	ScheduledAt        time.Time                   `json:"scheduledAt"`
	Status             lifecycle.AppointmentStatus `gorm:"size:20;default:'SCHEDULED'" json:"status"`
	Notes              string                      `gorm:"type:text" json:"notes"`
	CancellationReason string                      `gorm:"size:255" json:"cancellationReason,omitempty"`

	// Relations
	Patient    Patient    `gorm:"foreignKey:PatientID" json:"-"`
	Doctor     User       `gorm:"foreignKey:DoctorID" json:"-"`
	Department Department `gorm:"foreignKey:DepartmentID" json:"-"`
}

// ToLifecycle converts the persisted record into the value the lifecycle
// operations decide over.
func (a *Appointment) ToLifecycle() lifecycle.Appointment {
	return lifecycle.Appointment{
		ID:                 a.ID,
		PatientID:          a.PatientID,
		DoctorID:           a.DoctorID,
		DepartmentID:       a.DepartmentID,
		ScheduledAt:        a.ScheduledAt,
		Status:             a.Status,
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

// ApplyLifecycle copies a lifecycle decision result back onto the record.
func (a *Appointment) ApplyLifecycle(lc lifecycle.Appointment) {
	a.ScheduledAt = lc.ScheduledAt
	a.Status = lc.Status
	a.CancellationReason = lc.CancellationReason
	a.UpdatedAt = lc.UpdatedAt
}
