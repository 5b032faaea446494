package models

// Department represents a hospital department (cardiology, radiology, ...).
type Department struct {
	BaseModel
	Name        string `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`

	// Relations
	Doctors      []User        `gorm:"foreignKey:DepartmentID" json:"-"`
	Appointments []Appointment `gorm:"foreignKey:DepartmentID" json:"-"`
}
