package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-admin-server/internal/models"
	"hospital-admin-server/internal/utils"
)

// PatientHandler handles patient registry requests.
type PatientHandler struct {
	DB *gorm.DB
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{DB: db}
}

// PatientRequest represents the request body for creating or updating a patient.
type PatientRequest struct {
	FirstName   string     `json:"firstName" binding:"required"`
	LastName    string     `json:"lastName" binding:"required"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	PhoneNumber string     `json:"phoneNumber"`
	Address     string     `json:"address"`
}

// CreatePatient handles registering a new patient record.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req PatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patient := models.Patient{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	}

	if err := h.DB.Create(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to create patient: "+err.Error())
		return
	}

	utils.Created(c, "Patient created successfully", patient)
}

// GetPatients handles fetching all patient records.
func (h *PatientHandler) GetPatients(c *gin.Context) {
	query := h.DB.Order("last_name asc, first_name asc")
	if name := c.Query("name"); name != "" {
		like := "%" + name + "%"
		query = query.Where("first_name LIKE ? OR last_name LIKE ?", like, like)
	}

	var patients []models.Patient
	if err := query.Find(&patients).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch patients: "+err.Error())
		return
	}

	utils.Success(c, "Patients fetched successfully", patients)
}

// GetPatientByID handles fetching a single patient record.
func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Patient fetched successfully", patient)
}

// UpdatePatient handles updating a patient record.
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	var req PatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	patient.FirstName = req.FirstName
	patient.LastName = req.LastName
	patient.DateOfBirth = req.DateOfBirth
	patient.PhoneNumber = req.PhoneNumber
	patient.Address = req.Address

	if err := h.DB.Save(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to update patient: "+err.Error())
		return
	}

	utils.Success(c, "Patient updated successfully", patient)
}

// DeletePatient handles deleting a patient record (admin only).
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	// Refuse to delete a patient with appointments on file; the audit trail
	// must stay intact.
	var count int64
	if err := h.DB.Model(&models.Appointment{}).Where("patient_id = ?", patient.ID).Count(&count).Error; err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}
	if count > 0 {
		utils.BadRequest(c, "Cannot delete a patient with existing appointments")
		return
	}

	if err := h.DB.Delete(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete patient: "+err.Error())
		return
	}

	utils.Success(c, "Patient deleted successfully", nil)
}
