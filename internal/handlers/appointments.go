package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-admin-server/internal/lifecycle"
	"hospital-admin-server/internal/middleware"
	"hospital-admin-server/internal/models"
	"hospital-admin-server/internal/utils"
)

// AppointmentHandler handles appointment related requests. Every status
// decision is delegated to the lifecycle package; this handler only loads
// state, persists lifecycle results and maps errors to HTTP responses.
type AppointmentHandler struct {
	DB *gorm.DB
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB) *AppointmentHandler {
	return &AppointmentHandler{DB: db}
}

// CreateAppointmentRequest represents the request body for creating an appointment.
type CreateAppointmentRequest struct {
	PatientID    string    `json:"patientId" binding:"required,uuid"`
	DoctorID     string    `json:"doctorId" binding:"required,uuid"`
	DepartmentID string    `json:"departmentId" binding:"required,uuid"`
	ScheduledAt  time.Time `json:"scheduledAt" binding:"required"`
	Notes        string    `json:"notes"`
}

// CreateAppointment handles creating a new appointment. New appointments
// always start in SCHEDULED; there is no way to create one in another status.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	// Verify doctor exists and is a doctor
	var doctor models.User
	if err := h.DB.Where("id = ? AND role = ?", req.DoctorID, lifecycle.RoleDoctor).First(&doctor).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found or user is not a doctor")
		} else {
			utils.InternalServerError(c, "Database error verifying doctor: "+err.Error())
		}
		return
	}
	// Verify patient record exists
	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", req.PatientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error verifying patient: "+err.Error())
		}
		return
	}
	// Verify department exists
	var department models.Department
	if err := h.DB.First(&department, "id = ?", req.DepartmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Department not found")
		} else {
			utils.InternalServerError(c, "Database error verifying department: "+err.Error())
		}
		return
	}

	if !req.ScheduledAt.After(time.Now()) {
		utils.BadRequest(c, "Appointment date must be in the future.")
		return
	}

	appointment := models.Appointment{
		PatientID:    req.PatientID,
		DoctorID:     req.DoctorID,
		DepartmentID: req.DepartmentID,
		ScheduledAt:  req.ScheduledAt,
		Notes:        req.Notes,
		Status:       lifecycle.StatusScheduled,
	}

	if err := h.DB.Create(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		return
	}

	utils.Created(c, "Appointment created successfully", appointment)
}

// GetAppointments handles fetching appointments for the logged-in user.
// Doctors see their own schedule; admin and helpdesk see everything, with
// optional filters.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	_, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)

	query := h.DB.Order("scheduled_at asc")

	switch userRole {
	case lifecycle.RoleDoctor:
		userID, _ := middleware.GetUserIDFromContext(c)
		query = query.Where("doctor_id = ?", userID)
	case lifecycle.RoleAdmin, lifecycle.RoleHelpdesk:
		if doctorID := c.Query("doctorId"); doctorID != "" {
			query = query.Where("doctor_id = ?", doctorID)
		}
		if patientID := c.Query("patientId"); patientID != "" {
			query = query.Where("patient_id = ?", patientID)
		}
		if departmentID := c.Query("departmentId"); departmentID != "" {
			query = query.Where("department_id = ?", departmentID)
		}
	default:
		utils.Forbidden(c, "User role not permitted to view appointments")
		return
	}

	if status := c.Query("status"); status != "" {
		if !lifecycle.IsValidStatus(lifecycle.AppointmentStatus(status)) {
			utils.BadRequest(c, "Unknown appointment status: "+status)
			return
		}
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetAppointmentByID handles fetching a single appointment by its ID.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointment, ok := h.loadAppointment(c)
	if !ok {
		return
	}

	utils.Success(c, "Appointment fetched successfully", appointment)
}

// GetAppointmentTransitions returns the status values the requesting actor
// may move this appointment to. The UI renders exactly this set; the current
// status is always included.
func (h *AppointmentHandler) GetAppointmentTransitions(c *gin.Context) {
	appointment, ok := h.loadAppointment(c)
	if !ok {
		return
	}

	userRole, _ := middleware.GetUserRoleFromContext(c)
	transitions := lifecycle.ListAvailableTransitions(appointment.Status, userRole)

	utils.Success(c, "Available transitions fetched successfully", gin.H{
		"status":      appointment.Status,
		"transitions": transitions,
	})
}

// UpdateAppointmentStatus moves an appointment to the status named in the
// URL, if the lifecycle rules allow the requesting role to do so.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	requested := lifecycle.AppointmentStatus(c.Param("status"))
	if !lifecycle.IsValidStatus(requested) {
		utils.BadRequest(c, "Unknown appointment status: "+c.Param("status"))
		return
	}

	appointment, ok := h.loadAppointment(c)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	updated, err := lifecycle.ApplyStatusChange(appointment.ToLifecycle(), requested, userRole)
	if err != nil {
		utils.LifecycleError(c, err)
		return
	}

	h.persistTransition(c, &appointment, updated, userID, userRole, "")
}

// CancelAppointmentRequest represents the request body for cancelling an appointment.
type CancelAppointmentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CancelAppointment cancels an appointment with a mandatory reason.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	var req CancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// An absent reason is a lifecycle error, not a binding error, so the
		// client gets the same answer for {} and {"reason": ""}.
		req.Reason = ""
	}

	appointment, ok := h.loadAppointment(c)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	updated, err := lifecycle.Cancel(appointment.ToLifecycle(), req.Reason, userRole)
	if err != nil {
		utils.LifecycleError(c, err)
		return
	}

	h.persistTransition(c, &appointment, updated, userID, userRole, req.Reason)
}

// RescheduleAppointmentRequest represents the request body for rescheduling an appointment.
type RescheduleAppointmentRequest struct {
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
}

// RescheduleAppointment moves an appointment to a new future time and
// returns it to SCHEDULED.
func (h *AppointmentHandler) RescheduleAppointment(c *gin.Context) {
	var req RescheduleAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment, ok := h.loadAppointment(c)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	updated, err := lifecycle.Reschedule(appointment.ToLifecycle(), req.ScheduledAt, userRole)
	if err != nil {
		utils.LifecycleError(c, err)
		return
	}

	h.persistTransition(c, &appointment, updated, userID, userRole, "")
}

// UpdateAppointmentNotesRequest represents the request body for updating notes.
type UpdateAppointmentNotesRequest struct {
	Notes string `json:"notes" binding:"required"`
}

// UpdateAppointmentNotes edits the free-text notes. Notes are mutable
// independent of status, including on completed or cancelled appointments
// (administrative corrections), and this endpoint never touches status.
func (h *AppointmentHandler) UpdateAppointmentNotes(c *gin.Context) {
	var req UpdateAppointmentNotesRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment, ok := h.loadAppointment(c)
	if !ok {
		return
	}

	if err := h.DB.Model(&appointment).Update("notes", req.Notes).Error; err != nil {
		utils.InternalServerError(c, "Failed to update notes: "+err.Error())
		return
	}

	utils.Success(c, "Appointment notes updated successfully", appointment)
}

// loadAppointment fetches the appointment named by the :id URL parameter and
// checks that the requesting user may act on it: admins and help desk staff
// see every appointment, doctors only their own. It writes the error response
// itself when it cannot.
func (h *AppointmentHandler) loadAppointment(c *gin.Context) (models.Appointment, bool) {
	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return models.Appointment{}, false
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	switch userRole {
	case lifecycle.RoleAdmin, lifecycle.RoleHelpdesk:
	case lifecycle.RoleDoctor:
		if appointment.DoctorID != userID {
			utils.Forbidden(c, "Doctors can only access their own appointments")
			return models.Appointment{}, false
		}
	default:
		utils.Forbidden(c, "Access denied")
		return models.Appointment{}, false
	}

	return appointment, true
}

// persistTransition writes a lifecycle decision to the database: a
// conditional update keyed on the updated_at snapshot (optimistic
// concurrency) plus an audit event row, in one transaction. Zero rows
// updated means another actor changed the appointment after our snapshot was
// read; the client gets a 409 and must re-fetch before deciding again.
func (h *AppointmentHandler) persistTransition(c *gin.Context, appointment *models.Appointment, updated lifecycle.Appointment, actorID string, actorRole lifecycle.ActorRole, reason string) {
	fromStatus := appointment.Status

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Appointment{}).
			Where("id = ? AND updated_at = ?", appointment.ID, appointment.UpdatedAt).
			Updates(map[string]interface{}{
				"status":              updated.Status,
				"scheduled_at":        updated.ScheduledAt,
				"cancellation_reason": updated.CancellationReason,
				"updated_at":          updated.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		event := models.AppointmentEvent{
			AppointmentID: appointment.ID,
			FromStatus:    fromStatus,
			ToStatus:      updated.Status,
			ActorID:       actorID,
			ActorRole:     actorRole,
			Reason:        reason,
		}
		return tx.Create(&event).Error
	})

	if err == gorm.ErrRecordNotFound {
		utils.Conflict(c, "Appointment was modified by someone else; refresh and try again")
		return
	}
	if err != nil {
		utils.InternalServerError(c, "Failed to update appointment: "+err.Error())
		return
	}

	appointment.ApplyLifecycle(updated)
	utils.Success(c, "Appointment updated successfully", appointment)
}

// GetAppointmentHistory returns the audit trail of status changes for an
// appointment, oldest first.
func (h *AppointmentHandler) GetAppointmentHistory(c *gin.Context) {
	appointment, ok := h.loadAppointment(c)
	if !ok {
		return
	}

	var events []models.AppointmentEvent
	if err := h.DB.Where("appointment_id = ?", appointment.ID).Order("created_at asc").Find(&events).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointment history: "+err.Error())
		return
	}

	utils.Success(c, "Appointment history fetched successfully", events)
}
