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

// ReportHandler computes the dashboard summaries shown on the admin home
// screen. Doctors get figures scoped to their own schedule.
type ReportHandler struct {
	DB *gorm.DB
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{DB: db}
}

// AppointmentSummary is the dashboard payload.
type AppointmentSummary struct {
	GeneratedAt       time.Time                             `json:"generatedAt"`
	TotalAppointments int64                                 `json:"totalAppointments"`
	AppointmentsToday int64                                 `json:"appointmentsToday"`
	AppointmentsWeek  int64                                 `json:"appointmentsThisWeek"`
	ByStatus          map[lifecycle.AppointmentStatus]int64 `json:"byStatus"`
	ByDepartment      []DepartmentLoad                      `json:"byDepartment"`
}

// DepartmentLoad is the appointment count for one department.
type DepartmentLoad struct {
	DepartmentID   string `json:"departmentId"`
	DepartmentName string `json:"departmentName"`
	Appointments   int64  `json:"appointments"`
}

// GetSummary handles the dashboard summary report.
func (h *ReportHandler) GetSummary(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)

	scoped := func() *gorm.DB {
		q := h.DB.Model(&models.Appointment{})
		if userRole == lifecycle.RoleDoctor {
			q = q.Where("doctor_id = ?", userID)
		}
		return q
	}

	now := time.Now()
	summary := AppointmentSummary{
		GeneratedAt: now,
		ByStatus:    make(map[lifecycle.AppointmentStatus]int64, len(lifecycle.AllStatuses)),
	}

	if err := scoped().Count(&summary.TotalAppointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to count appointments: "+err.Error())
		return
	}

	dayStart, weekStart := reportWindows(now)
	if err := scoped().Where("scheduled_at >= ? AND scheduled_at < ?", dayStart, dayStart.AddDate(0, 0, 1)).
		Count(&summary.AppointmentsToday).Error; err != nil {
		utils.InternalServerError(c, "Failed to count today's appointments: "+err.Error())
		return
	}
	if err := scoped().Where("scheduled_at >= ?", weekStart).Count(&summary.AppointmentsWeek).Error; err != nil {
		utils.InternalServerError(c, "Failed to count this week's appointments: "+err.Error())
		return
	}

	for _, status := range lifecycle.AllStatuses {
		var count int64
		if err := scoped().Where("status = ?", status).Count(&count).Error; err != nil {
			utils.InternalServerError(c, "Failed to count appointments by status: "+err.Error())
			return
		}
		summary.ByStatus[status] = count
	}

	// Per-department load is an admin/helpdesk view; doctors belong to one
	// department anyway.
	if userRole != lifecycle.RoleDoctor {
		rows := []DepartmentLoad{}
		err := h.DB.Model(&models.Appointment{}).
			Select("appointments.department_id as department_id, departments.name as department_name, count(*) as appointments").
			Joins("JOIN departments ON departments.id = appointments.department_id").
			Group("appointments.department_id, departments.name").
			Order("appointments desc").
			Scan(&rows).Error
		if err != nil {
			utils.InternalServerError(c, "Failed to count appointments by department: "+err.Error())
			return
		}
		summary.ByDepartment = rows
	}

	utils.Success(c, "Summary report generated successfully", summary)
}

// reportWindows returns the start of the day and the start of the calendar
// week (Sunday) containing t, in t's location.
func reportWindows(t time.Time) (dayStart, weekStart time.Time) {
	dayStart = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	weekStart = dayStart.AddDate(0, 0, -int(t.Weekday()))
	return dayStart, weekStart
}
