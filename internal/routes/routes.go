package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-admin-server/internal/config"
	"hospital-admin-server/internal/handlers"
	"hospital-admin-server/internal/lifecycle"
	"hospital-admin-server/internal/middleware"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	patientHandler := handlers.NewPatientHandler(db)
	departmentHandler := handlers.NewDepartmentHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db)
	reportHandler := handlers.NewReportHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg)) // Apply JWT authentication middleware
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// User management routes (admin-only except the doctors listing)
		userRoutes := private.Group("/users")
		{
			// Doctors listing is needed by every role that books appointments
			userRoutes.GET("/doctors", userHandler.GetDoctors)

			adminRoutes := userRoutes.Group("")
			adminRoutes.Use(middleware.RoleAuthMiddleware(lifecycle.RoleAdmin))
			{
				adminRoutes.POST("", userHandler.CreateUser)
				adminRoutes.GET("", userHandler.GetUsers)
				adminRoutes.GET("/:id", userHandler.GetUserByID)
				adminRoutes.PUT("/:id", userHandler.UpdateUser)
				adminRoutes.DELETE("/:id", userHandler.DeleteUser)
			}
		}

		// Patient registry routes
		patientRoutes := private.Group("/patients")
		{
			patientRoutes.GET("", patientHandler.GetPatients)
			patientRoutes.GET("/:id", patientHandler.GetPatientByID)

			staffRoutes := patientRoutes.Group("")
			staffRoutes.Use(middleware.RoleAuthMiddleware(lifecycle.RoleAdmin, lifecycle.RoleHelpdesk))
			{
				staffRoutes.POST("", patientHandler.CreatePatient)
				staffRoutes.PUT("/:id", patientHandler.UpdatePatient)
			}
			patientRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(lifecycle.RoleAdmin), patientHandler.DeletePatient)
		}

		// Department routes (reads for everyone, writes for admins)
		departmentRoutes := private.Group("/departments")
		{
			departmentRoutes.GET("", departmentHandler.GetDepartments)
			departmentRoutes.GET("/:id", departmentHandler.GetDepartmentByID)

			adminDeptRoutes := departmentRoutes.Group("")
			adminDeptRoutes.Use(middleware.RoleAuthMiddleware(lifecycle.RoleAdmin))
			{
				adminDeptRoutes.POST("", departmentHandler.CreateDepartment)
				adminDeptRoutes.PUT("/:id", departmentHandler.UpdateDepartment)
				adminDeptRoutes.DELETE("/:id", departmentHandler.DeleteDepartment)
			}
		}

		// Appointment routes, staff only. Status, cancel and reschedule all
		// funnel through the lifecycle rules; doctors are further restricted
		// to their own appointments when a single appointment is loaded.
		appointmentRoutes := private.Group("/appointments")
		appointmentRoutes.Use(middleware.RoleAuthMiddleware(lifecycle.RoleAdmin, lifecycle.RoleHelpdesk, lifecycle.RoleDoctor))
		{
			appointmentRoutes.POST("", appointmentHandler.CreateAppointment)
			appointmentRoutes.GET("", appointmentHandler.GetAppointments)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)
			appointmentRoutes.GET("/:id/transitions", appointmentHandler.GetAppointmentTransitions)
			appointmentRoutes.GET("/:id/history", appointmentHandler.GetAppointmentHistory)
			appointmentRoutes.PUT("/:id/status/:status", appointmentHandler.UpdateAppointmentStatus)
			appointmentRoutes.PUT("/:id/cancel", appointmentHandler.CancelAppointment)
			appointmentRoutes.PUT("/:id/reschedule", appointmentHandler.RescheduleAppointment)
			appointmentRoutes.PATCH("/:id/notes", appointmentHandler.UpdateAppointmentNotes)
		}

		// Dashboard reports
		reportRoutes := private.Group("/reports")
		{
			reportRoutes.GET("/summary", reportHandler.GetSummary)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
