package router

import (
	"log"
	"time"

	"physiohub/config"
	"physiohub/internal/domain"
	"physiohub/internal/handler"
	"physiohub/internal/middleware"
	"physiohub/internal/repository"
	"physiohub/internal/service"
	"physiohub/internal/ws"
	"physiohub/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	// Skip gin.Logger() to reduce log noise; use gin.Default() if you need request logging
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	therapistRepo := repository.NewTherapistRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	treatmentRepo := repository.NewTreatmentRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	locRepo := repository.NewLocationRepository(db)
	presenceRepo := repository.NewPresenceRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	mapHub := ws.NewMapHub()

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	fcmSvc := service.NewFCMService(cfg.Firebase.ServiceAccountPath)
	if fcmSvc != nil {
		log.Printf("[FCM] Push notifications enabled")
	} else if cfg.Firebase.ServiceAccountPath != "" {
		log.Printf("[FCM] Push notifications disabled: failed to init (check service account file)")
	} else {
		log.Printf("[FCM] Push notifications disabled: set FIREBASE_SERVICE_ACCOUNT_PATH to enable")
	}
	notifSvc := service.NewNotificationService(notificationRepo, userRepo, fcmSvc)
	reminderSvc, err := service.NewReminderService(appointmentRepo, notifSvc)
	if err != nil {
		log.Printf("[reminder] scheduler init failed: %v", err)
	} else if err := reminderSvc.Start(); err != nil {
		log.Printf("[reminder] scheduler start failed: %v", err)
	}

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc, presenceRepo, auditRepo, patientRepo)
	googleOAuthHandler := handler.NewGoogleOAuthHandler(cfg, authSvc, auditRepo, patientRepo)
	adminHandler := handler.NewAdminHandler(adminRepo, userRepo, therapistRepo, treatmentRepo, sessionRepo, auditRepo, authSvc)
	therapistHandler := handler.NewTherapistHandler(therapistRepo, patientRepo, appointmentRepo, feedbackRepo)
	patientHandler := handler.NewPatientHandler(patientRepo, therapistRepo, treatmentRepo, sessionRepo)
	treatmentHandler := handler.NewTreatmentHandler(treatmentRepo, patientRepo, therapistRepo)
	appointmentHandler := handler.NewAppointmentHandler(cfg, appointmentRepo, patientRepo, therapistRepo, treatmentRepo, notifSvc)
	attendanceHandler := handler.NewAttendanceHandler(appointmentRepo, sessionRepo, treatmentRepo, therapistRepo)
	analyticsHandler := handler.NewAnalyticsHandler(sessionRepo, therapistRepo)
	mapHandler := handler.NewMapHandler(cfg, locRepo, presenceRepo, userRepo, therapistRepo, patientRepo, mapHub, notifSvc)
	exerciseHandler := handler.NewExerciseHandler(exerciseRepo, treatmentRepo, patientRepo, cloud, notifSvc)
	feedbackHandler := handler.NewFeedbackHandler(feedbackRepo, patientRepo, therapistRepo)
	notificationHandler := handler.NewNotificationHandler(notificationRepo, userRepo)
	paymentHandler := handler.NewPaymentHandler(paymentRepo, treatmentRepo, patientRepo, notifSvc)
	uploadHandler := handler.NewUploadHandler(userRepo, cloud)

	authMw := middleware.AuthRequired(&cfg.JWT)
	staffMw := middleware.StaffRequired()
	adminMw := middleware.AdminRequired()

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authMw, authHandler.Logout)
			authGroup.PATCH("/change-password", authMw, authHandler.ChangePassword)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.GET("/google", googleOAuthHandler.Redirect)
			authGroup.GET("/google/callback", googleOAuthHandler.Callback)
			authGroup.POST("/google/token", googleOAuthHandler.Token)
		}

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("/notifications", notificationHandler.List)
			me.PUT("/notifications/:id/read", notificationHandler.MarkRead)
			me.POST("/fcm-token", notificationHandler.RegisterFCMToken)
			me.PATCH("/location", mapHandler.UpdateLocation)
			me.POST("/avatar", uploadHandler.Avatar)
			me.PATCH("/presence", middleware.RequireRole(domain.RoleTherapist), mapHandler.SetPresence)
			me.PUT("/therapist-profile", middleware.RequireRole(domain.RoleTherapist), therapistHandler.UpdateMyProfile)
			me.GET("/patients", middleware.RequireRole(domain.RoleTherapist), therapistHandler.MyPatients)
			me.GET("/schedule", middleware.RequireRole(domain.RoleTherapist), therapistHandler.MySchedule)
			me.GET("/earnings", middleware.RequireRole(domain.RoleTherapist), analyticsHandler.MyEarnings)
			me.GET("/patient", middleware.RequireRole(domain.RolePatient), patientHandler.MyProfile)
			me.GET("/plans", middleware.RequireRole(domain.RolePatient), treatmentHandler.MyPlans)
			me.GET("/appointments", middleware.RequireRole(domain.RolePatient), appointmentHandler.MyAppointments)
			me.GET("/payments", middleware.RequireRole(domain.RolePatient), paymentHandler.MyPayments)
		}

		// Visible to every authenticated user.
		api.GET("/therapists", authMw, therapistHandler.List)
		api.GET("/therapists/:id", authMw, therapistHandler.Get)
		api.GET("/therapists/:id/feedback", authMw, feedbackHandler.ByTherapist)
		api.GET("/plans/:id", authMw, treatmentHandler.GetPlan)
		api.GET("/plans/:id/exercises", authMw, exerciseHandler.ListByPlan)
		api.GET("/appointments/:id", authMw, appointmentHandler.Get)
		api.GET("/patients/:id/progress", authMw, patientHandler.Progress)
		api.POST("/feedback", authMw, middleware.RequireRole(domain.RolePatient), feedbackHandler.Submit)

		staff := api.Group("")
		staff.Use(authMw, staffMw)
		{
			staff.GET("/patients", patientHandler.List)
			staff.GET("/patients/:id", patientHandler.Get)
			staff.PATCH("/patients/:id", patientHandler.UpdateIntake)
			staff.POST("/patients/:id/assign-therapist", patientHandler.AssignTherapist)
			staff.GET("/patients/:id/plans", treatmentHandler.ListPlansByPatient)
			staff.GET("/patients/:id/payments", paymentHandler.ListByPatient)

			staff.POST("/plans", treatmentHandler.CreatePlan)
			staff.PATCH("/plans/:id/notes", treatmentHandler.UpdatePlanNotes)
			staff.POST("/plans/:id/exercises", exerciseHandler.Assign)
			staff.PATCH("/exercises/:id", exerciseHandler.Update)
			staff.DELETE("/exercises/:id", exerciseHandler.Delete)

			staff.POST("/appointments", appointmentHandler.Create)
			staff.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
			staff.POST("/appointments/:id/cancel", appointmentHandler.Cancel)
			staff.POST("/appointments/:id/attendance", attendanceHandler.Mark)
			staff.POST("/sessions/walk-in", attendanceHandler.RecordWalkIn)

			staff.POST("/payments", paymentHandler.Record)
			staff.GET("/payments/:reference", paymentHandler.Get)
			staff.GET("/feedback", feedbackHandler.List)

			staff.GET("/map", mapHandler.State)
			staff.POST("/map/scan", mapHandler.Scan)
			staff.POST("/analytics/preview", analyticsHandler.Preview)
		}

		supervisors := api.Group("/analytics")
		supervisors.Use(authMw, middleware.RequireRole(domain.RoleAdmin, domain.RoleDoctor))
		{
			supervisors.GET("/clinic", analyticsHandler.ClinicEarnings)
			supervisors.GET("/therapists/:id", analyticsHandler.TherapistEarnings)
		}

		admin := api.Group("/admin")
		admin.Use(authMw, adminMw)
		{
			admin.GET("/dashboard", adminHandler.Dashboard)
			admin.POST("/staff", adminHandler.CreateStaff)
			admin.GET("/users", adminHandler.ListUsers)
			admin.PATCH("/users/:id/active", adminHandler.SetUserActive)
			admin.POST("/plan-templates", adminHandler.CreatePlanTemplate)
			admin.GET("/plan-templates", adminHandler.ListPlanTemplates)
			admin.PATCH("/plan-templates/:id", adminHandler.UpdatePlanTemplate)
			admin.GET("/audit-logs", adminHandler.ListAuditLogs)
		}
	}

	r.GET("/ws/map", ws.UpgradeMapWS(&cfg.JWT, mapHub))

	return r
}
