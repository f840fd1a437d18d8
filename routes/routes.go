// File: routes/routes.go
package routes

import (
	"time"

	"femicare/handlers"
	"femicare/middleware"
	"femicare/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers signup, verification and session endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.RegisterHandler)
		api.POST("/verify-email", hb.Auth.VerifyEmailHandler)
		api.POST("/resend-code", hb.Auth.ResendCodeHandler)
		api.POST("/login", hb.Auth.LoginHandler)

		api.POST("/logout", middleware.JWTAuthMiddleware(hb.UserRepo), hb.Auth.LogoutHandler)
	}
}

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("/me", hb.User.MeHandler)
		api.PUT("/me/profile", hb.User.UpdateProfileHandler)
		api.PUT("/me/password", hb.User.ChangePasswordHandler)
		api.PUT("/me/fcm-token", hb.User.UpdateFCMTokenHandler)
		api.DELETE("/me", hb.User.DeleteAccountHandler)
	}
}

// RegisterDoctorRoutes registers the public directory plus the doctor-only
// profile and slot management endpoints.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/doctors")
	{
		// Patients browse the directory and each doctor's open slots.
		patientSide := api.Group("")
		patientSide.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		patientSide.GET("", hb.Doctor.ListDoctorsHandler)
		patientSide.GET("/:id/slots", hb.Availability.DoctorSlotsHandler)

		// Doctor-only profile management.
		doctorSide := api.Group("")
		doctorSide.Use(middleware.JWTAuthMiddleware(hb.UserRepo, models.RoleDoctor))
		doctorSide.GET("/me", hb.Doctor.MyProfileHandler)
		doctorSide.PUT("/me", hb.Doctor.UpdateProfileHandler)
		doctorSide.POST("/me/certificate", hb.Doctor.UploadCertificateHandler)
		doctorSide.POST("/me/photo", hb.Doctor.UploadPhotoHandler)
	}
}

// RegisterAvailabilityRoutes registers slot generation and management.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availability")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo, models.RoleDoctor))
		api.POST("/generate", hb.Availability.GenerateSlotsHandler)
		api.GET("/mine", hb.Availability.MySlotsHandler)
		api.PUT("/:id/active", hb.Availability.SetSlotActiveHandler)
		api.DELETE("/:id", hb.Availability.DeleteSlotHandler)
	}
}

// RegisterAppointmentRoutes registers the booking lifecycle and chat.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("", hb.Appointment.ListMineHandler)
		api.GET("/:id", hb.Appointment.GetHandler)
		api.GET("/:id/chat", hb.Chat.ConnectHandler)
		api.GET("/:id/chat/history", hb.Chat.HistoryHandler)

		patientOnly := api.Group("")
		patientOnly.Use(middleware.JWTAuthMiddleware(hb.UserRepo, models.RolePatient))
		patientOnly.POST("", hb.Appointment.BookHandler)
		patientOnly.POST("/:id/cancel", hb.Appointment.CancelHandler)

		doctorOnly := api.Group("")
		doctorOnly.Use(middleware.JWTAuthMiddleware(hb.UserRepo, models.RoleDoctor))
		doctorOnly.POST("/:id/approve", hb.Appointment.ApproveHandler)
		doctorOnly.POST("/:id/reject", hb.Appointment.RejectHandler)
	}
}

// RegisterCycleRoutes registers cycle tracking endpoints. Patients only.
func RegisterCycleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/cycles")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo, models.RolePatient))
		api.POST("", hb.Cycle.LogCycleHandler)
		api.GET("", hb.Cycle.HistoryHandler)
		api.GET("/prefill", hb.Cycle.PrefillHandler)
		api.GET("/insight", hb.Cycle.InsightHandler)
	}
}

// RegisterAdminRoutes registers the verification queue and platform overview.
// Admins only.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo, models.RoleAdmin))
		api.GET("/doctors/pending", hb.Admin.PendingDoctorsHandler)
		api.POST("/doctors/:id/verify", hb.Admin.VerifyDoctorHandler)
		api.POST("/doctors/:id/reject", hb.Admin.RejectDoctorHandler)
		api.GET("/users", hb.Admin.ListUsersHandler)
		api.GET("/stats", hb.Admin.StatsHandler)
	}
}

// RegisterHealthRoute registers the health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterDoctorRoutes(r, hb)
	RegisterAvailabilityRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterCycleRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
