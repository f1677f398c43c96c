package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mintevents/event-portal-backend/config"
	"github.com/mintevents/event-portal-backend/database"
	"github.com/mintevents/event-portal-backend/internal/auditlog"
	"github.com/mintevents/event-portal-backend/internal/auth"
	"github.com/mintevents/event-portal-backend/internal/contact"
	"github.com/mintevents/event-portal-backend/internal/dashboard"
	"github.com/mintevents/event-portal-backend/internal/event"
	"github.com/mintevents/event-portal-backend/internal/notification"
	"github.com/mintevents/event-portal-backend/internal/registration"
	"github.com/mintevents/event-portal-backend/internal/reports"
	"github.com/mintevents/event-portal-backend/middleware"
)

// Setup wires every module onto the router. Repositories and services are
// built here against the shared database handle; anything main.go also needs
// (reminder job, Kafka consumer) is built there with the same constructors.
func Setup(r *gin.Engine, cfg *config.Config) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// Uploaded event posters are public once the event is approved.
	r.Static("/uploads", cfg.UploadDir)

	api := r.Group("/api/v1")
	api.Use(middleware.AuditMiddleware()) // capture IP for audit trails

	// ========== Audit Log ==========
	auditRepo := auditlog.NewRepository(database.DB)
	auditSvc := auditlog.NewService(auditRepo)
	auditHandler := auditlog.NewHandler(auditSvc)

	// ========== Auth ==========
	authRepo := auth.NewRepository(database.DB)
	authSvc := auth.NewService(authRepo, cfg)
	authHandler := auth.NewHandler(authSvc)

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimiter()) // brute-force protection
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)

		authGroup.POST("/logout", middleware.AuthMiddleware(cfg, authSvc), authHandler.Logout)
		authGroup.GET("/me", middleware.AuthMiddleware(cfg, authSvc), authHandler.Me)
		authGroup.POST("/change-password", middleware.AuthMiddleware(cfg, authSvc), authHandler.ChangePassword)
	}

	// ========== Events ==========
	eventRepo := event.NewRepository(database.DB)
	eventSvc := event.NewService(eventRepo, auditSvc)
	eventHandler := event.NewHandler(eventSvc, cfg.UploadDir)

	// The approved listing is the public calendar; no auth required.
	api.GET("/events", eventHandler.ListApproved)
	api.GET("/events/:id", eventHandler.GetByID)

	// ========== Contact (public submission) ==========
	notificationRepo := notification.NewRepository(database.DB)
	notificationSvc := notification.NewService(notificationRepo, authRepo, cfg)
	notificationHandler := notification.NewHandler(notificationSvc)

	contactRepo := contact.NewRepository(database.DB)
	contactSvc := contact.NewService(contactRepo, notificationSvc.EmailChannel(), auditSvc)
	contactHandler := contact.NewHandler(contactSvc)

	api.POST("/contact", middleware.RateLimiter(), contactHandler.SubmitMessage)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg, authSvc))

	// ========== Event Proposals & Approvals ==========
	{
		// Officers, heads and admins may propose events.
		propose := protected.Group("/events")
		propose.Use(middleware.RBACMiddleware(auth.RoleOfficer, auth.RoleHead, auth.RoleAdmin))
		{
			propose.POST("", eventHandler.Submit)
			propose.PUT("/:id", eventHandler.Update)
			propose.DELETE("/:id", eventHandler.Delete)
			propose.POST("/upload", eventHandler.UploadImage)
		}
		protected.GET("/events/mine", middleware.RBACMiddleware(auth.RoleOfficer, auth.RoleHead, auth.RoleAdmin), eventHandler.ListMine)

		// Approval queue; the service re-checks which stage the caller may act on.
		review := protected.Group("/events")
		review.Use(middleware.RBACMiddleware(auth.RoleHead, auth.RoleAdmin))
		{
			review.GET("/pending", eventHandler.ListPending)
			review.PATCH("/:id/approve", eventHandler.Approve)
			review.PATCH("/:id/reject", eventHandler.Reject)
		}

		protected.GET("/events/all", middleware.RBACMiddleware(auth.RoleAdmin), eventHandler.ListAll)
	}

	// ========== Registrations ==========
	registrationRepo := registration.NewRepository(database.DB)
	registrationSvc := registration.NewService(registrationRepo, eventRepo)
	registrationHandler := registration.NewHandler(registrationSvc)
	{
		protected.POST("/events/:id/register", registrationHandler.Register)
		protected.DELETE("/events/:id/register", registrationHandler.Unregister)
		protected.GET("/events/:id/registrations", registrationHandler.ListByEvent)
	}

	// ========== Dashboard ==========
	dashboardRepo := dashboard.NewRepository(database.DB)
	dashboardSvc := dashboard.NewService(dashboardRepo, eventRepo)
	dashboardHandler := dashboard.NewHandler(dashboardSvc)
	{
		protected.POST("/dashboard/:eventId", dashboardHandler.Save)
		protected.GET("/dashboard", dashboardHandler.List)
		protected.DELETE("/dashboard/:id", dashboardHandler.Remove)
	}

	// ========== Notifications ==========
	{
		protected.GET("/notifications", notificationHandler.List)
		protected.PATCH("/notifications/:id/read", notificationHandler.MarkRead)
		protected.POST("/notifications/devices", notificationHandler.RegisterDevice)
		protected.DELETE("/notifications/devices", notificationHandler.RemoveDevice)
	}

	// ========== Contact (replies) ==========
	{
		protected.GET("/contact/replies", contactHandler.ListMyReplies)
		protected.PATCH("/contact/replies/:id/read", contactHandler.MarkReplyRead)
	}

	// ========== Admin ==========
	admin := protected.Group("/admin")
	admin.Use(middleware.RBACMiddleware(auth.RoleAdmin))
	{
		admin.GET("/users", authHandler.ListUsers)
		admin.POST("/users", authHandler.CreateUser)
		admin.PATCH("/users/:id/role", authHandler.UpdateUserRole)
		admin.POST("/users/:id/reset-password", authHandler.ResetUserPassword)
		admin.DELETE("/users/:id", authHandler.DeleteUser)

		admin.GET("/contact-messages", contactHandler.ListMessages)
		admin.PATCH("/contact-messages/:id/read", contactHandler.MarkMessageRead)
		admin.POST("/contact-messages/:id/reply", contactHandler.Reply)

		admin.GET("/auditlogs", auditHandler.GetAuditLogs)
		admin.GET("/auditlogs/:id", auditHandler.GetAuditLogByID)

		reportRepo := reports.NewRepository(database.DB)
		reportSvc := reports.NewService(reportRepo, reports.NewReportExporter())
		reportHandler := reports.NewHandler(reportSvc)
		admin.GET("/reports/:type", reportHandler.Generate)
	}
}
