package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
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
	"github.com/mintevents/event-portal-backend/internal/reminder"
	"github.com/mintevents/event-portal-backend/routes"
	"github.com/mintevents/event-portal-backend/utils"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Init Redis (password reset tokens)
	if err := utils.InitRedis(); err != nil {
		log.Fatalf("❌ Redis init failed: %v", err)
	}

	// Init Kafka (approval fan-out); degrades to a no-op when unconfigured
	utils.InitializeKafka(cfg.KafkaBrokers, cfg.KafkaApprovalTopic)
	defer utils.CloseKafka()

	// Init Firebase - push notifications are optional
	log.Println("🔄 Initializing Firebase...")
	if err := utils.InitFirebase(); err != nil {
		log.Printf("⚠️ Firebase initialization failed: %v", err)
		log.Println("ℹ️ Continuing without Firebase (push notifications will be disabled)")
	} else if utils.IsFCMEnabled() {
		log.Println("✅ Firebase and FCM initialized successfully")
	} else {
		log.Println("⚠️ Firebase initialized but FCM client unavailable")
	}

	// Auto-migrate models
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auth.User{},
		&auditlog.AuditLog{},
		&event.Event{},
		&registration.Registration{},
		&dashboard.Entry{},
		&contact.Message{},
		&contact.Reply{},
		&notification.InAppNotification{},
		&notification.FCMDeviceToken{},
	); err != nil {
		panic(fmt.Sprintf("❌ DB AutoMigrate failed: %v", err))
	}
	log.Println("✅ Database migrations completed")

	// Background workers share the same repositories as the HTTP layer.
	authRepo := auth.NewRepository(db)
	eventRepo := event.NewRepository(db)
	registrationRepo := registration.NewRepository(db)

	notificationRepo := notification.NewRepository(db)
	notificationSvc := notification.NewService(notificationRepo, authRepo, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go notification.StartKafkaConsumer(ctx, notificationSvc,
		splitBrokers(cfg.KafkaBrokers), cfg.KafkaApprovalTopic)

	reminderJob := reminder.NewJob(eventRepo, registrationRepo, notificationSvc.EmailChannel(), cfg)
	stopReminders := make(chan struct{})
	defer close(stopReminders)
	go reminderJob.Start(stopReminders)

	// Create uploads directory
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		panic(fmt.Sprintf("❌ Failed to create upload directory: %v", err))
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(cfg),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With", "Cache-Control", "Pragma"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(router, cfg)

	fmt.Printf("🚀 Server starting on port %s\n", cfg.Port)
	fmt.Printf("📁 Upload directory: %s\n", cfg.UploadDir)
	if utils.IsFCMEnabled() {
		fmt.Println("✅ Firebase Cloud Messaging enabled")
	} else {
		fmt.Println("ℹ️ Firebase Cloud Messaging disabled")
		if err := utils.GetInitError(); err != nil {
			fmt.Printf("   Reason: %v\n", err)
		}
	}

	if err := router.Run(":" + cfg.Port); err != nil {
		panic(fmt.Sprintf("Failed to start server: %v", err))
	}
}

func splitBrokers(brokers string) []string {
	var out []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

func allowedOrigins(cfg *config.Config) []string {
	origins := []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:4173", "http://127.0.0.1:4173"}
	if cfg.FrontendURL != "" {
		origins = append(origins, cfg.FrontendURL)
	}
	return origins
}
