package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTAccessSecret    string
	JWTRefreshSecret   string
	JWTAccessTTLHours  int
	JWTRefreshTTLHours int

	// Redis (password reset tokens)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Kafka (approval notification fan-out)
	KafkaBrokers       string
	KafkaApprovalTopic string

	// SMTP
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromName  string
	SMTPFromEmail string

	// FCM
	FCMCredentialsPath string
	FCMProjectID       string

	// Uploads + frontend
	UploadDir   string
	FrontendURL string

	// Reminder job
	ReminderIntervalMinutes int
	ReminderLookaheadHours  int
}

// Load reads environment variables and returns a Config object
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using environment variables")
	}

	accessTTL, _ := strconv.Atoi(os.Getenv("JWT_ACCESS_TTL_HOURS"))
	if accessTTL == 0 {
		accessTTL = 24
	}
	refreshTTL, _ := strconv.Atoi(os.Getenv("JWT_REFRESH_TTL_HOURS"))
	if refreshTTL == 0 {
		refreshTTL = 168
	}
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))

	reminderInterval, _ := strconv.Atoi(os.Getenv("REMINDER_INTERVAL_MINUTES"))
	if reminderInterval == 0 {
		reminderInterval = 60
	}
	lookahead, _ := strconv.Atoi(os.Getenv("REMINDER_LOOKAHEAD_HOURS"))
	if lookahead == 0 {
		lookahead = 24
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}

	kafkaTopic := os.Getenv("KAFKA_APPROVAL_TOPIC")
	if kafkaTopic == "" {
		kafkaTopic = "event-approvals"
	}

	return &Config{
		Port: os.Getenv("PORT"),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		JWTAccessSecret:    os.Getenv("JWT_ACCESS_SECRET"),
		JWTRefreshSecret:   os.Getenv("JWT_REFRESH_SECRET"),
		JWTAccessTTLHours:  accessTTL,
		JWTRefreshTTLHours: refreshTTL,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		KafkaBrokers:       os.Getenv("KAFKA_BROKERS"),
		KafkaApprovalTopic: kafkaTopic,

		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      os.Getenv("SMTP_PORT"),
		SMTPUsername:  os.Getenv("SMTP_USERNAME"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		SMTPFromName:  os.Getenv("SMTP_FROM_NAME"),
		SMTPFromEmail: os.Getenv("SMTP_FROM_EMAIL"),

		FCMCredentialsPath: os.Getenv("FCM_CREDENTIALS_PATH"),
		FCMProjectID:       os.Getenv("FCM_PROJECT_ID"),

		UploadDir:   uploadDir,
		FrontendURL: os.Getenv("FRONTEND_URL"),

		ReminderIntervalMinutes: reminderInterval,
		ReminderLookaheadHours:  lookahead,
	}
}
