package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the process configuration, read from the environment (a .env
// file is honored when present).
type Config struct {
	Port            string
	MongoURI        string
	MongoDB         string
	JWTSecret       string
	PairingCodeHash string // bcrypt hash of the device pairing code
	LogLevel        string

	// Optional SMTP delivery for the grocery reminder.
	ReminderEmail string
	SMTPHost      string
	SMTPPort      string
	SMTPSender    string
	SMTPPassword  string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, relying on environment")
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getEnv("MONGO_DB", "meal_planner"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		PairingCodeHash: os.Getenv("PAIRING_CODE_HASH"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ReminderEmail:   os.Getenv("REMINDER_EMAIL"),
		SMTPHost:        os.Getenv("SMTP_HOST"),
		SMTPPort:        getEnv("SMTP_PORT", "587"),
		SMTPSender:      os.Getenv("SMTP_SENDER"),
		SMTPPassword:    os.Getenv("SMTP_PASSWORD"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
