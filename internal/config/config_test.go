package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "MONGO_URI", "MONGO_DB", "JWT_SECRET", "LOG_LEVEL", "SMTP_PORT", "REMINDER_EMAIL"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "meal_planner", cfg.MongoDB)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "587", cfg.SMTPPort)
	assert.Empty(t, cfg.JWTSecret)
	assert.Empty(t, cfg.ReminderEmail)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MONGO_DB", "meal_planner_test")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PAIRING_CODE_HASH", "$2a$10$hash")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := LoadConfig()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "meal_planner_test", cfg.MongoDB)
	assert.Equal(t, "secret", cfg.JWTSecret)
	assert.Equal(t, "$2a$10$hash", cfg.PairingCodeHash)
	assert.Equal(t, "debug", cfg.LogLevel)
}
