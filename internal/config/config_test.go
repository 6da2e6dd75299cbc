package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_USER", "study")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "studytube")
	t.Setenv("JWT_SECRET", "jwt-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)
	for _, key := range []string{
		"SERVER_PORT", "LOG_LEVEL", "CORS_ALLOWED_ORIGINS", "YOUTUBE_API_KEY", "YOUTUBE_RPS",
		"YOUTUBE_TIMEOUT", "MAX_COURSES_PER_OWNER", "REDIS_HOST", "REDIS_PORT", "REMINDER_CRON",
		"REMINDER_TIMEZONE", "SMTP_FROM",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Empty(t, cfg.YouTube.APIKey)
	assert.Equal(t, 5.0, cfg.YouTube.RequestsPerSecond)
	assert.Equal(t, 30*time.Second, cfg.YouTube.Timeout)
	assert.Equal(t, 4, cfg.Import.MaxCoursesPerOwner)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
	assert.Equal(t, "0 18 * * *", cfg.Reminder.Cron)
	assert.Equal(t, "UTC", cfg.Reminder.Timezone)
	assert.Equal(t, "study:secret@tcp(localhost:3306)/studytube?parseTime=true&charset=utf8mb4&loc=UTC&multiStatements=true", cfg.DSN())
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.com , ,https://b.com")
	t.Setenv("YOUTUBE_API_KEY", "key")
	t.Setenv("MAX_COURSES_PER_OWNER", "10")
	t.Setenv("REMINDER_TIMEZONE", "Europe/Berlin")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.com", "https://b.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "key", cfg.YouTube.APIKey)
	assert.Equal(t, 10, cfg.Import.MaxCoursesPerOwner)
	assert.Equal(t, "Europe/Berlin", cfg.Reminder.Timezone)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "missing db host", key: "DB_HOST", val: ""},
		{name: "invalid db port", key: "DB_PORT", val: "abc"},
		{name: "missing jwt secret", key: "JWT_SECRET", val: ""},
		{name: "invalid rps", key: "YOUTUBE_RPS", val: "-1"},
		{name: "invalid timeout", key: "YOUTUBE_TIMEOUT", val: "soon"},
		{name: "non-positive course limit", key: "MAX_COURSES_PER_OWNER", val: "0"},
		{name: "invalid timezone", key: "REMINDER_TIMEZONE", val: "Mars/Olympus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load()

			assert.Error(t, err)
		})
	}
}
