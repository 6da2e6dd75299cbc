// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Server   ServerConfig
	Logging  LoggingConfig
	CORS     CORSConfig
	JWT      JWTConfig
	YouTube  YouTubeConfig
	Import   ImportConfig
	SMTP     SMTPConfig
	Reminder ReminderConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// JWTConfig holds the secret used to verify access tokens issued by the identity provider
type JWTConfig struct {
	Secret string
	Issuer string
}

// YouTubeConfig holds YouTube Data API settings
//
// APIKey is optional at startup: imports report a configuration error while it is empty.
type YouTubeConfig struct {
	APIKey            string
	RequestsPerSecond float64
	Timeout           time.Duration
}

// ImportConfig holds playlist import settings
type ImportConfig struct {
	MaxCoursesPerOwner int
}

// SMTPConfig holds SMTP server configuration
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// ReminderConfig holds daily reminder settings
type ReminderConfig struct {
	Cron     string
	Timezone string
	AppURL   string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	godotenv.Load()

	cfg := &Config{}

	// Database configuration
	var err error
	for key, dst := range map[string]*string{
		"DB_HOST":     &cfg.Database.Host,
		"DB_USER":     &cfg.Database.User,
		"DB_PASSWORD": &cfg.Database.Password,
		"DB_NAME":     &cfg.Database.DBName,
	} {
		if *dst, err = requiredEnv(key); err != nil {
			return nil, err
		}
	}

	dbPortStr, err := requiredEnv("DB_PORT")
	if err != nil {
		return nil, err
	}
	if cfg.Database.Port, err = strconv.Atoi(dbPortStr); err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	// Server configuration
	serverPort, err := intFromEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	cfg.Server.Port = serverPort

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // default level
	}
	cfg.Logging.Level = logLevel

	// CORS configuration
	cfg.CORS.AllowedOrigins = parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	// JWT configuration
	if cfg.JWT.Secret, err = requiredEnv("JWT_SECRET"); err != nil {
		return nil, err
	}
	cfg.JWT.Issuer = os.Getenv("JWT_ISSUER") // optional

	// YouTube configuration
	cfg.YouTube.APIKey = os.Getenv("YOUTUBE_API_KEY")

	rpsStr := os.Getenv("YOUTUBE_RPS")
	if rpsStr == "" {
		rpsStr = "5"
	}
	rps, err := strconv.ParseFloat(rpsStr, 64)
	if err != nil || rps <= 0 {
		return nil, fmt.Errorf("invalid YOUTUBE_RPS: %q", rpsStr)
	}
	cfg.YouTube.RequestsPerSecond = rps

	timeoutStr := os.Getenv("YOUTUBE_TIMEOUT")
	if timeoutStr == "" {
		timeoutStr = "30s"
	}
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid YOUTUBE_TIMEOUT: %w", err)
	}
	cfg.YouTube.Timeout = timeout

	// Import configuration
	maxCourses, err := intFromEnv("MAX_COURSES_PER_OWNER", 4)
	if err != nil {
		return nil, err
	}
	if maxCourses < 1 {
		return nil, fmt.Errorf("MAX_COURSES_PER_OWNER must be positive")
	}
	cfg.Import.MaxCoursesPerOwner = maxCourses

	// Redis configuration (optional, for reminders)
	redisHost := os.Getenv("REDIS_HOST")
	if redisHost == "" {
		redisHost = "localhost" // default
	}
	cfg.Redis.Host = redisHost

	redisPort, err := intFromEnv("REDIS_PORT", 6379)
	if err != nil {
		return nil, err
	}
	cfg.Redis.Port = redisPort

	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD") // optional

	redisDB, err := intFromEnv("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	cfg.Redis.DB = redisDB

	// SMTP configuration (optional, for reminders)
	smtpHost := os.Getenv("SMTP_HOST")
	if smtpHost == "" {
		smtpHost = "localhost" // default
	}
	cfg.SMTP.Host = smtpHost

	smtpPort, err := intFromEnv("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}
	cfg.SMTP.Port = smtpPort

	cfg.SMTP.Username = os.Getenv("SMTP_USERNAME") // optional
	cfg.SMTP.Password = os.Getenv("SMTP_PASSWORD") // optional

	smtpFrom := os.Getenv("SMTP_FROM")
	if smtpFrom == "" {
		smtpFrom = "noreply@studytube.app" // default
	}
	cfg.SMTP.From = smtpFrom

	// Reminder configuration
	reminderCron := os.Getenv("REMINDER_CRON")
	if reminderCron == "" {
		reminderCron = "0 18 * * *" // every day at 18:00
	}
	cfg.Reminder.Cron = reminderCron

	reminderTZ := os.Getenv("REMINDER_TIMEZONE")
	if reminderTZ == "" {
		reminderTZ = "UTC"
	}
	if _, err := time.LoadLocation(reminderTZ); err != nil {
		return nil, fmt.Errorf("invalid REMINDER_TIMEZONE: %w", err)
	}
	cfg.Reminder.Timezone = reminderTZ
	cfg.Reminder.AppURL = os.Getenv("APP_URL") // optional

	return cfg, nil
}

// DSN returns the database connection string
//
// Migration files hold several statements each, so multiStatements is enabled.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC&multiStatements=true",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
	)
}

// RedisAddr returns the Redis address in host:port form
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func requiredEnv(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

// intFromEnv reads an integer variable, falling back to def when it is unset
func intFromEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

// parseOrigins splits a comma-separated origin list
//
// An empty or blank list allows all origins.
func parseOrigins(raw string) []string {
	if raw == "" {
		return []string{"*"}
	}
	origins := make([]string, 0)
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
