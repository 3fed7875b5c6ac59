package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// SMTPConfig holds settings for the outbound mail transport.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string // Sender address
	FromName string // Display name on outgoing mail
}

type Config struct {
	// Server
	Port string
	Env  string // "development", "production"

	// Database
	DatabaseURL string

	// Auth
	JWTSecret string

	// CORS
	AllowedOrigins []string
	FrontendURL    string

	// Outbound email
	SMTP SMTPConfig

	// Price tracker
	TrackerEnabled  bool
	TrackerSchedule string        // Cron expression (e.g., "0 */6 * * *" for every 6 hours)
	TrackerTimeout  time.Duration // Timeout for a complete check cycle
	FetchTimeout    time.Duration // Timeout for a single retailer page fetch
}

func Load() *Config {
	env := getEnv("ENV", "development")

	return &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  env,

		// Database
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/biftracker?sslmode=disable"),

		// Auth
		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-in-production"),

		// CORS
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:3000"),

		// Outbound email
		SMTP: SMTPConfig{
			Host:     getEnv("EMAIL_HOST", "smtp.sendgrid.net"),
			Port:     getIntEnv("EMAIL_PORT", 587),
			Username: getEnv("EMAIL_USERNAME", "apikey"),
			Password: os.Getenv("EMAIL_PASSWORD"),
			From:     getEnv("EMAIL_FROM", "notifications@buyitforlife-tracker.com"),
			FromName: getEnv("EMAIL_FROM_NAME", "BuyItForLife Sale Tracker"),
		},

		// Price tracker
		TrackerEnabled:  getBoolEnv("TRACKER_ENABLED", true),
		TrackerSchedule: getEnv("TRACKER_SCHEDULE", "0 */6 * * *"), // Default: every 6 hours
		TrackerTimeout:  getDurationEnv("TRACKER_TIMEOUT", 30*time.Minute),
		FetchTimeout:    getDurationEnv("FETCH_TIMEOUT", 10*time.Second),
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
