package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort          int
	DatabasePath        string
	ClientURL           string // Allowed CORS origin for the browser client
	JWTSecret           string
	MaintenanceSchedule string // Cron expression for the background janitor
	EventRetentionDays  int
}

// Load loads configuration from the environment, reading a .env file first
// when one is present. Real environment variables take precedence.
func Load() (*Config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
	}

	retentionStr := getEnv("EVENT_RETENTION_DAYS", "30")
	retention, err := strconv.Atoi(retentionStr)
	if err != nil {
		return nil, fmt.Errorf("invalid EVENT_RETENTION_DAYS %q: %w", retentionStr, err)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	return &Config{
		ServerPort:          port,
		DatabasePath:        getEnv("DATABASE_PATH", "./jobtrackr.db"),
		ClientURL:           getEnv("CLIENT_URL", "http://localhost:3000"),
		JWTSecret:           secret,
		MaintenanceSchedule: getEnv("MAINTENANCE_SCHEDULE", "0 3 * * *"),
		EventRetentionDays:  retention,
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
