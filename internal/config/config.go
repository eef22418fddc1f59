package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Port        string
	Database    DatabaseConfig
	JWT         JWTConfig
	Reminders   ReminderConfig
	CORS        CORSConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

type JWTConfig struct {
	Secret    string
	ExpiresIn string
}

type ReminderConfig struct {
	// DispatchInterval is how often the dispatcher polls for due reminders.
	DispatchInterval time.Duration
	// DispatchBatchSize caps how many due reminders a single poll delivers.
	DispatchBatchSize int
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "3001"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "postgres"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "cuppl"),
			User:     getEnv("DB_USER", "cuppl_user"),
			Password: getEnv("DB_PASSWORD", "cuppl_password"),
		},
		JWT: JWTConfig{
			Secret:    getEnv("JWT_SECRET", "your-super-secret-jwt-key-change-this-in-production"),
			ExpiresIn: getEnv("JWT_EXPIRES_IN", "168h"),
		},
		Reminders: ReminderConfig{
			DispatchInterval:  getDurationEnv("REMINDER_DISPATCH_INTERVAL", 30*time.Second),
			DispatchBatchSize: getIntEnv("REMINDER_DISPATCH_BATCH", 100),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				getEnv("FRONTEND_URL", "http://localhost:3000"),
				"http://localhost:3000",
			},
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
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
