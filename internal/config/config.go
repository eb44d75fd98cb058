package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Server
	Env  string
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Pipeline auth: shared key presented by the classifier pipeline.
	PipelineAPIKey string

	// Fixed timeout applied to every storage call.
	StoreTimeout time.Duration

	// Reminder dispatcher
	Timezone         string
	ReminderInterval time.Duration
	TelegramBotToken string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if present
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "kepler"),
		DBPassword: getEnv("DB_PASSWORD", "kepler"),
		DBName:     getEnv("DB_NAME", "kepler"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		PipelineAPIKey: getEnv("PIPELINE_API_KEY", ""),

		Timezone:         getEnv("KEPLER_TZ", "America/Bogota"),
		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
	}

	config.StoreTimeout = getDuration("STORE_TIMEOUT", 30*time.Second)
	config.ReminderInterval = getDuration("REMINDER_INTERVAL", 15*time.Minute)

	return config, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration parses a duration environment variable, falling back to
// the default on absence or parse failure.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}
