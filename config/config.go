package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string

	// DatabaseURL enables durable document snapshots when set.
	// Empty means the document store runs memory-only.
	DatabaseURL string

	JWTSecret   string
	TokenExpiry time.Duration

	GoogleClientID     string
	GoogleClientSecret string

	CORSAllowedOrigins []string

	// BaseURL is the public URL used in invitation links.
	BaseURL string

	// Availability window defaults, in local hours of day.
	DayStartHour int
	DayEndHour   int

	// SyncWindowDays is how far ahead a calendar sync looks.
	SyncWindowDays int

	EmailProvider    string
	EmailFromAddress string
	EmailFromName    string

	SESRegion             string
	SESAccessKeyID        string
	SESSecretAccessKey    string
	SESInsecureSkipVerify bool
}

// Load loads configuration from environment variables.
// It attempts to load from .env file if not in production.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production we rely on system environment variables only,
	// so a missing .env file is not an error.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:           env,
		Port:                  getenv("PORT", "8080"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		JWTSecret:             getenv("JWT_SECRET", "dev-secret-do-not-use-in-production"),
		TokenExpiry:           getduration("TOKEN_EXPIRY", 30*24*time.Hour),
		GoogleClientID:        os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:    os.Getenv("GOOGLE_CLIENT_SECRET"),
		BaseURL:               getenv("BASE_URL", "http://localhost:8080"),
		DayStartHour:          getint("DAY_START_HOUR", 9),
		DayEndHour:            getint("DAY_END_HOUR", 23),
		SyncWindowDays:        getint("SYNC_WINDOW_DAYS", 30),
		EmailProvider:         getenv("EMAIL_PROVIDER", "noop"),
		EmailFromAddress:      os.Getenv("EMAIL_FROM_ADDRESS"),
		EmailFromName:         os.Getenv("EMAIL_FROM_NAME"),
		SESRegion:             getenv("SES_REGION", "us-east-1"),
		SESAccessKeyID:        os.Getenv("SES_ACCESS_KEY_ID"),
		SESSecretAccessKey:    os.Getenv("SES_SECRET_ACCESS_KEY"),
		SESInsecureSkipVerify: os.Getenv("SES_INSECURE_SKIP_VERIFY") == "true",
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.CORSAllowedOrigins = strings.Split(origins, ",")
	} else {
		cfg.CORSAllowedOrigins = []string{"http://localhost:3000"}
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
		log.Printf("Warning: invalid value for %s, using default %d", key, fallback)
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	if s := os.Getenv(key); s != "" {
		if v, err := time.ParseDuration(s); err == nil {
			return v
		}
		log.Printf("Warning: invalid value for %s, using default %s", key, fallback)
	}
	return fallback
}
