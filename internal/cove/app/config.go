package app

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	JWTSecret   string        // Required: shared HS256 secret from the identity provider
	JWTIssuer   string        // Optional: expected issuer claim (default: none, issuer not checked)
	JWTAudience string        // Optional: expected audience claim (default: none, audience not checked)
	JWTLeeway   time.Duration // Optional: clock skew tolerance for exp/nbf (default: 30s)

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./cove.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		JWTSecret:   os.Getenv("COVE_JWT_SECRET"),
		JWTIssuer:   os.Getenv("COVE_JWT_ISSUER"),
		JWTAudience: os.Getenv("COVE_JWT_AUDIENCE"),
		JWTLeeway:   getEnvDurationOrDefault("COVE_JWT_LEEWAY", 30*time.Second),

		DatabaseFile:        getEnvOrDefault("COVE_DATABASE_FILE", "cove.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// Validate catches the config mistakes that would otherwise surface as every
// request failing with 401.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("COVE_JWT_SECRET is required")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
