package app

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AccessTokenKey  string // Required: HS256 secret for access tokens
	RefreshTokenKey string // Required: HS256 secret for refresh tokens

	AccessTokenTTL       time.Duration // Optional: access token lifetime (default: 2h)
	RefreshTokenTTL      time.Duration // Optional: refresh token lifetime (default: 7d)
	DatabaseFile         string        // Optional: path to SQLite database file (default: ./shop.db)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

var ErrMissingTokenKeys = errors.New("ACCESS_TOKEN_KEY and REFRESH_TOKEN_KEY must be set")

func LoadConfig() Config {
	return Config{
		AccessTokenKey:       os.Getenv("ACCESS_TOKEN_KEY"),
		RefreshTokenKey:      os.Getenv("REFRESH_TOKEN_KEY"),
		AccessTokenTTL:       getEnvDurationOrDefault("ACCESS_TOKEN_TTL", 2*time.Hour),
		RefreshTokenTTL:      getEnvDurationOrDefault("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		DatabaseFile:         getEnvOrDefault("SHOP_DATABASE_FILE", "shop.db"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

// Validate checks the parts of the config that have no workable default.
// Token keys are never generated on the fly; a restart must keep issued
// tokens verifiable.
func (cfg Config) Validate() error {
	if cfg.AccessTokenKey == "" || cfg.RefreshTokenKey == "" {
		return ErrMissingTokenKeys
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

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
