package app

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/nimbuslabs/nimbus/pkg/jwtx"
)

var (
	ErrMissingAccessSecret  = errors.New("ACCESS_TOKEN_SECRET is not set")
	ErrMissingRefreshSecret = errors.New("REFRESH_TOKEN_SECRET is not set")
	ErrSameTokenSecrets     = errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
)

type Config struct {
	Issuer             string // Optional: issuer claim for tokens (default: nimbus-auth)
	AccessTokenSecret  string // Required: HMAC key for access tokens
	RefreshTokenSecret string // Required: HMAC key for refresh tokens, distinct from the access key

	AccessTokenTTL  time.Duration // Optional: access token lifetime (default: 15m)
	RefreshTokenTTL time.Duration // Optional: refresh token lifetime (default: 7 days)

	DatabaseFile string // Optional: path to SQLite database file (default: ./nimbus.db)

	SMTPHost     string // Optional: SMTP relay host
	SMTPPort     string // Optional: SMTP relay port (default: 587)
	SMTPUsername string // Optional: SMTP auth username; mail falls back to log output when empty
	SMTPPassword string // Optional: SMTP auth password
	MailFrom     string // Optional: From address (default: no-reply@nimbus.local)
	MailFromName string // Optional: From display name (default: Nimbus)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1m)
}

// LoadConfig reads configuration from the environment, after loading a .env
// file if one is present. It fails fast when either token secret is missing
// so a misconfigured deployment never signs tokens with an empty key.
func LoadConfig() (Config, error) {
	// A missing .env file is fine; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := Config{
		Issuer:             getEnvOrDefault("AUTH_ISSUER", "nimbus-auth"),
		AccessTokenSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: os.Getenv("REFRESH_TOKEN_SECRET"),

		AccessTokenTTL:  getEnvDurationOrDefault("ACCESS_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTokenTTL: getEnvDurationOrDefault("REFRESH_TOKEN_TTL", jwtx.DefaultRefreshTokenTTL),

		DatabaseFile: getEnvOrDefault("AUTH_DATABASE_FILE", "nimbus.db"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvOrDefault("SMTP_PORT", "587"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     getEnvOrDefault("MAIL_FROM", "no-reply@nimbus.local"),
		MailFromName: getEnvOrDefault("MAIL_FROM_NAME", "Nimbus"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", time.Minute),
	}

	if cfg.AccessTokenSecret == "" {
		return Config{}, ErrMissingAccessSecret
	}
	if cfg.RefreshTokenSecret == "" {
		return Config{}, ErrMissingRefreshSecret
	}
	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		return Config{}, ErrSameTokenSecrets
	}

	return cfg, nil
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

	// Try parsing as integer seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
