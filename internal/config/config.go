// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Driver names the storage backend selected by DATABASE_URL.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Config holds everything main needs to build the application.
type Config struct {
	Port         string
	Driver       Driver
	DatabaseURL  string // postgres connection string, or a SQLite file path
	JWTSecret    string
	CookieSecure bool
	BcryptCost   int
	SessionTTL   time.Duration
	LogLevel     slog.Level
}

const minSecretLen = 32

// Load reads the configuration from environment variables.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Port: get("PORT", "8080"),
		// Default to secure cookies; disable only for local development.
		CookieSecure: getenv("COOKIE_SECURE") != "false",
		BcryptCost:   12,
		SessionTTL:   24 * time.Hour,
	}

	cfg.Driver, cfg.DatabaseURL = parseDatabaseURL(get("DATABASE_URL", "sqlite://ideabox.db"))

	cfg.JWTSecret = getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET environment variable is required")
	}
	if len(cfg.JWTSecret) < minSecretLen {
		return Config{}, fmt.Errorf("JWT_SECRET must be at least %d characters for HMAC-SHA256 security", minSecretLen)
	}

	if v := getenv("BCRYPT_COST"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		if parsed < 4 || parsed > 14 {
			return Config{}, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", parsed)
		}
		cfg.BcryptCost = parsed
	}

	if v := getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SESSION_TTL: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("SESSION_TTL must be positive, got %s", d)
		}
		cfg.SessionTTL = d
	}

	if v := getenv("LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
	}

	return cfg, nil
}

// parseDatabaseURL picks the backend from the URL scheme. Anything without a
// postgres scheme is treated as a SQLite path, with or without "sqlite://".
func parseDatabaseURL(raw string) (Driver, string) {
	switch {
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		return DriverPostgres, raw
	case strings.HasPrefix(raw, "sqlite://"):
		return DriverSQLite, strings.TrimPrefix(raw, "sqlite://")
	default:
		return DriverSQLite, raw
	}
}
