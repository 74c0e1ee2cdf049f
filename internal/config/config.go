// Package config reads the server configuration from the environment,
// after loading an optional .env file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Config holds everything the server needs at startup.
type Config struct {
	Port             int
	DBPath           string
	Username         string
	Password         string
	PasswordHash     string
	SessionSecret    string
	AlertHorizonDays int
	CurrencySymbol   string
	LogLevel         string
}

// Load reads a .env file if one exists, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using system environment")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("PORT out of range: %d", port)
	}

	horizon, err := getEnvInt("ALERT_HORIZON_DAYS", 0)
	if err != nil {
		return nil, err
	}
	if horizon < 0 {
		return nil, fmt.Errorf("ALERT_HORIZON_DAYS cannot be negative: %d", horizon)
	}

	cfg := &Config{
		Port:             port,
		DBPath:           getEnv("DB_PATH", "./data/case_ledger.db"),
		Username:         getEnv("APP_USERNAME", "admin"),
		Password:         os.Getenv("APP_PASSWORD"),
		PasswordHash:     os.Getenv("APP_PASSWORD_HASH"),
		SessionSecret:    os.Getenv("SESSION_SECRET"),
		AlertHorizonDays: horizon,
		CurrencySymbol:   getEnv("CURRENCY_SYMBOL", "Rs."),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}

	if cfg.Password == "" && cfg.PasswordHash == "" {
		return nil, fmt.Errorf("APP_PASSWORD or APP_PASSWORD_HASH must be set")
	}

	// Without a configured secret, sessions last until the process exits.
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = uuid.NewString() + uuid.NewString()
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}
