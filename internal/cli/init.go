// Package cli consolidates the initialization shared by cmd/cruscotto,
// cmd/cruscotto-worker and cmd/cruscotto-backup.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"cruscotto/internal/backend"
	"cruscotto/internal/config"
	applog "cruscotto/internal/log"
)

// SetupLogger initializes structured logging and sets it as the
// default logger. Level comes from LOG_LEVEL.
func SetupLogger(component string) *applog.Logger {
	logger := applog.New(applog.Config{
		Level:     applog.ParseLevel(os.Getenv("LOG_LEVEL")),
		Component: component,
	})
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// OpenStore opens the configured store backend or exits on failure.
func OpenStore(logger *applog.Logger, cfg *config.Config) *backend.Result {
	result, err := backend.Open(cfg)
	if err != nil {
		logger.Error("Failed to open store backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	return result
}
