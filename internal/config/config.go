package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/johnwards/smetaseed/internal/database"
)

const defaultPostgresDSN = "postgres://localhost/smeta?sslmode=disable"

// Config holds application configuration loaded from environment variables.
type Config struct {
	Driver          database.Driver // SMETASEED_DB_DRIVER, default "sqlite"
	DSN             string          // SMETASEED_DB, default depends on driver
	Migrate         bool            // SMETASEED_MIGRATE, default true
	RegulationsFile string          // SMETASEED_REGULATIONS_FILE, optional
	MetricsFile     string          // SMETASEED_METRICS_FILE, optional
	LogLevel        slog.Level      // SMETASEED_LOG_LEVEL, default "info"
	LogFormat       string          // SMETASEED_LOG_FORMAT, "text" or "json"
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	cfg := Config{
		Driver:          database.Driver(strings.ToLower(envOr("SMETASEED_DB_DRIVER", string(database.DriverSQLite)))),
		RegulationsFile: os.Getenv("SMETASEED_REGULATIONS_FILE"),
		MetricsFile:     os.Getenv("SMETASEED_METRICS_FILE"),
		LogFormat:       strings.ToLower(envOr("SMETASEED_LOG_FORMAT", "text")),
	}

	switch cfg.Driver {
	case database.DriverSQLite:
		cfg.DSN = envOr("SMETASEED_DB", "smetaseed.db")
	case database.DriverPostgres:
		cfg.DSN = envOr("SMETASEED_DB", defaultPostgresDSN)
	default:
		return Config{}, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}

	migrate, err := strconv.ParseBool(envOr("SMETASEED_MIGRATE", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SMETASEED_MIGRATE: %w", err)
	}
	cfg.Migrate = migrate

	if err := cfg.LogLevel.UnmarshalText([]byte(envOr("SMETASEED_LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("parse SMETASEED_LOG_LEVEL: %w", err)
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return Config{}, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
