package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/johnwards/smetaseed/internal/config"
	"github.com/johnwards/smetaseed/internal/database"
	"github.com/johnwards/smetaseed/internal/metrics"
	"github.com/johnwards/smetaseed/internal/regulation"
	"github.com/johnwards/smetaseed/internal/seed"
	"github.com/johnwards/smetaseed/internal/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.SetDefault(newLogger(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.Driver, cfg.DSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if cfg.Migrate {
		if err := database.Migrate(ctx, db, cfg.Driver); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	provider := regulation.Embedded()
	if cfg.RegulationsFile != "" {
		provider = regulation.File(cfg.RegulationsFile)
	}

	m := metrics.New()
	sd := seed.New(store.New(db, cfg.Driver), provider)
	sd.Metrics = m

	slog.Info("starting seed", "driver", cfg.Driver, "regulations_file", cfg.RegulationsFile)
	runErr := sd.Run(ctx)

	if cfg.MetricsFile != "" {
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			slog.Warn("write metrics textfile", "path", cfg.MetricsFile, "error", err)
		}
	}

	if runErr != nil {
		return fmt.Errorf("seed data: %w", runErr)
	}
	return nil
}

func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
