// AngelaMos | 2026
// bootstrap.go

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/carterperez-dev/teamcomm/internal/config"
	"github.com/carterperez-dev/teamcomm/internal/core"
	"github.com/carterperez-dev/teamcomm/internal/schema"
)

// bootstrap loads configuration, installs the default logger and opens the
// database. Every subcommand starts here.
func bootstrap(
	ctx context.Context,
	g *Globals,
) (*config.Config, *slog.Logger, *core.Database, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, nil, err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		logger.Error("database unavailable", "error", err)
		return nil, nil, nil, err
	}
	logger.Info("database connected",
		"schema", cfg.Database.Schema,
		"max_open_conns", cfg.Database.MaxOpenConns,
	)

	return cfg, logger, db, nil
}

func newReconciler(
	db *core.Database,
	logger *slog.Logger,
	metrics *core.Metrics,
) *schema.Reconciler {
	return schema.NewForDatabase(db.DB, db.Schema,
		schema.WithLogger(logger),
		schema.WithMetrics(metrics),
	)
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
