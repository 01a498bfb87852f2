package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/garrettladley/weightrack/internal/config"
	"github.com/garrettladley/weightrack/internal/service/tracking"
	"github.com/garrettladley/weightrack/internal/storage"
	"github.com/garrettladley/weightrack/internal/tracker"
	"github.com/garrettladley/weightrack/internal/xslog"
)

// openStore opens the configured backend. The returned close func must be
// called once the store is no longer used.
func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (*tracker.Store, func(), error) {
	storeCfg, err := cfg.StoreConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid store config: %w", err)
	}

	kv, err := storage.Open(ctx, logger, storeCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s store: %w", storeCfg.Driver, err)
	}

	closeFn := func() {
		if err := kv.Close(); err != nil {
			logger.ErrorContext(ctx, "failed to close store", xslog.Driver(storeCfg.Driver.String()), xslog.Error(err))
		}
	}
	return tracker.NewStore(kv, logger), closeFn, nil
}

// withTracker runs fn against the tracking service for one-shot commands.
// Logs go to stderr so command output stays clean.
func withTracker(ctx context.Context, fn func(svc tracking.Service) error) error {
	cfg, err := config.Read()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	logger := xslog.NewLogger(stderr, cfg.Level())
	ctx = xslog.WithLogger(ctx, logger)

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	return fn(tracking.New(store))
}
