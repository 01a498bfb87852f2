package main

import (
	"errors"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/garrettladley/weightrack/internal/config"
	"github.com/garrettladley/weightrack/internal/paths"
	"github.com/garrettladley/weightrack/internal/session"
	"github.com/garrettladley/weightrack/internal/tracker"
	"github.com/garrettladley/weightrack/internal/tui"
	"github.com/garrettladley/weightrack/internal/xslog"
)

func runTUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Read()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	if _, err := paths.EnsureDir(); err != nil {
		return err
	}
	logPath, err := paths.Log()
	if err != nil {
		return err
	}
	logger, closeLog, err := xslog.NewFileLogger(logPath, cfg.Level())
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()
	ctx = xslog.WithLogger(ctx, logger)

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	autosaver := tracker.NewAutosaver(ctx, store, logger)
	defer func() {
		if err := autosaver.Close(); err != nil {
			logger.ErrorContext(ctx, "failed to flush saves", xslog.Error(err))
		}
	}()

	provider := session.NewProvider(
		session.WithLatency(cfg.Session.Latency, cfg.Session.SignOutLatency),
		session.WithLogger(logger),
	)
	events, stopWatching := tui.WatchSession(ctx, provider)
	defer stopWatching()

	model := tui.New(tui.Deps{
		Ctx:           ctx,
		Logger:        logger,
		Session:       provider,
		Store:         store,
		Autosaver:     autosaver,
		SessionEvents: events,
	})

	logger.InfoContext(ctx, "starting tui",
		xslog.Version(),
		xslog.Driver(cfg.Store.Driver),
		slog.String("env", cfg.Env.String()),
	)

	p := tea.NewProgram(&model, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui exited: %w", err)
	}
	return nil
}
