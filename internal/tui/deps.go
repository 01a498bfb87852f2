package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/garrettladley/weightrack/internal/session"
	"github.com/garrettladley/weightrack/internal/tracker"
)

type Deps struct {
	Ctx       context.Context
	Logger    *slog.Logger
	Session   *session.Provider
	Store     *tracker.Store
	Autosaver *tracker.Autosaver
	// SessionEvents is fed by WatchSession.
	SessionEvents <-chan SessionChangedMsg
	Now           func() time.Time
}
