// Package tracking serializes read-modify-write access to the stored
// tracker for callers outside the TUI.
package tracking

import (
	"context"

	"github.com/garrettladley/weightrack/internal/tracker"
)

// Snapshot is a state together with the stats derived from it at the time
// it was read.
type Snapshot struct {
	State tracker.State
	Stats tracker.Stats
}

type Service interface {
	Get(ctx context.Context) (Snapshot, error)

	SetField(ctx context.Context, field tracker.Field, raw string) (Snapshot, error)

	SetCell(ctx context.Context, week int, kind tracker.Kind, day tracker.Day, raw string) (Snapshot, error)

	AddWeek(ctx context.Context) (Snapshot, error)

	// Export returns the stored blob verbatim.
	Export(ctx context.Context) (string, error)

	Import(ctx context.Context, raw []byte) (Snapshot, error)

	Reset(ctx context.Context) (Snapshot, error)
}

// Observer is notified after each successful edit.
type Observer interface {
	Edited(op string)
}
