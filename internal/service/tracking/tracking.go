package tracking

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/garrettladley/weightrack/internal/tracker"
	"github.com/garrettladley/weightrack/internal/xslog"
)

const (
	opSetField = "set_field"
	opSetCell  = "set_cell"
	opAddWeek  = "add_week"
	opImport   = "import"
	opReset    = "reset"
)

var _ Service = (*Tracker)(nil)

type Tracker struct {
	mu       sync.Mutex
	store    *tracker.Store
	now      func() time.Time
	observer Observer
}

type Option func(*Tracker)

func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

func WithObserver(o Observer) Option {
	return func(t *Tracker) { t.observer = o }
}

func New(store *tracker.Store, opts ...Option) *Tracker {
	t := &Tracker{store: store, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tracker) snapshot(s tracker.State) Snapshot {
	return Snapshot{State: s, Stats: s.Stats(t.now())}
}

func (t *Tracker) Get(ctx context.Context) (Snapshot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, err := t.store.Read(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return t.snapshot(s), nil
}

// update reads the stored state, applies fn and saves the result. Read
// failures abort the update so a backend hiccup never overwrites real data
// with defaults.
func (t *Tracker) update(ctx context.Context, op string, fn func(tracker.State) (tracker.State, error)) (Snapshot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, err := t.store.Read(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	next, err := fn(s)
	if err != nil {
		return Snapshot{}, err
	}
	if err := t.store.Save(ctx, next); err != nil {
		return Snapshot{}, err
	}

	xslog.FromContext(ctx).DebugContext(ctx, "tracker updated", slog.String("op", op))
	if t.observer != nil {
		t.observer.Edited(op)
	}
	return t.snapshot(next), nil
}

func (t *Tracker) SetField(ctx context.Context, field tracker.Field, raw string) (Snapshot, error) {
	return t.update(ctx, opSetField, func(s tracker.State) (tracker.State, error) {
		return s.SetField(field, raw)
	})
}

func (t *Tracker) SetCell(ctx context.Context, week int, kind tracker.Kind, day tracker.Day, raw string) (Snapshot, error) {
	return t.update(ctx, opSetCell, func(s tracker.State) (tracker.State, error) {
		return s.SetCell(week, kind, day, raw)
	})
}

func (t *Tracker) AddWeek(ctx context.Context) (Snapshot, error) {
	return t.update(ctx, opAddWeek, func(s tracker.State) (tracker.State, error) {
		return s.AddWeek(), nil
	})
}

func (t *Tracker) Export(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.Export(ctx)
}

// Import replaces whatever is stored, even a blob that no longer decodes.
func (t *Tracker) Import(ctx context.Context, raw []byte) (Snapshot, error) {
	s, err := tracker.Unmarshal(raw)
	if err != nil {
		return Snapshot{}, err
	}
	return t.replace(ctx, opImport, s)
}

func (t *Tracker) Reset(ctx context.Context) (Snapshot, error) {
	return t.replace(ctx, opReset, tracker.Default())
}

func (t *Tracker) replace(ctx context.Context, op string, s tracker.State) (Snapshot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.Save(ctx, s); err != nil {
		return Snapshot{}, err
	}
	if t.observer != nil {
		t.observer.Edited(op)
	}
	return t.snapshot(s), nil
}
