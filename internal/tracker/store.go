package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/garrettladley/weightrack/internal/storage"
	"github.com/garrettladley/weightrack/internal/xslog"
)

// KV is the subset of storage.Store the tracker needs.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
}

// Store persists a State as one blob under StorageKey.
type Store struct {
	kv     KV
	logger *slog.Logger
}

func NewStore(kv KV, logger *slog.Logger) *Store {
	return &Store{kv: kv, logger: logger}
}

// Read returns the stored state, or Default when nothing is stored yet.
// Backend and decode failures are returned.
func (s *Store) Read(ctx context.Context) (State, error) {
	raw, err := s.kv.Get(ctx, StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return State{}, fmt.Errorf("failed to read tracker state: %w", err)
	}
	return Unmarshal([]byte(raw))
}

// Load is Read that never fails: any error is logged and yields Default.
func (s *Store) Load(ctx context.Context) State {
	state, err := s.Read(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load tracker state, using defaults", xslog.Error(err))
		return Default()
	}
	s.logger.DebugContext(ctx, "loaded tracker state", xslog.WeekCount(len(state.Weeks)))
	return state
}

// Save overwrites the stored blob with state.
func (s *Store) Save(ctx context.Context, state State) error {
	data, err := Marshal(state)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, StorageKey, string(data)); err != nil {
		s.logger.ErrorContext(ctx, "failed to save tracker state", xslog.Error(err))
		return fmt.Errorf("failed to save tracker state: %w", err)
	}
	return nil
}

// Export returns the raw stored blob.
func (s *Store) Export(ctx context.Context) (string, error) {
	raw, err := s.kv.Get(ctx, StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		data, err := Marshal(Default())
		return string(data), err
	}
	return raw, err
}

// Import decodes raw and saves the normalized result.
func (s *Store) Import(ctx context.Context, raw []byte) (State, error) {
	state, err := Unmarshal(raw)
	if err != nil {
		return State{}, err
	}
	if err := s.Save(ctx, state); err != nil {
		return State{}, err
	}
	return state, nil
}
