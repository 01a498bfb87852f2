package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/garrettladley/weightrack/internal/db"
)

var _ Store = (*SQLiteStore)(nil)

type SQLiteStore struct {
	sqlDB   *sql.DB
	queries db.Querier
	now     func() time.Time
}

func NewSQLiteStore(sqlDB *sql.DB, queries db.Querier) *SQLiteStore {
	return &SQLiteStore{sqlDB: sqlDB, queries: queries, now: time.Now}
}

// OpenSQLite opens (creating if needed) the database file at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	sqlDB, queries, err := db.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	return NewSQLiteStore(sqlDB, queries), nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.queries.GetKV(ctx, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get %q: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value string) error {
	err := s.queries.UpsertKV(ctx, db.UpsertKVParams{
		Key:       key,
		Value:     value,
		UpdatedAt: s.now(),
	})
	if err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.sqlDB.Close()
}
