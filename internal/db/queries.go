package db

import (
	"context"
	"database/sql"
	"time"
)

type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Querier interface {
	GetKV(ctx context.Context, key string) (string, error)
	UpsertKV(ctx context.Context, arg UpsertKVParams) error
}

var _ Querier = (*Queries)(nil)

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

const getKV = `SELECT value FROM kv WHERE key = ?`

// GetKV returns sql.ErrNoRows when key is absent.
func (q *Queries) GetKV(ctx context.Context, key string) (string, error) {
	var value string
	err := q.db.QueryRowContext(ctx, getKV, key).Scan(&value)
	return value, err
}

const upsertKV = `
INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
`

type UpsertKVParams struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

func (q *Queries) UpsertKV(ctx context.Context, arg UpsertKVParams) error {
	_, err := q.db.ExecContext(ctx, upsertKV, arg.Key, arg.Value, arg.UpdatedAt.UTC())
	return err
}
