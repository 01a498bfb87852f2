package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/garrettladley/weightrack/internal/migrations"
)

const driverName = "sqlite3"

// Open opens the sqlite database at path and brings its schema up to date.
func Open(ctx context.Context, path string) (*sql.DB, *Queries, error) {
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	sqlDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// sqlite serializes writers; one connection keeps writes in issue order.
	sqlDB.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if _, err := migrations.Apply(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return sqlDB, New(sqlDB), nil
}
