package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	pgmigrations "github.com/garrettladley/weightrack/internal/migrations/postgres"
	"github.com/garrettladley/weightrack/internal/redis"
	"github.com/garrettladley/weightrack/internal/xslog"
)

type Config struct {
	Driver      Driver
	SQLitePath  string
	RedisURL    string
	PostgresURL string
	S3          S3Config
}

// Open connects the store selected by cfg.Driver.
func Open(ctx context.Context, logger *slog.Logger, cfg Config) (Store, error) {
	logger.DebugContext(ctx, "opening store", xslog.Driver(string(cfg.Driver)))

	switch cfg.Driver {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("sqlite path required")
		}
		return OpenSQLite(ctx, cfg.SQLitePath)
	case DriverRedis:
		client, err := redis.New(ctx, redis.Config{URL: cfg.RedisURL})
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client), nil
	case DriverPostgres:
		return openPostgres(ctx, logger, cfg.PostgresURL)
	case DriverS3:
		return NewS3Store(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unsupported store driver: %q", cfg.Driver)
	}
}

func openPostgres(ctx context.Context, logger *slog.Logger, url string) (*PostgresStore, error) {
	if url == "" {
		return nil, errors.New("postgres URL required")
	}

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	applied, err := pgmigrations.Apply(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to apply postgres migrations: %w", err)
	}
	if applied > 0 {
		logger.InfoContext(ctx, "applied postgres migrations", xslog.Count(applied))
	}

	return NewPostgresStore(pool), nil
}
