package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("key not found")

// Store is an opaque string key-value store. Values are written whole and
// overwrite whatever was stored under the key before.
type Store interface {
	// Get returns ErrNotFound if nothing has been stored under key.
	Get(ctx context.Context, key string) (string, error)

	Set(ctx context.Context, key string, value string) error

	Ping(ctx context.Context) error

	Close() error
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverSQLite   Driver = "sqlite"
	DriverRedis    Driver = "redis"
	DriverPostgres Driver = "postgres"
	DriverS3       Driver = "s3"
)

func ParseDriver(s string) (Driver, error) {
	switch d := Driver(strings.ToLower(strings.TrimSpace(s))); d {
	case DriverMemory, DriverSQLite, DriverRedis, DriverPostgres, DriverS3:
		return d, nil
	default:
		return "", fmt.Errorf("invalid store driver: %q (valid: memory, sqlite, redis, postgres, s3)", s)
	}
}

func (d Driver) String() string {
	return string(d)
}
