// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	appenv "github.com/garrettladley/weightrack/internal/env"
	"github.com/garrettladley/weightrack/internal/paths"
	"github.com/garrettladley/weightrack/internal/storage"
	"github.com/garrettladley/weightrack/internal/xslog"
)

type Config struct {
	Env      appenv.Environment `env:"ENV" envDefault:"development"`
	LogLevel string             `env:"LOG_LEVEL" envDefault:"info"`
	Store    Store              `envPrefix:"STORE_"`
	Session  Session            `envPrefix:"SESSION_"`
	Server   Server
}

type Store struct {
	Driver      string `env:"DRIVER" envDefault:"sqlite"`
	SQLitePath  string `env:"SQLITE_PATH"`
	RedisURL    string `env:"REDIS_URL"`
	PostgresURL string `env:"POSTGRES_URL"`
	S3          S3     `envPrefix:"S3_"`
}

type S3 struct {
	Bucket    string `env:"BUCKET"`
	Region    string `env:"REGION" envDefault:"us-east-1"`
	Endpoint  string `env:"ENDPOINT"`
	PathStyle bool   `env:"PATH_STYLE" envDefault:"false"`
	Prefix    string `env:"PREFIX" envDefault:"weightrack/"`
}

type Session struct {
	Latency        time.Duration `env:"LATENCY" envDefault:"500ms"`
	SignOutLatency time.Duration `env:"SIGN_OUT_LATENCY" envDefault:"200ms"`
}

type Server struct {
	Port               string   `env:"PORT" envDefault:"8080"`
	RateLimit          float64  `env:"RATE_LIMIT" envDefault:"10"`
	RateBurst          int      `env:"RATE_BURST" envDefault:"20"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

func Read() (Config, error) {
	return env.ParseAs[Config]()
}

func (c Config) Level() xslog.Level {
	return xslog.ParseOr(c.LogLevel, xslog.Default)
}

// StoreConfig validates the driver and fills in the default sqlite path.
func (c Config) StoreConfig() (storage.Config, error) {
	driver, err := storage.ParseDriver(c.Store.Driver)
	if err != nil {
		return storage.Config{}, err
	}

	cfg := storage.Config{
		Driver:      driver,
		SQLitePath:  c.Store.SQLitePath,
		RedisURL:    c.Store.RedisURL,
		PostgresURL: c.Store.PostgresURL,
		S3: storage.S3Config{
			Bucket:    c.Store.S3.Bucket,
			Region:    c.Store.S3.Region,
			Endpoint:  c.Store.S3.Endpoint,
			PathStyle: c.Store.S3.PathStyle,
			Prefix:    c.Store.S3.Prefix,
		},
	}

	if driver == storage.DriverSQLite && cfg.SQLitePath == "" {
		if _, err := paths.EnsureDir(); err != nil {
			return storage.Config{}, err
		}
		path, err := paths.DB()
		if err != nil {
			return storage.Config{}, fmt.Errorf("failed to resolve sqlite path: %w", err)
		}
		cfg.SQLitePath = path
	}

	return cfg, nil
}
