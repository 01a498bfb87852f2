package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/garrettladley/weightrack/internal/config"
	"github.com/garrettladley/weightrack/internal/metrics"
	xredis "github.com/garrettladley/weightrack/internal/redis"
	"github.com/garrettladley/weightrack/internal/server"
	"github.com/garrettladley/weightrack/internal/service/tracking"
	"github.com/garrettladley/weightrack/internal/storage"
	"github.com/garrettladley/weightrack/internal/tracker"
	"github.com/garrettladley/weightrack/internal/xslog"
)

const (
	keyPort      = "port"
	keyRateLimit = "rate_limit"
	keyRateBurst = "rate_burst"

	shutdownTimeout = 30 * time.Second
	rateWindow      = time.Second
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Read()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read config: %v\n", err)
		os.Exit(1)
	}

	logger := xslog.NewLogger(os.Stdout, cfg.Level())
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", xslog.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	storeCfg, err := cfg.StoreConfig()
	if err != nil {
		return fmt.Errorf("invalid store config: %w", err)
	}

	m := metrics.New()

	kv, limiter, err := initStorage(ctx, cfg, storeCfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if err := kv.Close(); err != nil {
			logger.ErrorContext(ctx, "failed to close store", xslog.Error(err))
		}
		if err := limiter.Close(); err != nil {
			logger.ErrorContext(ctx, "failed to close rate limiter", xslog.Error(err))
		}
	}()

	instrumented := m.InstrumentStore(kv, storeCfg.Driver)
	service := tracking.New(
		tracker.NewStore(instrumented, logger),
		tracking.WithObserver(m),
	)

	handler := server.NewHandler(server.Deps{
		Logger:         logger,
		Service:        service,
		Store:          instrumented,
		Driver:         storeCfg.Driver,
		Metrics:        m,
		Limiter:        limiter,
		RetryAfter:     retryAfter(cfg.Server.RateLimit),
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.InfoContext(ctx, "starting server",
			xslog.Version(),
			slog.String(keyPort, cfg.Server.Port),
			xslog.Driver(storeCfg.Driver.String()),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.InfoContext(ctx, "shutdown signal received, initiating graceful shutdown")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.InfoContext(ctx, "server stopped")
	return nil
}

type closingLimiter interface {
	storage.RateLimiter
	Close() error
}

// initStorage opens the tracker store. A redis deployment also shares its
// client with the rate limiter so limits hold across processes.
func initStorage(ctx context.Context, cfg config.Config, storeCfg storage.Config, logger *slog.Logger) (storage.Store, closingLimiter, error) {
	if storeCfg.Driver == storage.DriverRedis {
		logger.InfoContext(ctx, "initializing redis store and rate limiter")
		client, err := xredis.New(ctx, xredis.Config{URL: storeCfg.RedisURL})
		if err != nil {
			return nil, nil, err
		}
		limit := max(int(cfg.Server.RateLimit*rateWindow.Seconds()), cfg.Server.RateBurst)
		return storage.NewRedisStore(client), nopCloser{storage.NewRedisRateLimiter(client, limit, rateWindow)}, nil
	}

	kv, err := storage.Open(ctx, logger, storeCfg)
	if err != nil {
		return nil, nil, err
	}
	logger.InfoContext(ctx, "initializing in-memory rate limiter",
		slog.Float64(keyRateLimit, cfg.Server.RateLimit),
		slog.Int(keyRateBurst, cfg.Server.RateBurst),
	)
	return kv, storage.NewMemoryRateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst), nil
}

// nopCloser leaves the shared redis client to the store's Close.
type nopCloser struct {
	storage.RateLimiter
}

func (nopCloser) Close() error { return nil }

func retryAfter(ratePerSec float64) time.Duration {
	if ratePerSec <= 0 {
		return time.Second
	}
	return max(time.Duration(float64(time.Second)/ratePerSec), time.Second)
}
