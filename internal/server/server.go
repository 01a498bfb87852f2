// Package server assembles the HTTP API over the tracking service.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/garrettladley/weightrack/internal/metrics"
	"github.com/garrettladley/weightrack/internal/server/handler"
	"github.com/garrettladley/weightrack/internal/service/tracking"
	"github.com/garrettladley/weightrack/internal/storage"
	"github.com/garrettladley/weightrack/internal/xhttp/middleware"
)

type Deps struct {
	Logger  *slog.Logger
	Service tracking.Service
	Store   handler.Pinger
	Driver  storage.Driver
	Metrics *metrics.Metrics

	Limiter        storage.RateLimiter
	RetryAfter     time.Duration
	AllowedOrigins []string
}

// NewHandler routes every endpoint and wraps them in the middleware chain.
// /health and /metrics skip rate limiting.
func NewHandler(d Deps) http.Handler {
	trackerHandler := handler.NewTracker(d.Service)
	healthHandler := handler.NewHealth(d.Store)

	apiMux := http.NewServeMux()
	apiMux.HandleFunc("GET /api/tracker", trackerHandler.HandleGet)
	apiMux.HandleFunc("PATCH /api/tracker/inputs", trackerHandler.HandlePatchInputs)
	apiMux.HandleFunc("POST /api/tracker/weeks", trackerHandler.HandleAddWeek)
	apiMux.HandleFunc("PUT /api/tracker/weeks/{week}/{kind}/{day}", trackerHandler.HandlePutCell)
	apiWrapped := middleware.Chain(apiMux,
		middleware.CORS(d.AllowedOrigins),
		middleware.RateLimit(d.Limiter, d.RetryAfter),
		middleware.Metrics(d.Metrics),
	)

	opsMux := http.NewServeMux()
	opsMux.HandleFunc("GET /health", healthHandler.HandleHealth)
	opsMux.Handle("GET /metrics", d.Metrics.Handler())
	opsWrapped := middleware.Chain(opsMux, middleware.Metrics(d.Metrics))

	mux := http.NewServeMux()
	mux.Handle("/api/", apiWrapped)
	mux.Handle("/health", opsWrapped)
	mux.Handle("/metrics", opsWrapped)

	return middleware.Chain(mux,
		middleware.Recovery,
		middleware.Logging,
		middleware.Logger(d.Logger),
		middleware.RequestID(),
		middleware.StoreDriver(d.Driver.String()),
		middleware.SecurityHeaders,
	)
}
