package middleware

import (
	"log/slog"
	"net/http"

	"github.com/garrettladley/weightrack/internal/xcontext"
	"github.com/garrettladley/weightrack/internal/xslog"
)

// Logger injects an enriched logger into request context.
// Must run AFTER RequestID middleware.
func Logger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := base
			if id, ok := xcontext.GetRequestID(r.Context()); ok {
				logger = logger.With(xslog.RequestID(id))
			}
			if driver, ok := xcontext.GetStoreDriver(r.Context()); ok {
				logger = logger.With(xslog.Driver(driver))
			}
			ctx := xslog.WithLogger(r.Context(), logger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StoreDriver tags every request with the storage backend serving it.
func StoreDriver(driver string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(xcontext.SetStoreDriver(r.Context(), driver)))
		})
	}
}
