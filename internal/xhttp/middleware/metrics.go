package middleware

import (
	"net/http"
	"time"
)

// RequestObserver records one finished request.
type RequestObserver interface {
	ObserveRequest(route string, method string, status int, d time.Duration)
}

// Metrics reports every request under its ServeMux pattern so path values
// do not explode label cardinality. Unmatched requests share one route.
// Must wrap the ServeMux directly, since the mux records the pattern on the
// request it receives.
func Metrics(observer RequestObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrap(w)
			next.ServeHTTP(wrapped, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			observer.ObserveRequest(route, r.Method, wrapped.status, time.Since(start))
		})
	}
}
