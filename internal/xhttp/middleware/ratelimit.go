package middleware

import (
	"net/http"
	"time"

	"github.com/garrettladley/weightrack/internal/storage"
	"github.com/garrettladley/weightrack/internal/xerrors"
	"github.com/garrettladley/weightrack/internal/xhttp"
	"github.com/garrettladley/weightrack/internal/xslog"
)

const ipRateLimitReason = "ip_rate_limit"

// RateLimit applies per-IP rate limiting. Requests are refused with 503 if
// the limiter itself fails.
func RateLimit(limiter storage.RateLimiter, retryAfter time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := xhttp.GetRequestIP(r)

			allowed, err := limiter.Allow(r.Context(), ip)
			if err != nil {
				xslog.FromContext(r.Context()).ErrorContext(r.Context(), "rate limit check failed",
					xslog.ErrorGroup(err),
					xslog.IP(ip),
				)
				xerrors.WriteError(r.Context(), w, xerrors.ServiceUnavailable(
					xerrors.WithMessage("rate limit check failed"),
					xerrors.WithCause(err),
				))
				return
			}

			if !allowed {
				xerrors.WriteError(r.Context(), w, xerrors.TooManyRequests(
					xerrors.WithRetryAfter(retryAfter),
					xerrors.WithReason(ipRateLimitReason),
				))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
