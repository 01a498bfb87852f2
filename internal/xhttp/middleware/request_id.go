package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/garrettladley/weightrack/internal/xcontext"
	"github.com/garrettladley/weightrack/internal/xhttp"
)

const maxRequestIDLen = 128

type RequestIDMiddleware struct {
	IDFunc func(*http.Request) string
	// TrustHeader reuses a well-formed incoming X-Request-ID.
	TrustHeader bool
}

type RequestIDOption func(*RequestIDMiddleware)

func WithIDFunc(fn func(*http.Request) string) RequestIDOption {
	return func(m *RequestIDMiddleware) { m.IDFunc = fn }
}

func WithTrustedHeader() RequestIDOption {
	return func(m *RequestIDMiddleware) { m.TrustHeader = true }
}

func RequestID(opts ...RequestIDOption) func(http.Handler) http.Handler {
	middleware := &RequestIDMiddleware{
		IDFunc: func(*http.Request) string {
			return uuid.New().String()
		},
	}
	for _, opt := range opts {
		opt(middleware)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(xhttp.XRequestID)
			if !middleware.TrustHeader || !validRequestID(id) {
				id = middleware.IDFunc(r)
			}
			ctx := xcontext.SetRequestID(r.Context(), id)
			xhttp.SetHeaderRequestID(w, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}
