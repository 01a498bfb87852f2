package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/garrettladley/weightrack/internal/xhttp"
)

// CORS allows browser clients from origins to call the API. A single "*"
// allows any origin.
func CORS(origins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodOptions,
		},
		AllowedHeaders: []string{xhttp.ContentType, xhttp.XRequestID},
		ExposedHeaders: []string{xhttp.XRequestID, xhttp.RetryAfter, xhttp.XRateLimitReason},
		MaxAge:         600,
	})
	return c.Handler
}
