package xhttp

import (
	"net/http"
	"strconv"
	"time"
)

const (
	XForwardedFor    = "X-Forwarded-For"
	XRequestID       = "X-Request-ID"
	XContentTypeOpts = "X-Content-Type-Options"
	XFrameOpts       = "X-Frame-Options"
	ReferrerPolicy   = "Referrer-Policy"
	CacheControl     = "Cache-Control"
	RetryAfter       = "Retry-After"
	XRateLimitReason = "X-RateLimit-Reason"
)

const ContentType = "Content-Type"

const applicationJSON = "application/json"

func SetHeaderRequestID(w http.ResponseWriter, requestID string) {
	w.Header().Set(XRequestID, requestID)
}

func SetHeaderContentTypeApplicationJSON(w http.ResponseWriter) {
	w.Header().Set(ContentType, applicationJSON)
}

// SetHeaderRetryAfter rounds up to whole seconds.
func SetHeaderRetryAfter(w http.ResponseWriter, retryAfter time.Duration) {
	seconds := int((retryAfter + time.Second - 1) / time.Second)
	w.Header().Set(RetryAfter, strconv.Itoa(seconds))
}

func SetHeaderNoStore(w http.ResponseWriter) {
	w.Header().Set(CacheControl, "no-store")
}
