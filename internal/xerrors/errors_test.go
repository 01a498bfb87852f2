package xerrors

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestAs(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	wrapped := fmt.Errorf("handler: %w", BadRequest(WithMessage("bad week"), WithCause(cause)))

	got := As(wrapped)
	if got == nil {
		t.Fatal("As() = nil")
	}
	if got.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d", got.StatusCode)
	}
	if !errors.Is(wrapped, cause) {
		t.Error("cause not reachable through Unwrap")
	}
	if got.Error() != "bad week: boom" {
		t.Errorf("Error() = %q", got.Error())
	}
	if As(cause) != nil {
		t.Error("As(plain error) != nil")
	}
}

func TestConstructorStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *Error
		want int
	}{
		{name: "bad request", err: BadRequest(), want: http.StatusBadRequest},
		{name: "not found", err: NotFound(), want: http.StatusNotFound},
		{name: "too many requests", err: TooManyRequests(), want: http.StatusTooManyRequests},
		{name: "internal", err: Internal(), want: http.StatusInternalServerError},
		{name: "service unavailable", err: ServiceUnavailable(), want: http.StatusServiceUnavailable},
		{name: "unsupported media type", err: UnsupportedMediaType(), want: http.StatusUnsupportedMediaType},
	}

	for _, tt := range tests {
		if tt.err.StatusCode != tt.want {
			t.Errorf("%s: StatusCode = %d, want %d", tt.name, tt.err.StatusCode, tt.want)
		}
	}
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
		wantHeader map[string]string
	}{
		{
			name:       "plain error becomes internal",
			err:        errors.New("secret detail"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"message":"internal server error"}`,
		},
		{
			name:       "validation fields",
			err:        Field("value", "must be a number"),
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `{"message":"must be a number","fields":{"value":"must be a number"}}`,
		},
		{
			name:       "rate limited",
			err:        TooManyRequests(WithRetryAfter(time.Second), WithReason("ip_rate_limit")),
			wantStatus: http.StatusTooManyRequests,
			wantBody:   `{"message":"too many requests"}`,
			wantHeader: map[string]string{"Retry-After": "1", "X-RateLimit-Reason": "ip_rate_limit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			WriteError(t.Context(), rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if diff := cmp.Diff(tt.wantBody, strings.TrimSpace(rec.Body.String())); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
			for k, v := range tt.wantHeader {
				if got := rec.Header().Get(k); got != v {
					t.Errorf("header %s = %q, want %q", k, got, v)
				}
			}
		})
	}
}
