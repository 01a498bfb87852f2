package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/garrettladley/weightrack/internal/version"
	"github.com/garrettladley/weightrack/internal/xerrors"
	"github.com/garrettladley/weightrack/internal/xhttp"
)

const pingTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type Health struct {
	store Pinger
}

func NewHealth(store Pinger) *Health {
	return &Health{store: store}
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// HandleHealth handles GET /health requests. It fails when the store is
// unreachable.
func (h *Health) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		xerrors.WriteError(r.Context(), w, xerrors.ServiceUnavailable(
			xerrors.WithMessage("store unavailable"),
			xerrors.WithCause(err),
		))
		return
	}

	xhttp.SetHeaderNoStore(w)
	xhttp.WriteOK(w, healthResponse{Status: "ok", Version: version.Get()})
}
