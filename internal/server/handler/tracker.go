package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/garrettladley/weightrack/internal/service/tracking"
	"github.com/garrettladley/weightrack/internal/tracker"
	"github.com/garrettladley/weightrack/internal/validator"
	"github.com/garrettladley/weightrack/internal/xerrors"
	"github.com/garrettladley/weightrack/internal/xhttp"
	"github.com/garrettladley/weightrack/internal/xslog"
)

type Tracker struct {
	service tracking.Service
}

func NewTracker(service tracking.Service) *Tracker {
	return &Tracker{service: service}
}

// HandleGet handles GET /api/tracker requests.
func (h *Tracker) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	snap, err := h.service.Get(ctx)
	if err != nil {
		xerrors.WriteError(ctx, w, xerrors.ServiceUnavailable(
			xerrors.WithMessage("failed to read tracker"),
			xerrors.WithCause(err),
		))
		return
	}
	xhttp.WriteOK(w, toResponse(snap))
}

type patchInputsRequest struct {
	Field string   `json:"field"`
	Value rawValue `json:"value"`

	field tracker.Field
}

func (req *patchInputsRequest) Validate() map[string]string {
	f := validator.Fields{}
	f.Check(req.Field != "", "field", "is required")
	if req.Field != "" {
		field, err := tracker.ParseField(req.Field)
		f.Check(err == nil, "field", "unknown field")
		req.field = field
	}
	return f.Result()
}

// HandlePatchInputs handles PATCH /api/tracker/inputs requests.
func (h *Tracker) HandlePatchInputs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req patchInputsRequest
	if err := xhttp.DecodeJSON(w, r, &req); err != nil {
		writeDecodeError(ctx, w, err)
		return
	}
	if verr := validator.Validate(&req); verr != nil {
		xerrors.WriteError(ctx, w, verr)
		return
	}

	snap, err := h.service.SetField(ctx, req.field, string(req.Value))
	if err != nil {
		writeTrackerError(ctx, w, err)
		return
	}

	xslog.FromContext(ctx).InfoContext(ctx, "input updated", xslog.Field(string(req.field)))
	xhttp.WriteOK(w, toResponse(snap))
}

type putCellRequest struct {
	Value rawValue `json:"value"`
}

type cellPath struct {
	week int
	kind tracker.Kind
	day  tracker.Day
}

func parseCellPath(r *http.Request) (cellPath, map[string]string) {
	var p cellPath
	f := validator.Fields{}

	week, err := strconv.Atoi(r.PathValue("week"))
	f.Check(err == nil, "week", "must be an integer")
	f.Check(err != nil || week >= 0, "week", "must be >= 0")
	p.week = week

	kind, err := tracker.ParseKind(r.PathValue("kind"))
	f.Check(err == nil, "kind", "must be weights or calories")
	p.kind = kind

	day, err := tracker.ParseDay(r.PathValue("day"))
	f.Check(err == nil, "day", "must be 0-6 or a weekday name")
	p.day = day

	return p, f.Result()
}

// HandlePutCell handles PUT /api/tracker/weeks/{week}/{kind}/{day} requests.
// A null or empty value clears the entry.
func (h *Tracker) HandlePutCell(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, fields := parseCellPath(r)
	if fields != nil {
		xerrors.WriteError(ctx, w, xerrors.Validation(fields))
		return
	}

	var req putCellRequest
	if err := xhttp.DecodeJSON(w, r, &req); err != nil {
		writeDecodeError(ctx, w, err)
		return
	}

	snap, err := h.service.SetCell(ctx, p.week, p.kind, p.day, string(req.Value))
	if err != nil {
		writeTrackerError(ctx, w, err)
		return
	}

	xslog.FromContext(ctx).InfoContext(ctx, "entry updated",
		xslog.WeekIndex(p.week),
		xslog.Kind(string(p.kind)),
		xslog.Day(p.day.String()),
	)
	xhttp.WriteOK(w, toResponse(snap))
}

// HandleAddWeek handles POST /api/tracker/weeks requests.
func (h *Tracker) HandleAddWeek(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	snap, err := h.service.AddWeek(ctx)
	if err != nil {
		writeTrackerError(ctx, w, err)
		return
	}

	xslog.FromContext(ctx).InfoContext(ctx, "week added", xslog.WeekCount(len(snap.State.Weeks)))
	xhttp.WriteCreated(w, toResponse(snap))
}

func writeDecodeError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, xhttp.ErrUnsupportedMediaType) {
		xerrors.WriteError(ctx, w, xerrors.UnsupportedMediaType(xerrors.WithMessage(err.Error())))
		return
	}
	xerrors.WriteError(ctx, w, xerrors.BadRequest(xerrors.WithMessage("invalid request body"), xerrors.WithCause(err)))
}

// writeTrackerError maps domain errors to validation responses. Anything
// else is a storage failure.
func writeTrackerError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tracker.ErrInvalidDate), errors.Is(err, tracker.ErrInvalidUnit):
		xerrors.WriteError(ctx, w, xerrors.Field("value", err.Error(), xerrors.WithCause(err)))
	case errors.Is(err, tracker.ErrInvalidField):
		xerrors.WriteError(ctx, w, xerrors.Field("field", err.Error(), xerrors.WithCause(err)))
	case errors.Is(err, tracker.ErrWeekOutOfRange):
		xerrors.WriteError(ctx, w, xerrors.Field("week", err.Error(), xerrors.WithCause(err)))
	case errors.Is(err, tracker.ErrDayOutOfRange):
		xerrors.WriteError(ctx, w, xerrors.Field("day", err.Error(), xerrors.WithCause(err)))
	case errors.Is(err, tracker.ErrInvalidKind):
		xerrors.WriteError(ctx, w, xerrors.Field("kind", err.Error(), xerrors.WithCause(err)))
	default:
		xerrors.WriteError(ctx, w, xerrors.ServiceUnavailable(
			xerrors.WithMessage("failed to update tracker"),
			xerrors.WithCause(err),
		))
	}
}
