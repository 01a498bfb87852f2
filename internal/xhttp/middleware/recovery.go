package middleware

import (
	"fmt"
	"net/http"

	"github.com/garrettladley/weightrack/internal/xerrors"
	"github.com/garrettladley/weightrack/internal/xslog"
)

func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}
				xslog.FromContext(r.Context()).ErrorContext(
					r.Context(),
					"panic recovered",
					xslog.RequestGroup(r),
					xslog.ErrorGroupWithStack(err),
				)
				xerrors.WriteError(r.Context(), w, xerrors.Internal(xerrors.WithCause(fmt.Errorf("panic: %v", err))))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
