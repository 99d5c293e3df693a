package middleware

import (
	"log/slog"
	"net/http"

	"paydesk/internal/platform/requestctx"
	"paydesk/internal/transport/http/api"
)

func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic recovered",
					"panic", rec,
					"path", r.URL.Path,
					"requestId", requestctx.GetRequestID(r.Context()),
				)
				api.Fail(w, r, http.StatusInternalServerError, "internal_error", "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
