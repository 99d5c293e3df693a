package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"paydesk/internal/platform/requestctx"
)

// RequestID honors an incoming X-Request-ID so ids stay stable across a
// proxy hop, and mints one otherwise.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(requestctx.WithRequestID(r.Context(), id)))
	})
}
