package middleware

import (
	"net/http"
	"time"

	"flims/pkg/requestcontext"
)

// RequestTime pins one "now" per request so the access log and any
// downstream code measure from the same instant.
func RequestTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
