package handler

import (
	"crypto/subtle"
	"net/http"
)

const adminKeyHeader = "X-Admin-Key"

// RequireAdminKey gates a route group behind a static admin key carried in
// the X-Admin-Key header. The comparison is constant-time. An empty
// configured key disables the gated routes entirely.
func RequireAdminKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(adminKeyHeader)
			if key == "" || got == "" ||
				subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
