package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/amminlb/corporateai/internal/api/response"
)

// AdminAuth guards the administrative surface with a static bearer token.
// An empty configured token disables the surface entirely.
func AdminAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				response.NotFound(w, "not found")
				return
			}

			authHeader := r.Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				response.Unauthorized(w, "missing or malformed authorization header")
				return
			}
			if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(token)) != 1 {
				response.Unauthorized(w, "invalid token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
