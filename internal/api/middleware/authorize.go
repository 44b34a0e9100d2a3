package middleware

import (
	"net/http"
	"slices"

	"github.com/sndarsmle/server-NEWSAPP/internal/domain"
)

// RequireRoles rejects callers whose role is not in the allow-list. It must
// run after Auth; a missing caller in the context fails closed as
// unauthenticated rather than panicking.
func RequireRoles(allowed ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			if !slices.Contains(allowed, user.Role) {
				http.Error(w, "Insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
