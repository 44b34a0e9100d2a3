package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/sndarsmle/server-NEWSAPP/internal/domain"
	"github.com/sndarsmle/server-NEWSAPP/internal/service"
	"github.com/sndarsmle/server-NEWSAPP/internal/token"
)

type contextKey string

const (
	UserKey contextKey = "user"
)

// Auth verifies the Bearer access token and attaches the caller's current
// user record to the request context. The role downstream handlers see is
// re-read from the store on every request, so role changes apply immediately
// instead of waiting for token expiry.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "Invalid authorization header", http.StatusUnauthorized)
				return
			}

			user, err := authService.Authenticate(r.Context(), parts[1])
			if err != nil {
				switch {
				case errors.Is(err, token.ErrTokenExpired):
					http.Error(w, "Token expired", http.StatusUnauthorized)
				case errors.Is(err, token.ErrTokenInvalid):
					http.Error(w, "Invalid token", http.StatusUnauthorized)
				case errors.Is(err, service.ErrUserNotFound):
					http.Error(w, "User no longer exists", http.StatusUnauthorized)
				default:
					log.Printf("ERROR [middleware.Auth] authentication failed: %v", err)
					http.Error(w, "Internal server error", http.StatusInternalServerError)
				}
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserKey).(*domain.User)
	return user, ok
}
