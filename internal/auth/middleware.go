package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/myrecipebox/recipebox-be/internal/models"
)

// principalKey is the context key for the resolved principal.
type contextKey string

const principalKey = contextKey("principal")

// PrincipalFromContext returns the authenticated user stored by
// Middleware.
func PrincipalFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(principalKey).(models.User)
	return user, ok
}

// Middleware protects routes with bearer-token authentication. The
// token comes from the Authorization header, falling back to the token
// cookie. The resolved principal is stored in the request context so
// handlers never re-check token validity or account existence.
func Middleware(resolver *Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenStr string

			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.Split(authHeader, "Bearer ")
				if len(parts) == 2 {
					tokenStr = parts[1]
				}
			}

			if tokenStr == "" {
				cookie, err := r.Cookie("token")
				if err != nil {
					http.Error(w, "Missing auth token", http.StatusUnauthorized)
					return
				}
				tokenStr = cookie.Value
			}

			if tokenStr == "" {
				http.Error(w, "Missing auth token", http.StatusUnauthorized)
				return
			}

			user, err := resolver.Resolve(tokenStr)
			if err != nil {
				if errors.Is(err, ErrUserNotFound) {
					http.Error(w, "User not found", http.StatusNotFound)
					return
				}
				http.Error(w, "Invalid auth token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
