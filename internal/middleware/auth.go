package middleware

import (
	"context"
	"net/http"
	"strings"

	"community-events-backend/internal/services"
)

type contextKey string

const sessionKey contextKey = "session"

// SessionValidator validates an application session token
type SessionValidator interface {
	ValidateSession(token string) (services.SessionClaims, error)
}

// Authenticate creates a middleware that requires a valid session token
// and rejects unapproved accounts.
func Authenticate(validator SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondError(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondError(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := validator.ValidateSession(parts[1])
			if err != nil {
				respondError(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			if !claims.Approved {
				respondError(w, "Account not approved", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles creates a middleware that allows only the listed roles.
// An empty allow-list denies everything; routes meant to be public are
// simply not wrapped in this middleware.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetSession(r.Context())
			if !ok {
				respondError(w, "Authentication required", http.StatusUnauthorized)
				return
			}
			if _, ok := allowed[claims.Role]; !ok {
				respondError(w, "Role not permitted", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetSession extracts session claims from context
func GetSession(ctx context.Context) (services.SessionClaims, bool) {
	claims, ok := ctx.Value(sessionKey).(services.SessionClaims)
	return claims, ok
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
