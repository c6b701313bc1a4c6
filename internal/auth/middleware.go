package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/langplug/backend/internal/models"
)

type contextKey string

const userIDKey contextKey = "userID"

// extractToken pulls the access token from the Authorization header or the access_token cookie
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	cookie, err := r.Cookie("access_token")
	if err == nil {
		return cookie.Value
	}

	return ""
}

// denyJSON writes an error response in the same shape the handlers use
func denyJSON(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error":%q}`, message)
}

// authenticate validates the request's access token and returns the user's identity
func authenticate(tokenGenerator *TokenGenerator, w http.ResponseWriter, r *http.Request) (int, models.Role, bool) {
	token := extractToken(r)
	if token == "" {
		denyJSON(w, http.StatusUnauthorized, "authentication required")
		return 0, 0, false
	}

	userID, role, err := tokenGenerator.ValidateAccessToken(token)
	if err != nil {
		denyJSON(w, http.StatusUnauthorized, "invalid or expired token")
		return 0, 0, false
	}

	return userID, role, true
}

// Middleware validates JWT access token and puts the userID into the request context
func Middleware(tokenGenerator *TokenGenerator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, _, ok := authenticate(tokenGenerator, w, r)
			if !ok {
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RoleMiddleware validates JWT access token and checks if user's role is >= requiredRole
func RoleMiddleware(tokenGenerator *TokenGenerator, requiredRole models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, role, ok := authenticate(tokenGenerator, w, r)
			if !ok {
				return
			}

			if role < requiredRole {
				denyJSON(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// APIKeyMiddleware validates API key from X-API-Key header
// It compares the header value with the configured API key
func APIKeyMiddleware(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			providedKey := r.Header.Get("X-API-Key")

			if providedKey == "" || providedKey != apiKey {
				denyJSON(w, http.StatusUnauthorized, "invalid or missing API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetUserID retrieves the user ID from context
func GetUserID(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDKey).(int)
	return userID, ok
}

// WithUserID returns a context carrying the given user ID (used by tests)
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
