package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/audiopanel/backend/internal/domain"
	"github.com/audiopanel/backend/internal/service"
)

// TokenCookieName is the HTTP-only cookie carrying the session token.
const TokenCookieName = "token"

type contextKey string

const userKey contextKey = "user"

// Authenticate resolves the session cookie to a user and stores it on the
// request context. The user row is loaded on every request so tokens for
// deleted accounts stop working immediately.
func Authenticate(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(TokenCookieName)
			if err != nil || cookie.Value == "" {
				unauthorized(w, "Access denied. No token provided.")
				return
			}

			userID, err := authService.VerifyToken(cookie.Value)
			if err != nil {
				unauthorized(w, "Invalid token.")
				return
			}

			user, err := authService.GetUserByID(r.Context(), userID)
			if err != nil {
				unauthorized(w, "Invalid token.")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates a route group to admin users. Must run after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUser(r.Context())
		if !ok {
			unauthorized(w, "Access denied. No token provided.")
			return
		}
		if user.Role != domain.RoleAdmin {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]string{"error": "Admin access required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUser returns the authenticated user attached by Authenticate.
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
