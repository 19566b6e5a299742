package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Elzoka/devconnecter/internal/models"
	"github.com/Elzoka/devconnecter/internal/services"
	"github.com/Elzoka/devconnecter/internal/token"
)

type contextKey string

const userKey contextKey = "user"

// Authenticate gates protected routes. It extracts the bearer token, verifies
// it, resolves the embedded id against the user store and attaches the current
// user record to the request context. Any failure rejects the request before
// the handler runs.
func Authenticate(issuer *token.Issuer, users services.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, "Authorization header required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeError(w, "Invalid authorization header format")
				return
			}

			claims, err := issuer.Parse(parts[1])
			if err != nil {
				if err == token.ErrExpiredToken {
					writeError(w, "Token expired")
					return
				}
				writeError(w, "Invalid token")
				return
			}

			// Claims are a snapshot from issuance; resolve the current record.
			user, err := users.GetByID(r.Context(), claims.ID)
			if err != nil {
				writeError(w, "User no longer exists")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFrom returns the authenticated user attached by Authenticate, or nil.
func UserFrom(ctx context.Context) *models.User {
	user, ok := ctx.Value(userKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

func writeError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
