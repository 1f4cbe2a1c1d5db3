package auth

import (
	"context"
	"net/http"
	"strings"

	"summit-ticketing/internal/logger"
	"summit-ticketing/internal/utils"
)

const CookieName = "adminToken"

type contextKey string

const adminKey contextKey = "admin"

// Middleware gates admin routes. The token is read from the adminToken cookie
// first, then from a Bearer header for non-cookie clients.
func Middleware(tokens *TokenService, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := tokenFromRequest(r)
			if tokenString == "" {
				utils.WriteError(w, http.StatusUnauthorized, "Unauthorized", "missing token")
				return
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				log.LogSecurity("AUTH", "Rejected admin request with invalid token")
				utils.WriteError(w, http.StatusUnauthorized, "Unauthorized", "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), adminKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// AdminFromContext returns the verified claims attached by Middleware.
func AdminFromContext(ctx context.Context) *Claims {
	if claims, ok := ctx.Value(adminKey).(*Claims); ok {
		return claims
	}
	return nil
}
