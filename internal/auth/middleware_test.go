package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"summit-ticketing/internal/logger"
)

func gatedHandler(t *testing.T, tokens *TokenService) http.Handler {
	t.Helper()
	return Middleware(tokens, logger.NewTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := AdminFromContext(r.Context())
		require.NotNil(t, claims)
		w.WriteHeader(http.StatusOK)
	}))
}

func TestMiddlewareAcceptsCookie(t *testing.T) {
	tokens := NewTokenService("session-secret", time.Hour)
	signed, err := tokens.Generate(1, "admin@summit.test")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: signed})
	w := httptest.NewRecorder()

	gatedHandler(t, tokens).ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMiddlewareAcceptsBearerHeader(t *testing.T) {
	tokens := NewTokenService("session-secret", time.Hour)
	signed, err := tokens.Generate(1, "admin@summit.test")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()

	gatedHandler(t, tokens).ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	tokens := NewTokenService("session-secret", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	w := httptest.NewRecorder()

	gatedHandler(t, tokens).ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddlewareRejectsForeignToken(t *testing.T) {
	tokens := NewTokenService("session-secret", time.Hour)
	foreign, err := NewTokenService("other-secret", time.Hour).Generate(1, "admin@summit.test")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: foreign})
	w := httptest.NewRecorder()

	gatedHandler(t, tokens).ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
