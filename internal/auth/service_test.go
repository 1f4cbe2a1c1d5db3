package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"summit-ticketing/internal/logger"
	"summit-ticketing/internal/models"
)

type MockAdminStore struct {
	admins map[string]*models.Admin
}

func (m *MockAdminStore) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	admin, exists := m.admins[email]
	if !exists {
		return nil, errors.New("admin not found")
	}
	return admin, nil
}

func newLoginFixture(t *testing.T) (*Service, *TokenService) {
	t.Helper()
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	store := &MockAdminStore{admins: map[string]*models.Admin{
		"admin@summit.test": {ID: 1, Email: "admin@summit.test", PasswordHash: hash},
	}}
	tokens := NewTokenService("session-secret", time.Hour)
	return NewService(store, tokens, logger.NewTestLogger()), tokens
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	service, tokens := newLoginFixture(t)

	signed, err := service.Login(context.Background(), "admin@summit.test", "correct horse")
	require.NoError(t, err)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.AdminID)
	assert.Equal(t, "admin@summit.test", claims.Email)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	service, _ := newLoginFixture(t)

	_, err := service.Login(context.Background(), "admin@summit.test", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownAdminLooksLikeWrongPassword(t *testing.T) {
	service, _ := newLoginFixture(t)

	_, unknownErr := service.Login(context.Background(), "nobody@summit.test", "correct horse")
	_, wrongErr := service.Login(context.Background(), "admin@summit.test", "wrong")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr, wrongErr)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "S3cret"))
	assert.False(t, CheckPassword("not-a-hash", "s3cret"))
}
