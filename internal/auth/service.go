package auth

import (
	"context"
	"errors"
	"fmt"

	"summit-ticketing/internal/logger"
	"summit-ticketing/internal/models"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type AdminStore interface {
	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
}

type Service struct {
	DB     AdminStore
	Tokens *TokenService
	Logger *logger.Logger
}

func NewService(db AdminStore, tokens *TokenService, log *logger.Logger) *Service {
	return &Service{DB: db, Tokens: tokens, Logger: log}
}

// Login verifies the credential pair and issues a session token. A missing
// admin and a wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	admin, err := s.DB.GetAdminByEmail(ctx, email)
	if err != nil {
		s.Logger.LogSecurity("LOGIN", fmt.Sprintf("Login attempt for unknown admin %s", email))
		return "", ErrInvalidCredentials
	}

	if !CheckPassword(admin.PasswordHash, password) {
		s.Logger.LogSecurity("LOGIN", fmt.Sprintf("Failed login for %s", email))
		return "", ErrInvalidCredentials
	}

	token, err := s.Tokens.Generate(admin.ID, admin.Email)
	if err != nil {
		return "", fmt.Errorf("failed to issue session token: %w", err)
	}

	s.Logger.Info("AUTH", fmt.Sprintf("Admin %s logged in", email))
	return token, nil
}
