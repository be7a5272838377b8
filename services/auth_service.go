package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/blogem/tenant-admin/authenticator"
	"github.com/blogem/tenant-admin/models"
)

// AuthService interface defines authentication operations
type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (*models.Principal, error)
}

// authService implements AuthService by delegating to the injected
// credential verifier.
type authService struct {
	verifier authenticator.Verifier
}

// NewAuthService creates a new auth service
func NewAuthService(verifier authenticator.Verifier) AuthService {
	return &authService{verifier: verifier}
}

// Authenticate resolves an email/password pair to a principal
func (s *authService) Authenticate(ctx context.Context, email, password string) (*models.Principal, error) {
	principal, err := s.verifier.Verify(ctx, email, password)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"email":  principal.Email,
		"role":   principal.Role,
		"tenant": principal.Tenant,
	}).Info("user authenticated")

	return principal, nil
}
