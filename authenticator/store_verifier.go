package authenticator

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/blogem/tenant-admin/models"
	"github.com/blogem/tenant-admin/repositories"
)

// StoreVerifier verifies credentials against the credentials table and
// resolves the matching user record into a principal.
type StoreVerifier struct {
	users       repositories.UserRepository
	credentials repositories.CredentialRepository
}

// NewStoreVerifier creates a credential verifier backed by the database
func NewStoreVerifier(users repositories.UserRepository, credentials repositories.CredentialRepository) *StoreVerifier {
	return &StoreVerifier{users: users, credentials: credentials}
}

// Verify checks the password hash for the email and builds the principal
// from the user record's role and tenant.
func (v *StoreVerifier) Verify(ctx context.Context, email, password string) (*models.Principal, error) {
	hash, err := v.credentials.GetHash(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up credentials: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := v.users.GetByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		// Credentials without a user record are stale; treat as unknown.
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user for %s: %w", email, err)
	}

	return &models.Principal{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Tenant: user.Tenant,
	}, nil
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("refusing to hash empty password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}
