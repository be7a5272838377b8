package authenticator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/blogem/tenant-admin/models"
	"github.com/blogem/tenant-admin/repositories"
	"github.com/blogem/tenant-admin/repositories/mocks"
)

func TestStoreVerifier_Verify(t *testing.T) {
	hash, err := HashPassword("correct-password")
	assert.NoError(t, err)

	user := &models.User{
		ID:     "u1",
		Name:   "User One",
		Email:  "user1@companyA.com",
		Tenant: "Company A",
		Role:   models.RoleUser,
	}

	t.Run("valid credentials resolve to a principal", func(t *testing.T) {
		users := mocks.NewMockUserRepository(t)
		credentials := mocks.NewMockCredentialRepository(t)
		credentials.On("GetHash", mock.Anything, "user1@companyA.com").Return(hash, nil)
		users.On("GetByEmail", mock.Anything, "user1@companyA.com").Return(user, nil)

		verifier := NewStoreVerifier(users, credentials)
		principal, err := verifier.Verify(context.Background(), "user1@companyA.com", "correct-password")

		assert.NoError(t, err)
		assert.Equal(t, "u1", principal.UserID)
		assert.Equal(t, models.RoleUser, principal.Role)
		assert.Equal(t, "Company A", principal.Tenant)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		users := mocks.NewMockUserRepository(t)
		credentials := mocks.NewMockCredentialRepository(t)
		credentials.On("GetHash", mock.Anything, "user1@companyA.com").Return(hash, nil)

		verifier := NewStoreVerifier(users, credentials)
		principal, err := verifier.Verify(context.Background(), "user1@companyA.com", "wrong-password")

		assert.Nil(t, principal)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email is rejected with the same error", func(t *testing.T) {
		users := mocks.NewMockUserRepository(t)
		credentials := mocks.NewMockCredentialRepository(t)
		credentials.On("GetHash", mock.Anything, "nobody@mail.com").Return("", repositories.ErrNotFound)

		verifier := NewStoreVerifier(users, credentials)
		principal, err := verifier.Verify(context.Background(), "nobody@mail.com", "whatever")

		assert.Nil(t, principal)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("credentials without a user record are rejected", func(t *testing.T) {
		users := mocks.NewMockUserRepository(t)
		credentials := mocks.NewMockCredentialRepository(t)
		credentials.On("GetHash", mock.Anything, "stale@mail.com").Return(hash, nil)
		users.On("GetByEmail", mock.Anything, "stale@mail.com").Return(nil, repositories.ErrNotFound)

		verifier := NewStoreVerifier(users, credentials)
		principal, err := verifier.Verify(context.Background(), "stale@mail.com", "correct-password")

		assert.Nil(t, principal)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestHashPassword_RefusesEmpty(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}
