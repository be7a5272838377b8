package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/blogem/tenant-admin/authenticator"
	"github.com/blogem/tenant-admin/models"
	"github.com/blogem/tenant-admin/repositories"
)

// UserService interface defines user management business logic
type UserService interface {
	ListUsers(ctx context.Context, p models.Principal) ([]models.User, error)
	GetUser(ctx context.Context, p models.Principal, id string) (*models.User, error)
	CreateUser(ctx context.Context, p models.Principal, form *models.UserForm) (*models.User, error)
	UpdateUser(ctx context.Context, p models.Principal, id string, form *models.UserForm) (*models.User, error)
	DeleteUser(ctx context.Context, p models.Principal, id string) error
	CountVisible(ctx context.Context, p models.Principal) (int, error)
}

// userService implements UserService interface
type userService struct {
	userRepo       repositories.UserRepository
	credentialRepo repositories.CredentialRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, credentialRepo repositories.CredentialRepository) UserService {
	return &userService{
		userRepo:       userRepo,
		credentialRepo: credentialRepo,
	}
}

// ListUsers retrieves the user records visible to the principal
func (s *userService) ListUsers(ctx context.Context, p models.Principal) ([]models.User, error) {
	if !CanManageUsers(p) {
		return nil, fmt.Errorf("listing users: %w", ErrPermissionDenied)
	}

	if tenant := VisibleTenant(p); tenant != "" {
		return s.userRepo.GetByTenant(ctx, tenant)
	}
	return s.userRepo.GetAll(ctx)
}

// GetUser retrieves a single user record, enforcing tenant scope
func (s *userService) GetUser(ctx context.Context, p models.Principal, id string) (*models.User, error) {
	if !CanManageUsers(p) {
		return nil, fmt.Errorf("getting user: %w", ErrPermissionDenied)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if tenant := VisibleTenant(p); tenant != "" && user.Tenant != tenant {
		return nil, fmt.Errorf("user %s is outside your tenant: %w", id, ErrPermissionDenied)
	}

	return user, nil
}

// CreateUser creates a new user record plus its login credentials
func (s *userService) CreateUser(ctx context.Context, p models.Principal, form *models.UserForm) (*models.User, error) {
	if !CanManageUsers(p) {
		return nil, fmt.Errorf("creating user: %w", ErrPermissionDenied)
	}

	// Admins create accounts in their own tenant only; the submitted tenant
	// is ignored rather than rejected, matching the fixed form field.
	if p.IsAdmin() {
		form.Tenant = p.Tenant
	}

	if !CanAssignRole(p, form.Role) {
		return nil, fmt.Errorf("assigning role %s: %w", form.Role, ErrPermissionDenied)
	}

	if errs := s.validateCreate(form); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, strings.Join(errs, ", "))
	}

	// Emails are unique across all tenants.
	if existing, err := s.userRepo.GetByEmail(ctx, form.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: user with email %s already exists", ErrValidation, form.Email)
	} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}

	hash, err := authenticator.HashPassword(form.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:   strings.TrimSpace(form.Name),
		Email:  strings.TrimSpace(form.Email),
		Tenant: form.Tenant,
		Role:   form.Role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.credentialRepo.Set(ctx, user.Email, hash); err != nil {
		return nil, fmt.Errorf("failed to store credentials: %w", err)
	}

	return user, nil
}

// UpdateUser updates an existing user record. The email is immutable; the
// submitted role and tenant are checked against the principal's rights.
func (s *userService) UpdateUser(ctx context.Context, p models.Principal, id string, form *models.UserForm) (*models.User, error) {
	user, err := s.GetUser(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if !CanManageUser(p, user) {
		return nil, fmt.Errorf("updating user %s: %w", id, ErrPermissionDenied)
	}

	if p.IsAdmin() {
		form.Tenant = user.Tenant
	}
	if form.Role != user.Role && !CanAssignRole(p, form.Role) {
		return nil, fmt.Errorf("assigning role %s: %w", form.Role, ErrPermissionDenied)
	}

	// Email is not editable; validate against the stored one.
	form.Email = user.Email
	if errs := form.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, strings.Join(errs, ", "))
	}

	user.Name = strings.TrimSpace(form.Name)
	user.Tenant = form.Tenant
	user.Role = form.Role

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	// Optional password reset alongside the record update.
	if form.Password != "" {
		hash, err := authenticator.HashPassword(form.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		if err := s.credentialRepo.Set(ctx, user.Email, hash); err != nil {
			return nil, fmt.Errorf("failed to store credentials: %w", err)
		}
	}

	return user, nil
}

// DeleteUser deletes a user record and its credentials
func (s *userService) DeleteUser(ctx context.Context, p models.Principal, id string) error {
	user, err := s.GetUser(ctx, p, id)
	if err != nil {
		return err
	}

	if !CanDeleteUser(p, user) {
		if user.ID == p.UserID {
			return fmt.Errorf("deleting your own account: %w", ErrPermissionDenied)
		}
		return fmt.Errorf("deleting user %s: %w", id, ErrPermissionDenied)
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if err := s.credentialRepo.Delete(ctx, user.Email); err != nil {
		return fmt.Errorf("failed to delete credentials: %w", err)
	}

	return nil
}

// CountVisible returns the number of user records visible to the principal
func (s *userService) CountVisible(ctx context.Context, p models.Principal) (int, error) {
	if tenant := VisibleTenant(p); tenant != "" {
		users, err := s.userRepo.GetByTenant(ctx, tenant)
		if err != nil {
			return 0, err
		}
		return len(users), nil
	}
	return s.userRepo.Count(ctx)
}

// validateCreate runs form validation plus create-only rules
func (s *userService) validateCreate(form *models.UserForm) []string {
	errs := form.Validate()
	if form.Password == "" {
		errs = append(errs, "Temporary password is required")
	}
	return errs
}
