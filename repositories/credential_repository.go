package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

// CredentialRepository stores login credentials keyed by email, deliberately
// separate from the users table the panel manages as records.
type CredentialRepository interface {
	GetHash(ctx context.Context, email string) (string, error)
	Set(ctx context.Context, email, passwordHash string) error
	Delete(ctx context.Context, email string) error
}

// credentialRepository implements CredentialRepository interface
type credentialRepository struct {
	db *sql.DB
}

// NewCredentialRepository creates a new credential repository
func NewCredentialRepository(db *sql.DB) CredentialRepository {
	return &credentialRepository{db: db}
}

// GetHash returns the stored password hash for an email
func (r *credentialRepository) GetHash(ctx context.Context, email string) (string, error) {
	var hash string
	err := r.db.QueryRowContext(ctx, `SELECT password_hash FROM credentials WHERE email = ?`, email).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("credentials for %s: %w", email, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get credentials: %w", err)
	}

	return hash, nil
}

// Set inserts or replaces the credentials for an email
func (r *credentialRepository) Set(ctx context.Context, email, passwordHash string) error {
	query := `
		INSERT INTO credentials (email, password_hash) VALUES (?, ?)
		ON CONFLICT(email) DO UPDATE SET password_hash = excluded.password_hash
	`

	if _, err := r.db.ExecContext(ctx, query, email, passwordHash); err != nil {
		return fmt.Errorf("failed to set credentials: %w", err)
	}

	return nil
}

// Delete removes the credentials for an email. Removing credentials that do
// not exist is a no-op.
func (r *credentialRepository) Delete(ctx context.Context, email string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE email = ?`, email); err != nil {
		return fmt.Errorf("failed to delete credentials: %w", err)
	}

	return nil
}
