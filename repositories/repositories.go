package repositories

import (
	"database/sql"
)

// Repositories struct holds all repository interfaces
type Repositories struct {
	Users       UserRepository
	Products    ProductRepository
	Requests    RequestRepository
	Credentials CredentialRepository
	Audit       AuditRepository
}

// NewRepositories creates and initializes all repositories
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(db),
		Products:    NewProductRepository(db),
		Requests:    NewRequestRepository(db),
		Credentials: NewCredentialRepository(db),
		Audit:       NewAuditRepository(db),
	}
}
