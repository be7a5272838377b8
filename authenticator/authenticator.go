package authenticator

import (
	"context"
	"errors"

	"github.com/blogem/tenant-admin/models"
)

// ErrInvalidCredentials is returned for unknown emails and wrong passwords
// alike, so login failures do not reveal which accounts exist.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Verifier abstracts credential verification. Implementations resolve an
// email/password pair to the principal the rest of the application consumes;
// nothing outside this package knows how passwords are stored.
type Verifier interface {
	Verify(ctx context.Context, email, password string) (*models.Principal, error)
}
