package models

import (
	"time"
)

// User represents a managed account record. Login credentials are stored
// separately; this is the record the panel itself manages.
type User struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Tenant    string    `json:"tenant" db:"tenant"`
	Role      Role      `json:"role" db:"role"`
	DateAdded time.Time `json:"date_added" db:"date_added"`
}

// UserForm represents form data for creating/updating users
type UserForm struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Tenant   string `json:"tenant"`
	Role     Role   `json:"role"`
	Password string `json:"password,omitempty"`
}

// Validate validates the user form data
func (f *UserForm) Validate() []string {
	var errors []string

	if f.Name == "" {
		errors = append(errors, "Name is required")
	}

	if len(f.Name) > 100 {
		errors = append(errors, "Name must be less than 100 characters")
	}

	if f.Email == "" {
		errors = append(errors, "Email is required")
	} else if len(f.Email) > 255 {
		errors = append(errors, "Email must be less than 255 characters")
	} else if !isValidEmail(f.Email) {
		errors = append(errors, "Email format is invalid")
	}

	if f.Tenant == "" {
		errors = append(errors, "Tenant is required")
	}

	if !f.Role.Valid() {
		errors = append(errors, "Role is invalid")
	}

	// Super admins always belong to the global tenant; nobody else may.
	if f.Role == RoleSuperAdmin && f.Tenant != TenantGlobal {
		errors = append(errors, "Super admins must belong to the global tenant")
	}
	if f.Role != RoleSuperAdmin && f.Tenant == TenantGlobal {
		errors = append(errors, "Only super admins may belong to the global tenant")
	}

	return errors
}

// isValidEmail performs basic email validation
func isValidEmail(email string) bool {
	// Simple validation: must contain @ and at least one dot after @
	atIndex := -1
	for i, char := range email {
		if char == '@' {
			if atIndex != -1 {
				return false // Multiple @ symbols
			}
			atIndex = i
		}
	}

	if atIndex == -1 || atIndex == 0 || atIndex == len(email)-1 {
		return false // No @, or @ at start/end
	}

	// Check for dot after @
	for i := atIndex + 1; i < len(email); i++ {
		if email[i] == '.' && i < len(email)-1 {
			return true
		}
	}

	return false
}
