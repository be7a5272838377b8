package models

// Role determines what a principal may do in the panel.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleUser       Role = "user"
)

// TenantGlobal is the pseudo-tenant carried by super admins. It is never a
// valid tenant for admin or user accounts.
const TenantGlobal = "global"

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleUser:
		return true
	}
	return false
}

// Label returns a human-readable role name for templates.
func (r Role) Label() string {
	switch r {
	case RoleSuperAdmin:
		return "Super Admin"
	case RoleAdmin:
		return "Admin"
	case RoleUser:
		return "User"
	}
	return string(r)
}

// Principal is the authenticated actor behind a request. It is constructed
// once at login and carried through the request context; it never changes
// for the duration of a session.
type Principal struct {
	UserID string
	Email  string
	Role   Role
	Tenant string
}

// IsSuperAdmin reports whether the principal spans all tenants.
func (p Principal) IsSuperAdmin() bool {
	return p.Role == RoleSuperAdmin
}

// IsAdmin reports whether the principal is a tenant admin.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanReview reports whether the principal may review change requests at all.
// Tenant scoping of individual requests is enforced separately.
func (p Principal) CanReview() bool {
	return p.Role == RoleSuperAdmin || p.Role == RoleAdmin
}
