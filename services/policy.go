package services

import (
	"github.com/blogem/tenant-admin/models"
)

// Authorization policy. Every mutation and listing passes through these
// checks before any repository is touched. The rules:
//
//   - Super admins mutate users and products in any tenant, but may not
//     delete their own account.
//   - Admins mutate users and products in their own tenant only, may only
//     manage user-role accounts, and may not elevate anyone.
//   - User-role accounts have no rights over users and may only propose
//     update/delete changes to products in their own tenant.

// VisibleTenant returns the tenant filter for list/read operations. The
// empty string means all tenants (super admins only).
func VisibleTenant(p models.Principal) string {
	if p.IsSuperAdmin() {
		return ""
	}
	return p.Tenant
}

// CanManageUsers reports whether the principal may access user management
// at all.
func CanManageUsers(p models.Principal) bool {
	return p.IsSuperAdmin() || p.IsAdmin()
}

// CanManageUser reports whether the principal may edit or delete the given
// user record. Self-deletion is checked separately by CanDeleteUser.
func CanManageUser(p models.Principal, target *models.User) bool {
	switch p.Role {
	case models.RoleSuperAdmin:
		return true
	case models.RoleAdmin:
		return target.Role == models.RoleUser && target.Tenant == p.Tenant
	}
	return false
}

// CanDeleteUser reports whether the principal may delete the given user
// record. Nobody may delete their own account.
func CanDeleteUser(p models.Principal, target *models.User) bool {
	if target.ID == p.UserID {
		return false
	}
	return CanManageUser(p, target)
}

// CanAssignRole reports whether the principal may hand out the given role.
// Admins can only create and keep user-role accounts.
func CanAssignRole(p models.Principal, role models.Role) bool {
	switch p.Role {
	case models.RoleSuperAdmin:
		return role.Valid()
	case models.RoleAdmin:
		return role == models.RoleUser
	}
	return false
}

// CanDirectlyMutateProducts reports whether the principal may create,
// update or delete products without review.
func CanDirectlyMutateProducts(p models.Principal) bool {
	return p.IsSuperAdmin() || p.IsAdmin()
}

// CanMutateProductIn reports whether the principal may directly mutate
// products of the given tenant.
func CanMutateProductIn(p models.Principal, tenant string) bool {
	if p.IsSuperAdmin() {
		return true
	}
	return p.IsAdmin() && p.Tenant == tenant
}

// CanProposeProducts reports whether the principal uses the proposal path.
func CanProposeProducts(p models.Principal) bool {
	return p.Role == models.RoleUser
}

// CanProposeProductIn reports whether the principal may propose a change to
// a product of the given tenant.
func CanProposeProductIn(p models.Principal, tenant string) bool {
	return CanProposeProducts(p) && p.Tenant == tenant
}

// CanReviewRequest reports whether the principal may decide a change
// request targeting the given tenant.
func CanReviewRequest(p models.Principal, tenant string) bool {
	if p.IsSuperAdmin() {
		return true
	}
	return p.IsAdmin() && p.Tenant == tenant
}
