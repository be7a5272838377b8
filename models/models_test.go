package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestUserFormValidate(t *testing.T) {
	tests := []struct {
		name    string
		form    UserForm
		wantErr bool
	}{
		{
			name:    "valid user",
			form:    UserForm{Name: "User One", Email: "user1@companyA.com", Tenant: "Company A", Role: RoleUser},
			wantErr: false,
		},
		{
			name:    "valid super admin in global tenant",
			form:    UserForm{Name: "Root", Email: "superadmin@mail.com", Tenant: TenantGlobal, Role: RoleSuperAdmin},
			wantErr: false,
		},
		{
			name:    "missing name",
			form:    UserForm{Email: "user1@companyA.com", Tenant: "Company A", Role: RoleUser},
			wantErr: true,
		},
		{
			name:    "invalid email",
			form:    UserForm{Name: "User", Email: "not-an-email", Tenant: "Company A", Role: RoleUser},
			wantErr: true,
		},
		{
			name:    "invalid role",
			form:    UserForm{Name: "User", Email: "user1@companyA.com", Tenant: "Company A", Role: Role("owner")},
			wantErr: true,
		},
		{
			name:    "super admin outside global tenant",
			form:    UserForm{Name: "Root", Email: "root@companyA.com", Tenant: "Company A", Role: RoleSuperAdmin},
			wantErr: true,
		},
		{
			name:    "non super admin in global tenant",
			form:    UserForm{Name: "User", Email: "user@mail.com", Tenant: TenantGlobal, Role: RoleUser},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.form.Validate()
			if tt.wantErr && len(errs) == 0 {
				t.Error("Expected validation errors, got none")
			}
			if !tt.wantErr && len(errs) > 0 {
				t.Errorf("Expected no validation errors, got %v", errs)
			}
		})
	}
}

func TestProductFormValidate(t *testing.T) {
	valid := ProductForm{Name: "Laptop A", Price: decimal.RequireFromString("1200.00"), Stock: 50, Tenant: "Company A"}
	if errs := valid.Validate(); len(errs) > 0 {
		t.Errorf("Expected no validation errors, got %v", errs)
	}

	zeroPrice := ProductForm{Name: "Laptop A", Price: decimal.Zero, Stock: 50, Tenant: "Company A"}
	if errs := zeroPrice.Validate(); len(errs) == 0 {
		t.Error("Expected validation error for zero price")
	}

	negativeStock := ProductForm{Name: "Laptop A", Price: decimal.RequireFromString("1200.00"), Stock: -1, Tenant: "Company A"}
	if errs := negativeStock.Validate(); len(errs) == 0 {
		t.Error("Expected validation error for negative stock")
	}
}

func TestProductFormMatches(t *testing.T) {
	product := &Product{ID: "p1", Name: "Laptop A", Price: decimal.RequireFromString("1200.00"), Stock: 50, Tenant: "Company A"}

	same := ProductForm{Name: "Laptop A", Price: decimal.RequireFromString("1200.00"), Stock: 50}
	if !same.Matches(product) {
		t.Error("Expected identical form to match")
	}

	// Equal value in a different representation is still a no-op.
	sameScale := ProductForm{Name: "Laptop A", Price: decimal.RequireFromString("1200"), Stock: 50}
	if !sameScale.Matches(product) {
		t.Error("Expected numerically equal price to match")
	}

	changed := ProductForm{Name: "Laptop A", Price: decimal.RequireFromString("1100.00"), Stock: 50}
	if changed.Matches(product) {
		t.Error("Expected changed price not to match")
	}
}

func TestProductFormApply(t *testing.T) {
	product := Product{ID: "p1", Name: "Laptop A", Price: decimal.RequireFromString("1200.00"), Stock: 50, Tenant: "Company A"}
	form := ProductForm{Name: "Laptop A v2", Price: decimal.RequireFromString("1100.00"), Stock: 45, Tenant: "Company B"}

	applied := form.Apply(product)

	if applied.ID != "p1" || applied.Tenant != "Company A" {
		t.Errorf("Expected ID and tenant preserved, got %+v", applied)
	}
	if applied.Name != "Laptop A v2" || !applied.Price.Equal(decimal.RequireFromString("1100.00")) || applied.Stock != 45 {
		t.Errorf("Expected form data applied, got %+v", applied)
	}
}

func TestRoleValid(t *testing.T) {
	for _, role := range []Role{RoleSuperAdmin, RoleAdmin, RoleUser} {
		if !role.Valid() {
			t.Errorf("Expected role %s to be valid", role)
		}
	}
	if Role("owner").Valid() {
		t.Error("Expected unknown role to be invalid")
	}
}

func TestChangeRequestTargetTenant(t *testing.T) {
	req := ChangeRequest{
		ProductID: "p1",
		Type:      RequestDelete,
		OldData:   Product{ID: "p1", Tenant: "Company A"},
		Status:    StatusPending,
	}

	if req.TargetTenant() != "Company A" {
		t.Errorf("Expected snapshot tenant, got %s", req.TargetTenant())
	}
	if !req.IsPending() {
		t.Error("Expected request to be pending")
	}
}
