package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a tenant-scoped product record
type Product struct {
	ID        string          `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Stock     int             `json:"stock" db:"stock"`
	Tenant    string          `json:"tenant" db:"tenant"`
	DateAdded time.Time       `json:"date_added" db:"date_added"`
}

// ProductForm represents form data for creating/updating products
type ProductForm struct {
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Stock  int             `json:"stock"`
	Tenant string          `json:"tenant"`
}

// Validate validates the product form data
func (f *ProductForm) Validate() []string {
	var errors []string

	if f.Name == "" {
		errors = append(errors, "Product name is required")
	}

	if len(f.Name) > 100 {
		errors = append(errors, "Product name must be less than 100 characters")
	}

	if !f.Price.IsPositive() {
		errors = append(errors, "Price must be greater than zero")
	}

	if f.Stock < 0 {
		errors = append(errors, "Stock cannot be negative")
	}

	if f.Tenant == "" {
		errors = append(errors, "Tenant is required")
	}

	return errors
}

// Matches reports whether the form carries the same data as the product,
// ignoring tenant. Used to detect no-op change proposals.
func (f *ProductForm) Matches(p *Product) bool {
	return f.Name == p.Name && f.Price.Equal(p.Price) && f.Stock == p.Stock
}

// Apply returns a copy of the product with the form data applied. ID, tenant
// and creation date are preserved.
func (f *ProductForm) Apply(p Product) Product {
	p.Name = f.Name
	p.Price = f.Price
	p.Stock = f.Stock
	return p
}
