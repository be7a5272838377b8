package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/blogem/tenant-admin/models"
)

// ProductRepository interface defines product record database operations
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByTenant(ctx context.Context, tenant string) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// productRepository implements ProductRepository interface
type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, price, stock, tenant, date_added`

// GetAll retrieves all product records across tenants
func (r *productRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// GetByTenant retrieves the product records belonging to one tenant
func (r *productRepository) GetByTenant(ctx context.Context, tenant string) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE tenant = ? ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, tenant)
	if err != nil {
		return nil, fmt.Errorf("failed to query products for tenant %s: %w", tenant, err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// GetByID retrieves a product record by ID
func (r *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`

	product, err := scanProductRow(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// Create creates a new product record, generating its ID
func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, name, price, stock, tenant, date_added)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if product.DateAdded.IsZero() {
		product.DateAdded = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		product.ID,
		product.Name,
		product.Price.String(),
		product.Stock,
		product.Tenant,
		product.DateAdded,
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// Update updates an existing product record in place, keeping its ID
func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = ?, price = ?, stock = ?, tenant = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		product.Name,
		product.Price.String(),
		product.Stock,
		product.Tenant,
		product.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("product with ID %s: %w", product.ID, ErrNotFound)
	}

	return nil
}

// Delete deletes a product record by ID
func (r *productRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM products WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}

	return nil
}

// Count returns the total number of product records
func (r *productRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return count, nil
}

// scanProductRow scans a single product row, parsing the price column
func scanProductRow(row *sql.Row) (*models.Product, error) {
	var product models.Product
	var price string

	err := row.Scan(
		&product.ID,
		&product.Name,
		&price,
		&product.Stock,
		&product.Tenant,
		&product.DateAdded,
	)
	if err != nil {
		return nil, err
	}

	product.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q for product %s: %w", price, product.ID, err)
	}

	return &product, nil
}

// scanProducts reads product rows into a slice
func scanProducts(rows *sql.Rows) ([]models.Product, error) {
	var products []models.Product
	for rows.Next() {
		var product models.Product
		var price string

		err := rows.Scan(
			&product.ID,
			&product.Name,
			&price,
			&product.Stock,
			&product.Tenant,
			&product.DateAdded,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		product.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("invalid price %q for product %s: %w", price, product.ID, err)
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
