package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/blogem/tenant-admin/models"
	"github.com/blogem/tenant-admin/repositories"
)

// ProductService interface defines product business logic: the direct
// mutation path for admins and the proposal path for user-role accounts.
type ProductService interface {
	ListProducts(ctx context.Context, p models.Principal) ([]models.Product, error)
	GetProduct(ctx context.Context, p models.Principal, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, p models.Principal, form *models.ProductForm) (*models.Product, error)
	UpdateProduct(ctx context.Context, p models.Principal, id string, form *models.ProductForm) (*models.Product, error)
	DeleteProduct(ctx context.Context, p models.Principal, id string) error
	ProposeUpdate(ctx context.Context, p models.Principal, id string, form *models.ProductForm) (*models.ChangeRequest, error)
	ProposeDelete(ctx context.Context, p models.Principal, id string) (*models.ChangeRequest, error)
	CountVisible(ctx context.Context, p models.Principal) (int, error)
}

// productService implements ProductService interface
type productService struct {
	productRepo repositories.ProductRepository
	requestRepo repositories.RequestRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repositories.ProductRepository, requestRepo repositories.RequestRepository) ProductService {
	return &productService{
		productRepo: productRepo,
		requestRepo: requestRepo,
	}
}

// ListProducts retrieves the products visible to the principal. Every role
// may read products of its own tenant.
func (s *productService) ListProducts(ctx context.Context, p models.Principal) ([]models.Product, error) {
	if tenant := VisibleTenant(p); tenant != "" {
		return s.productRepo.GetByTenant(ctx, tenant)
	}
	return s.productRepo.GetAll(ctx)
}

// GetProduct retrieves a single product, enforcing tenant scope
func (s *productService) GetProduct(ctx context.Context, p models.Principal, id string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if tenant := VisibleTenant(p); tenant != "" && product.Tenant != tenant {
		return nil, fmt.Errorf("product %s is outside your tenant: %w", id, ErrPermissionDenied)
	}

	return product, nil
}

// CreateProduct creates a product via the direct mutation path
func (s *productService) CreateProduct(ctx context.Context, p models.Principal, form *models.ProductForm) (*models.Product, error) {
	if !CanDirectlyMutateProducts(p) {
		return nil, fmt.Errorf("creating product: %w", ErrPermissionDenied)
	}

	// Admins create products in their own tenant regardless of form input;
	// super admins may name any tenant, including a new one.
	if p.IsAdmin() {
		form.Tenant = p.Tenant
	}

	if errs := form.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, strings.Join(errs, ", "))
	}

	product := &models.Product{
		Name:   strings.TrimSpace(form.Name),
		Price:  form.Price,
		Stock:  form.Stock,
		Tenant: form.Tenant,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// UpdateProduct updates a product via the direct mutation path
func (s *productService) UpdateProduct(ctx context.Context, p models.Principal, id string, form *models.ProductForm) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanMutateProductIn(p, product.Tenant) {
		return nil, fmt.Errorf("updating product %s: %w", id, ErrPermissionDenied)
	}

	// Only super admins may move a product to another tenant.
	if !p.IsSuperAdmin() {
		form.Tenant = product.Tenant
	}

	if errs := form.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, strings.Join(errs, ", "))
	}

	product.Name = strings.TrimSpace(form.Name)
	product.Price = form.Price
	product.Stock = form.Stock
	product.Tenant = form.Tenant

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

// DeleteProduct deletes a product via the direct mutation path
func (s *productService) DeleteProduct(ctx context.Context, p models.Principal, id string) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !CanMutateProductIn(p, product.Tenant) {
		return fmt.Errorf("deleting product %s: %w", id, ErrPermissionDenied)
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

// ProposeUpdate submits an update proposal to the change request ledger.
// The product is not touched until a reviewer approves the request.
func (s *productService) ProposeUpdate(ctx context.Context, p models.Principal, id string, form *models.ProductForm) (*models.ChangeRequest, error) {
	if !CanProposeProducts(p) {
		return nil, fmt.Errorf("proposing product update: %w", ErrPermissionDenied)
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanProposeProductIn(p, product.Tenant) {
		return nil, fmt.Errorf("proposing update for product %s: %w", id, ErrPermissionDenied)
	}

	// Proposals never move products across tenants.
	form.Tenant = product.Tenant

	if errs := form.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, strings.Join(errs, ", "))
	}

	// A request must represent a real change.
	if form.Matches(product) {
		return nil, ErrNoChanges
	}

	proposed := form.Apply(*product)
	req := &models.ChangeRequest{
		ProductID:   product.ID,
		Type:        models.RequestUpdate,
		OldData:     *product,
		NewData:     &proposed,
		RequestedBy: p.Email,
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to submit update proposal: %w", err)
	}

	return req, nil
}

// ProposeDelete submits a deletion proposal to the change request ledger
func (s *productService) ProposeDelete(ctx context.Context, p models.Principal, id string) (*models.ChangeRequest, error) {
	if !CanProposeProducts(p) {
		return nil, fmt.Errorf("proposing product deletion: %w", ErrPermissionDenied)
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanProposeProductIn(p, product.Tenant) {
		return nil, fmt.Errorf("proposing deletion of product %s: %w", id, ErrPermissionDenied)
	}

	req := &models.ChangeRequest{
		ProductID:   product.ID,
		Type:        models.RequestDelete,
		OldData:     *product,
		RequestedBy: p.Email,
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to submit deletion proposal: %w", err)
	}

	return req, nil
}

// CountVisible returns the number of products visible to the principal
func (s *productService) CountVisible(ctx context.Context, p models.Principal) (int, error) {
	if tenant := VisibleTenant(p); tenant != "" {
		products, err := s.productRepo.GetByTenant(ctx, tenant)
		if err != nil {
			return 0, err
		}
		return len(products), nil
	}
	return s.productRepo.Count(ctx)
}
