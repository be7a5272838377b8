package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/blogem/tenant-admin/models"
	"github.com/blogem/tenant-admin/services"
	"github.com/blogem/tenant-admin/userctx"
)

// ProductController handles product management requests
type ProductController struct {
	services *services.Services
}

// NewProductController creates a new product controller
func NewProductController(services *services.Services) *ProductController {
	return &ProductController{
		services: services,
	}
}

// productPageData is the template data for the product list page
type productPageData struct {
	Title       string
	CurrentPage string
	Error       string
	Success     string
	Principal   models.Principal
	Products    []models.Product
	Form        *models.ProductForm
	CanMutate   bool
	CanPropose  bool
}

// Index handles GET /products
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	c.renderIndex(w, r, http.StatusOK, "", "", nil)
}

// renderIndex renders the product list with an optional message and form state
func (c *ProductController) renderIndex(w http.ResponseWriter, r *http.Request, status int, errMsg, successMsg string, form *models.ProductForm) {
	principal, _ := userctx.GetPrincipal(r.Context())

	products, err := c.services.Products.ListProducts(r.Context(), principal)
	if err != nil {
		http.Error(w, "Failed to load products: "+err.Error(), statusForError(err))
		return
	}

	if form == nil {
		form = &models.ProductForm{Tenant: principal.Tenant}
	}

	renderTemplateWithStatus(w, status, "products", "templates/products.html", productPageData{
		Title:       "Product Management",
		CurrentPage: "products",
		Error:       errMsg,
		Success:     successMsg,
		Principal:   principal,
		Products:    products,
		Form:        form,
		CanMutate:   services.CanDirectlyMutateProducts(principal),
		CanPropose:  services.CanProposeProducts(principal),
	})
}

// productFormFromRequest builds a ProductForm from posted form values
func productFormFromRequest(r *http.Request) (*models.ProductForm, error) {
	price, err := decimal.NewFromString(r.FormValue("price"))
	if err != nil {
		return nil, fmt.Errorf("invalid price: %w", err)
	}

	stock, err := strconv.Atoi(r.FormValue("stock"))
	if err != nil {
		return nil, fmt.Errorf("invalid stock: %w", err)
	}

	return &models.ProductForm{
		Name:   r.FormValue("name"),
		Price:  price,
		Stock:  stock,
		Tenant: r.FormValue("tenant"),
	}, nil
}

// Create handles POST /products
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	principal, _ := userctx.GetPrincipal(r.Context())

	form, err := productFormFromRequest(r)
	if err != nil {
		c.renderIndex(w, r, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	if _, err := c.services.Products.CreateProduct(r.Context(), principal, form); err != nil {
		c.renderIndex(w, r, statusForError(err), err.Error(), "", form)
		return
	}

	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

// Edit handles GET /products/{id}/edit
func (c *ProductController) Edit(w http.ResponseWriter, r *http.Request) {
	principal, _ := userctx.GetPrincipal(r.Context())
	id := chi.URLParam(r, "id")

	product, err := c.services.Products.GetProduct(r.Context(), principal, id)
	if err != nil {
		http.Error(w, "Product not found: "+err.Error(), statusForError(err))
		return
	}

	templateData := struct {
		Title       string
		CurrentPage string
		Error       string
		Principal   models.Principal
		Product     *models.Product
		Form        *models.ProductForm
		CanMutate   bool
		CanPropose  bool
	}{
		Title:       "Edit Product",
		CurrentPage: "products",
		Principal:   principal,
		Product:     product,
		Form: &models.ProductForm{
			Name:   product.Name,
			Price:  product.Price,
			Stock:  product.Stock,
			Tenant: product.Tenant,
		},
		CanMutate:  services.CanDirectlyMutateProducts(principal),
		CanPropose: services.CanProposeProducts(principal),
	}

	renderTemplate(w, "product_edit", "templates/product_edit.html", templateData)
}

// Update handles POST /products/{id}
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	principal, _ := userctx.GetPrincipal(r.Context())
	id := chi.URLParam(r, "id")

	form, err := productFormFromRequest(r)
	if err != nil {
		c.renderIndex(w, r, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	if _, err := c.services.Products.UpdateProduct(r.Context(), principal, id, form); err != nil {
		c.renderIndex(w, r, statusForError(err), err.Error(), "", form)
		return
	}

	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

// Delete handles POST /products/{id}/delete
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	principal, _ := userctx.GetPrincipal(r.Context())
	id := chi.URLParam(r, "id")

	if err := c.services.Products.DeleteProduct(r.Context(), principal, id); err != nil {
		c.renderIndex(w, r, statusForError(err), err.Error(), "", nil)
		return
	}

	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

// ProposeUpdate handles POST /products/{id}/propose
func (c *ProductController) ProposeUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	principal, _ := userctx.GetPrincipal(r.Context())
	id := chi.URLParam(r, "id")

	form, err := productFormFromRequest(r)
	if err != nil {
		c.renderIndex(w, r, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	if _, err := c.services.Products.ProposeUpdate(r.Context(), principal, id, form); err != nil {
		c.renderIndex(w, r, statusForError(err), err.Error(), "", form)
		return
	}

	c.renderIndex(w, r, http.StatusOK, "", "Product update request submitted for approval", nil)
}

// ProposeDelete handles POST /products/{id}/propose-delete
func (c *ProductController) ProposeDelete(w http.ResponseWriter, r *http.Request) {
	principal, _ := userctx.GetPrincipal(r.Context())
	id := chi.URLParam(r, "id")

	if _, err := c.services.Products.ProposeDelete(r.Context(), principal, id); err != nil {
		c.renderIndex(w, r, statusForError(err), err.Error(), "", nil)
		return
	}

	c.renderIndex(w, r, http.StatusOK, "", "Product deletion request submitted for approval", nil)
}
