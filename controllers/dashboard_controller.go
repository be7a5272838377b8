package controllers

import (
	"net/http"

	"github.com/blogem/tenant-admin/models"
	"github.com/blogem/tenant-admin/services"
	"github.com/blogem/tenant-admin/userctx"
)

// DashboardController handles dashboard-related requests
type DashboardController struct {
	services *services.Services
}

// NewDashboardController creates a new dashboard controller
func NewDashboardController(services *services.Services) *DashboardController {
	return &DashboardController{
		services: services,
	}
}

// Index handles GET /
func (c *DashboardController) Index(w http.ResponseWriter, r *http.Request) {
	principal, ok := userctx.GetPrincipal(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	productCount, err := c.services.Products.CountVisible(r.Context(), principal)
	if err != nil {
		http.Error(w, "Failed to load dashboard data: "+err.Error(), http.StatusInternalServerError)
		return
	}

	userCount := 0
	if principal.CanReview() {
		userCount, err = c.services.Users.CountVisible(r.Context(), principal)
		if err != nil {
			http.Error(w, "Failed to load dashboard data: "+err.Error(), http.StatusInternalServerError)
			return
		}
	}

	pendingCount, err := c.services.Review.CountPending(r.Context(), principal)
	if err != nil {
		http.Error(w, "Failed to load dashboard data: "+err.Error(), http.StatusInternalServerError)
		return
	}

	templateData := struct {
		Title        string
		CurrentPage  string
		Error        string
		Success      string
		Principal    models.Principal
		UserCount    int
		ProductCount int
		PendingCount int
	}{
		Title:        "Dashboard",
		CurrentPage:  "dashboard",
		Principal:    principal,
		UserCount:    userCount,
		ProductCount: productCount,
		PendingCount: pendingCount,
	}

	renderTemplate(w, "dashboard", "templates/dashboard.html", templateData)
}
