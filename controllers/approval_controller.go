package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/blogem/tenant-admin/models"
	"github.com/blogem/tenant-admin/services"
	"github.com/blogem/tenant-admin/userctx"
)

// ApprovalController handles the change request review workflow
type ApprovalController struct {
	services *services.Services
}

// NewApprovalController creates a new approval controller
func NewApprovalController(services *services.Services) *ApprovalController {
	return &ApprovalController{
		services: services,
	}
}

// approvalPageData is the template data for the pending requests page
type approvalPageData struct {
	Title       string
	CurrentPage string
	Error       string
	Success     string
	Warning     string
	Principal   models.Principal
	Requests    []models.ChangeRequest
}

// Index handles GET /approvals
func (c *ApprovalController) Index(w http.ResponseWriter, r *http.Request) {
	c.renderIndex(w, r, http.StatusOK, "", "", "")
}

// renderIndex renders the pending request list with optional messages
func (c *ApprovalController) renderIndex(w http.ResponseWriter, r *http.Request, status int, errMsg, successMsg, warningMsg string) {
	principal, _ := userctx.GetPrincipal(r.Context())

	requests, err := c.services.Review.ListPending(r.Context(), principal)
	if err != nil {
		http.Error(w, "Failed to load pending requests: "+err.Error(), statusForError(err))
		return
	}

	renderTemplateWithStatus(w, status, "approvals", "templates/approvals.html", approvalPageData{
		Title:       "Product Approvals",
		CurrentPage: "approvals",
		Error:       errMsg,
		Success:     successMsg,
		Warning:     warningMsg,
		Principal:   principal,
		Requests:    requests,
	})
}

// Approve handles POST /approvals/{id}/approve
func (c *ApprovalController) Approve(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	principal, _ := userctx.GetPrincipal(r.Context())
	id := chi.URLParam(r, "id")
	notes := r.FormValue("notes")

	outcome, err := c.services.Review.Approve(r.Context(), principal, id, notes)
	if err != nil {
		c.renderIndex(w, r, statusForError(err), err.Error(), "", "")
		return
	}

	if outcome.TargetMissing {
		// The decision stands but the product was already gone.
		c.renderIndex(w, r, http.StatusOK, "", "",
			"Request approved, but the target product no longer exists; no change was applied")
		return
	}

	c.renderIndex(w, r, http.StatusOK, "", "Request approved and product data updated", "")
}

// Reject handles POST /approvals/{id}/reject
func (c *ApprovalController) Reject(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	principal, _ := userctx.GetPrincipal(r.Context())
	id := chi.URLParam(r, "id")
	notes := r.FormValue("notes")

	if _, err := c.services.Review.Reject(r.Context(), principal, id, notes); err != nil {
		c.renderIndex(w, r, statusForError(err), err.Error(), "", "")
		return
	}

	c.renderIndex(w, r, http.StatusOK, "", "Request rejected", "")
}
