package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/blogem/tenant-admin/models"
	"github.com/blogem/tenant-admin/services"
	"github.com/blogem/tenant-admin/userctx"
)

// UserController handles user management requests
type UserController struct {
	services *services.Services
}

// NewUserController creates a new user controller
func NewUserController(services *services.Services) *UserController {
	return &UserController{
		services: services,
	}
}

// userPageData is the template data for the user list page
type userPageData struct {
	Title        string
	CurrentPage  string
	Error        string
	Success      string
	Principal    models.Principal
	Users        []models.User
	Form         *models.UserForm
	AllowedRoles []models.Role
}

// allowedRoles lists the roles the principal may assign, for the role
// dropdown.
func allowedRoles(p models.Principal) []models.Role {
	var roles []models.Role
	for _, role := range []models.Role{models.RoleUser, models.RoleAdmin, models.RoleSuperAdmin} {
		if services.CanAssignRole(p, role) {
			roles = append(roles, role)
		}
	}
	return roles
}

// Index handles GET /users
func (c *UserController) Index(w http.ResponseWriter, r *http.Request) {
	c.renderIndex(w, r, http.StatusOK, "", "", nil)
}

// renderIndex renders the user list with an optional message and form state
func (c *UserController) renderIndex(w http.ResponseWriter, r *http.Request, status int, errMsg, successMsg string, form *models.UserForm) {
	principal, _ := userctx.GetPrincipal(r.Context())

	users, err := c.services.Users.ListUsers(r.Context(), principal)
	if err != nil {
		http.Error(w, "Failed to load users: "+err.Error(), statusForError(err))
		return
	}

	if form == nil {
		form = &models.UserForm{Role: models.RoleUser, Tenant: principal.Tenant}
	}

	renderTemplateWithStatus(w, status, "users", "templates/users.html", userPageData{
		Title:        "User Management",
		CurrentPage:  "users",
		Error:        errMsg,
		Success:      successMsg,
		Principal:    principal,
		Users:        users,
		Form:         form,
		AllowedRoles: allowedRoles(principal),
	})
}

// userFormFromRequest builds a UserForm from posted form values
func userFormFromRequest(r *http.Request) *models.UserForm {
	return &models.UserForm{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Tenant:   r.FormValue("tenant"),
		Role:     models.Role(r.FormValue("role")),
		Password: r.FormValue("password"),
	}
}

// Create handles POST /users
func (c *UserController) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	principal, _ := userctx.GetPrincipal(r.Context())
	form := userFormFromRequest(r)

	if _, err := c.services.Users.CreateUser(r.Context(), principal, form); err != nil {
		c.renderIndex(w, r, statusForError(err), err.Error(), "", form)
		return
	}

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

// Edit handles GET /users/{id}/edit
func (c *UserController) Edit(w http.ResponseWriter, r *http.Request) {
	principal, _ := userctx.GetPrincipal(r.Context())
	id := chi.URLParam(r, "id")

	user, err := c.services.Users.GetUser(r.Context(), principal, id)
	if err != nil {
		http.Error(w, "User not found: "+err.Error(), statusForError(err))
		return
	}

	templateData := struct {
		Title        string
		CurrentPage  string
		Error        string
		Principal    models.Principal
		User         *models.User
		Form         *models.UserForm
		AllowedRoles []models.Role
	}{
		Title:       "Edit User",
		CurrentPage: "users",
		Principal:   principal,
		User:        user,
		Form: &models.UserForm{
			Name:   user.Name,
			Email:  user.Email,
			Tenant: user.Tenant,
			Role:   user.Role,
		},
		AllowedRoles: allowedRoles(principal),
	}

	renderTemplate(w, "user_edit", "templates/user_edit.html", templateData)
}

// Update handles POST /users/{id}
func (c *UserController) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	principal, _ := userctx.GetPrincipal(r.Context())
	id := chi.URLParam(r, "id")
	form := userFormFromRequest(r)

	if _, err := c.services.Users.UpdateUser(r.Context(), principal, id, form); err != nil {
		c.renderIndex(w, r, statusForError(err), err.Error(), "", form)
		return
	}

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

// Delete handles POST /users/{id}/delete
func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	principal, _ := userctx.GetPrincipal(r.Context())
	id := chi.URLParam(r, "id")

	if err := c.services.Users.DeleteUser(r.Context(), principal, id); err != nil {
		c.renderIndex(w, r, statusForError(err), err.Error(), "", nil)
		return
	}

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}
