package controllers

import (
	"errors"
	"net/http"

	"gitea.com/go-chi/session"
	"github.com/sirupsen/logrus"

	"github.com/blogem/tenant-admin/authenticator"
	"github.com/blogem/tenant-admin/middleware"
	"github.com/blogem/tenant-admin/models"
	"github.com/blogem/tenant-admin/services"
)

// AuthController handles login and logout
type AuthController struct {
	services *services.Services
}

// NewAuthController creates a new auth controller
func NewAuthController(services *services.Services) *AuthController {
	return &AuthController{services: services}
}

// loginPageData is the template data for the login page
type loginPageData struct {
	Title       string
	CurrentPage string
	Error       string
	Email       string
	Principal   models.Principal
}

// ShowLogin handles GET /login
func (c *AuthController) ShowLogin(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)
	if userID, _ := sess.Get(middleware.SessionUserID).(string); userID != "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	renderTemplate(w, "login", "templates/login.html", loginPageData{
		Title:       "Login",
		CurrentPage: "login",
	})
}

// Login handles POST /login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	principal, err := c.services.Auth.Authenticate(r.Context(), email, password)
	if err != nil {
		if !errors.Is(err, authenticator.ErrInvalidCredentials) {
			logrus.WithError(err).Error("login failed")
		}

		renderTemplateWithStatus(w, http.StatusUnauthorized, "login_error", "templates/login.html", loginPageData{
			Title:       "Login",
			CurrentPage: "login",
			Error:       "Invalid email or password",
			Email:       email,
		})
		return
	}

	// Rotate the session ID on privilege change
	sess, err := session.RegenerateSession(w, r)
	if err != nil {
		http.Error(w, "Failed to start session: "+err.Error(), http.StatusInternalServerError)
		return
	}

	sess.Set(middleware.SessionUserID, principal.UserID)
	sess.Set(middleware.SessionEmail, principal.Email)
	sess.Set(middleware.SessionRole, string(principal.Role))
	sess.Set(middleware.SessionTenant, principal.Tenant)

	redirect, _ := sess.Get("redirect_after_login").(string)
	sess.Delete("redirect_after_login")
	if redirect == "" {
		redirect = "/"
	}

	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

// Logout handles GET /logout
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)
	if err := sess.Flush(); err != nil {
		http.Error(w, "Failed to end session: "+err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
