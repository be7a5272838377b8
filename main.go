package main

import (
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/blogem/tenant-admin/authenticator"
	"github.com/blogem/tenant-admin/controllers"
	"github.com/blogem/tenant-admin/database"
	authmiddleware "github.com/blogem/tenant-admin/middleware"
	"github.com/blogem/tenant-admin/models"
	"github.com/blogem/tenant-admin/repositories"
	"github.com/blogem/tenant-admin/services"
)

func main() {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Debug("no .env file loaded")
	}

	// Initialize database
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "tenant_admin.db"
	}
	if err := database.InitializeDatabase(dbPath); err != nil {
		logrus.WithError(err).Fatal("failed to initialize database")
	}
	defer database.CloseDB()

	// Get database connection
	db := database.GetDB()

	// Provision demo accounts and products on a fresh database
	if err := database.SeedDemoData(db); err != nil {
		logrus.WithError(err).Fatal("failed to seed demo data")
	}

	// Initialize repositories
	repos := repositories.NewRepositories(db)

	// Credential verifier backed by the database
	verifier := authenticator.NewStoreVerifier(repos.Users, repos.Credentials)

	// Initialize services
	srvs := services.NewServices(repos, verifier)

	// Initialize controllers
	ctrl := controllers.NewControllers(srvs)

	// Set up router
	r, err := setupRouter(ctrl, repos)
	if err != nil {
		logrus.WithError(err).Fatal("failed to setup router")
	}

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logrus.WithFields(logrus.Fields{
		"port":     port,
		"database": dbPath,
	}).Info("tenant admin panel starting")

	logrus.Fatal(http.ListenAndServe(":"+port, r))
}

// setupRouter configures all routes
func setupRouter(ctrl *controllers.Controllers, repos *repositories.Repositories) (*chi.Mux, error) {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	// Determine if we should use secure cookies (HTTPS)
	useSecureCookies := os.Getenv("USE_HTTPS") == "true"

	// Session middleware
	sessionHandler, err := session.Sessioner(session.Options{
		Provider:       "memory",
		ProviderConfig: "",
		CookieName:     "tenant_admin_session",
		Secure:         useSecureCookies, // Set to true when USE_HTTPS=true (production)
		Gclifetime:     3600,             // Session lifetime in seconds
		Maxlifetime:    3600,
	})
	if err != nil {
		return nil, err
	}
	r.Use(sessionHandler)

	// PUBLIC ROUTES (no authentication required)
	r.Get("/login", ctrl.Auth.ShowLogin)
	r.Post("/login", ctrl.Auth.Login)
	r.Get("/logout", ctrl.Auth.Logout)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "tenant-admin"}`))
	})

	// PROTECTED ROUTES (authentication required)
	r.Group(func(r chi.Router) {
		r.Use(authmiddleware.RequireAuth)
		r.Use(authmiddleware.AuditLogger(repos.Audit))

		r.Get("/", ctrl.Dashboard.Index)

		// Product routes: every role may list; the services enforce who may
		// mutate directly and who may only propose.
		r.Route("/products", func(r chi.Router) {
			r.Get("/", ctrl.Products.Index)
			r.Post("/", ctrl.Products.Create)
			r.Get("/{id}/edit", ctrl.Products.Edit)
			r.Post("/{id}", ctrl.Products.Update)
			r.Post("/{id}/delete", ctrl.Products.Delete)
			r.Post("/{id}/propose", ctrl.Products.ProposeUpdate)
			r.Post("/{id}/propose-delete", ctrl.Products.ProposeDelete)
		})

		// User management and approvals are reviewer-only surfaces.
		r.Group(func(r chi.Router) {
			r.Use(authmiddleware.RequireRole(models.RoleSuperAdmin, models.RoleAdmin))

			r.Route("/users", func(r chi.Router) {
				r.Get("/", ctrl.Users.Index)
				r.Post("/", ctrl.Users.Create)
				r.Get("/{id}/edit", ctrl.Users.Edit)
				r.Post("/{id}", ctrl.Users.Update)
				r.Post("/{id}/delete", ctrl.Users.Delete)
			})

			r.Route("/approvals", func(r chi.Router) {
				r.Get("/", ctrl.Approvals.Index)
				r.Post("/{id}/approve", ctrl.Approvals.Approve)
				r.Post("/{id}/reject", ctrl.Approvals.Reject)
			})
		})
	})

	return r, nil
}
