package middleware

import (
	"net/http"

	"gitea.com/go-chi/session"

	"github.com/blogem/tenant-admin/models"
	"github.com/blogem/tenant-admin/userctx"
)

// Session keys written at login and read back on every request.
const (
	SessionUserID = "user_id"
	SessionEmail  = "user_email"
	SessionRole   = "user_role"
	SessionTenant = "user_tenant"
)

// RequireAuth ensures the user is authenticated and reconstructs the
// principal from the session into the request context.
// If not authenticated, redirects to /login and stores the intended destination
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.GetSession(r)

		userID, _ := sess.Get(SessionUserID).(string)
		email, _ := sess.Get(SessionEmail).(string)
		role, _ := sess.Get(SessionRole).(string)
		tenant, _ := sess.Get(SessionTenant).(string)

		if userID == "" || !models.Role(role).Valid() {
			// Store the intended destination for redirect after login
			sess.Set("redirect_after_login", r.URL.Path)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		principal := models.Principal{
			UserID: userID,
			Email:  email,
			Role:   models.Role(role),
			Tenant: tenant,
		}

		ctx := userctx.SetPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole restricts a route subtree to the given roles. Must run after
// RequireAuth.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := userctx.GetPrincipal(r.Context())
			if !ok {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			for _, role := range roles {
				if principal.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			http.Error(w, "You do not have permission to access this page", http.StatusForbidden)
		})
	}
}
