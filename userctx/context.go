package userctx

import (
	"context"

	"github.com/blogem/tenant-admin/models"
)

// Context key type
type contextKey string

const principalKey contextKey = "principal"

// SetPrincipal adds the authenticated principal to the request context
func SetPrincipal(ctx context.Context, p models.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipal retrieves the authenticated principal from the request
// context. The second return value is false for unauthenticated requests.
func GetPrincipal(ctx context.Context) (models.Principal, bool) {
	p, ok := ctx.Value(principalKey).(models.Principal)
	return p, ok
}

// GetUserEmail retrieves the authenticated user's email, or "anonymous"
// when no principal is present. Used by the audit logger.
func GetUserEmail(ctx context.Context) string {
	p, ok := GetPrincipal(ctx)
	if !ok {
		return "anonymous"
	}
	return p.Email
}
