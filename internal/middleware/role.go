package middleware

import (
	"context"
	"net/http"

	"servicehub/internal/domain"
	"servicehub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// ContextRoles is the gin context key carrying the user's resolved roles.
const ContextRoles = "roles"

// RoleStore resolves a user's current role assignments. Roles are read
// from storage on every request rather than trusted from the token.
type RoleStore interface {
	GetRoles(ctx context.Context, userID int64) ([]domain.Role, error)
}

// RequireAnyRole rejects the request unless the user holds at least one
// of the allowed roles. The 403 payload carries the dashboard path for
// the user's primary role so clients can redirect instead of dead-ending.
func RequireAnyRole(store RoleStore, allowed ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			c.Abort()
			return
		}

		roles, err := store.GetRoles(c.Request.Context(), userID)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to resolve roles")
			c.Abort()
			return
		}
		c.Set(ContextRoles, roles)

		if !domain.AnyRole(roles, allowed) {
			response.ErrorWithDetails(c, http.StatusForbidden, "FORBIDDEN", "insufficient role", gin.H{
				"dashboard": domain.DashboardPath(domain.PrimaryRole(roles)),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// Roles extracts the resolved roles set by RequireAnyRole.
func Roles(c *gin.Context) []domain.Role {
	v, ok := c.Get(ContextRoles)
	if !ok {
		return nil
	}
	roles, _ := v.([]domain.Role)
	return roles
}
