package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jfarias-dev/ligauni/internal/identity"
)

// RequireAuth rejects requests whose actor is not authenticated.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := identity.FromContext(c)
		if !actor.Authenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Debes iniciar sesión para acceder a este recurso"})
			return
		}
		c.Next()
	}
}

// RequireRole allows only actors carrying at least one of the given roles.
// Must be stacked after Identity, which populates the actor.
func RequireRole(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := identity.FromContext(c)
		if !actor.Authenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Debes iniciar sesión para acceder a este recurso"})
			return
		}

		for _, userRole := range actor.Roles {
			for _, requiredRole := range requiredRoles {
				if strings.EqualFold(userRole, requiredRole) {
					c.Next()
					return
				}
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":    "No tienes permisos para acceder a este recurso",
			"required": requiredRoles,
		})
	}
}

// RequirePlanillero is a convenience middleware for scorekeeper-only access.
func RequirePlanillero() gin.HandlerFunc {
	return RequireRole(identity.RolePlanillero, identity.RoleAdmin)
}
