package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jfarias-dev/ligauni/internal/identity"
	"github.com/jfarias-dev/ligauni/internal/profile"
	"github.com/jfarias-dev/ligauni/pkg/token"
)

// Identity resolves the Authorization header into an Actor and stores it in
// the context. Requests without credentials continue as the anonymous actor;
// invalid credentials are rejected. Handlers that need authentication stack
// RequireAuth behind this.
func Identity(jwtSecret string, repo profile.ProfileRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Set(identity.ContextActorKey, identity.Anonymous())
			c.Next()
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Formato de cabecera Authorization inválido. Se espera: Bearer <token>"})
			return
		}

		claims, err := token.ValidateJWT(bearerToken[1], jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token inválido o expirado: " + err.Error()})
			return
		}

		// The local profile row is a mirror; it may lag behind the
		// identity service for freshly registered users.
		var profileID uint
		if p, err := repo.GetByAuthID(claims.Subject); err == nil && p != nil {
			profileID = p.ID
		}

		c.Set(identity.ContextActorKey, identity.Resolve(claims, profileID))
		c.Next()
	}
}
