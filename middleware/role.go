package middleware

import (
	"net/http"

	"bookable/models"

	"github.com/gin-gonic/gin"
)

// RequireRole aborts the request unless the authenticated actor carries the
// given role. Availability configuration endpoints are business-only.
func RequireRole(role models.ActorRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		if actor.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}
