package middleware

import (
	"net/http"
	"strings"

	"bookable/models"
	"bookable/utils"

	"github.com/gin-gonic/gin"
)

const actorContextKey = "actor"

// ActorAuthMiddleware extracts the authenticated actor (id + role) from the
// bearer token and stores it on the request context. The scheduling engine
// trusts this identity input; authentication itself lives with the identity
// collaborator that issued the token.
func ActorAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		id, role, err := utils.ExtractActorFromToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if role != string(models.RoleCustomer) && role != string(models.RoleBusiness) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown actor role"})
			return
		}

		c.Set(actorContextKey, models.Actor{ID: id, Role: models.ActorRole(role)})
		c.Next()
	}
}

// ActorFromContext returns the actor the auth middleware stored.
func ActorFromContext(c *gin.Context) (models.Actor, bool) {
	v, ok := c.Get(actorContextKey)
	if !ok {
		return models.Actor{}, false
	}
	actor, ok := v.(models.Actor)
	return actor, ok
}
