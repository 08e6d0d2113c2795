// middleware/identity.go

package middleware

import (
	"github.com/gin-gonic/gin"

	pdp_model "github.com/campusforge/aegis/pdp/model"
)

// Identity lifts the actor identity forwarded by the authenticating edge
// proxy onto the gin context. Routes behind RequireAccess read it from
// there; routes without an identity simply proceed unauthenticated and
// fail at the guard.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader("X-Actor-Id")
		if actorID != "" {
			c.Set("actor", pdp_model.Actor{
				ID:         actorID,
				Role:       c.GetHeader("X-Actor-Role"),
				Department: c.GetHeader("X-Actor-Department"),
			})
			c.Set("userID", actorID)
		}
		c.Next()
	}
}
