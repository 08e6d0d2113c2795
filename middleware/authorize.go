// middleware/authorize.go

package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	pdp_model "github.com/campusforge/aegis/pdp/model"
	"github.com/campusforge/aegis/util"
)

// Authorizer is the decision entry point the guard consults.
type Authorizer interface {
	Authorize(ctx context.Context, req *pdp_model.AccessRequest) *pdp_model.AccessDecision
}

// RequireAccess guards a route with the policy gate. The upstream
// authentication middleware must have placed the actor on the gin
// context; request parameters relevant to conditions travel as query
// values. A denial aborts with 403 and a body distinct from validation
// errors.
func RequireAccess(gate Authorizer, action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(401, gin.H{"error": "unauthenticated"})
			return
		}

		params := map[string]any{}
		for key, values := range c.Request.URL.Query() {
			if len(values) > 0 {
				params[key] = values[0]
			}
		}
		for _, p := range c.Params {
			params[p.Key] = p.Value
		}

		decision := gate.Authorize(c.Request.Context(), &pdp_model.AccessRequest{
			Actor:    actor,
			Action:   action,
			Resource: resource,
			Params:   params,
			Origin:   "http",
		})
		if !decision.Allowed {
			util.RespondWithDenial(c, decision.Reason)
			c.Abort()
			return
		}

		c.Next()
	}
}

// ActorFromContext reads the authenticated actor placed on the context by
// the authentication layer.
func ActorFromContext(c *gin.Context) (pdp_model.Actor, bool) {
	v, exists := c.Get("actor")
	if !exists {
		return pdp_model.Actor{}, false
	}
	actor, ok := v.(pdp_model.Actor)
	return actor, ok
}
