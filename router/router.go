// router/router.go

package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusforge/aegis/controller"
	"github.com/campusforge/aegis/middleware"
)

func SetupRouter(
	controllers *controller.Controllers,
	gate middleware.Authorizer,
	rateLimitRequests int,
	rateLimitDuration time.Duration,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimiter(rateLimitRequests, rateLimitDuration))
	router.Use(middleware.Identity())

	api := router.Group("/api/v1")

	// Policy administration and payment verification are themselves
	// guarded by the decision engine.
	policyAdmin := api.Group("")
	policyAdmin.Use(middleware.RequireAccess(gate, "manage_policies", "policy"))
	controllers.Policy.RegisterRoutes(policyAdmin)

	controllers.Payment.RegisterRoutes(api, middleware.RequireAccess(gate, "verify_payment", "payment"))

	controllers.Access.RegisterRoutes(api)
	controllers.Registration.RegisterRoutes(api)
	controllers.Notification.RegisterRoutes(api)

	return router
}
