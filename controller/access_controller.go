// controller/access_controller.go
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusforge/aegis/audit"
	aegis_errors "github.com/campusforge/aegis/errors"
	"github.com/campusforge/aegis/finance"
	"github.com/campusforge/aegis/middleware"
	pdp_model "github.com/campusforge/aegis/pdp/model"
	"github.com/campusforge/aegis/util"
	helper_util "github.com/campusforge/aegis/util/helper"
)

// AccessController exposes the decision engine itself: an explicit
// authorization check, the derived financial access status, and the
// decision audit log.
type AccessController struct {
	gate          middleware.Authorizer
	statusService *finance.AccessStatusService
	auditService  audit.Service
}

func NewAccessController(gate middleware.Authorizer, statusService *finance.AccessStatusService, auditService audit.Service) *AccessController {
	return &AccessController{
		gate:          gate,
		statusService: statusService,
		auditService:  auditService,
	}
}

// RegisterRoutes registers the API routes
func (ac *AccessController) RegisterRoutes(r *gin.RouterGroup) {
	access := r.Group("/access")
	{
		access.POST("/check", ac.Check)
		access.GET("/status/:studentId/:semesterId", ac.GetAccessStatus)
		access.GET("/audit", ac.QueryAuditLog)
	}
}

type checkRequest struct {
	Actor    pdp_model.Actor `json:"actor" binding:"required"`
	Action   string          `json:"action" binding:"required"`
	Resource string          `json:"resource" binding:"required"`
	Params   map[string]any  `json:"params"`
}

// Check endpoint: answers an authorization question without performing
// the underlying operation. Used by callers that guard actions in other
// services. A denial is a 200 with allowed=false; it is not an error.
func (ac *AccessController) Check(c *gin.Context) {
	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid access check request", err)
		return
	}

	decision := ac.gate.Authorize(c.Request.Context(), &pdp_model.AccessRequest{
		Actor:    req.Actor,
		Action:   req.Action,
		Resource: req.Resource,
		Params:   req.Params,
		Origin:   "http",
	})

	c.JSON(http.StatusOK, decision)
}

// GetAccessStatus endpoint: the tier, percentage and registration state
// derived from the payment ledger, recomputed on every call.
func (ac *AccessController) GetAccessStatus(c *gin.Context) {
	studentID := c.Param("studentId")
	semesterID := c.Param("semesterId")

	status, err := ac.statusService.GetAccessStatus(c.Request.Context(), studentID, semesterID)
	if err != nil {
		if errors.Is(err, aegis_errors.ErrRegistrationNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Registration record not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to compute access status", err)
		}
		return
	}

	c.JSON(http.StatusOK, status)
}

// QueryAuditLog endpoint
func (ac *AccessController) QueryAuditLog(c *gin.Context) {
	from, err := helper_util.ParseTime(c.DefaultQuery("from", time.Now().Add(-24*time.Hour).Format(time.RFC3339)))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid 'from' timestamp", err)
		return
	}
	to, err := helper_util.ParseTime(c.DefaultQuery("to", time.Now().Format(time.RFC3339)))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid 'to' timestamp", err)
		return
	}

	records, err := ac.auditService.QueryDecisions(c.Request.Context(), from, to, c.Query("actorId"), c.Query("resource"))
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to query audit log", err)
		return
	}

	c.JSON(http.StatusOK, records)
}
