// controller/registration_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	aegis_errors "github.com/campusforge/aegis/errors"
	"github.com/campusforge/aegis/finance"
	"github.com/campusforge/aegis/util"
)

type RegistrationController struct {
	synchronizer *finance.RegistrationSynchronizer
	store        finance.Store
}

func NewRegistrationController(synchronizer *finance.RegistrationSynchronizer, store finance.Store) *RegistrationController {
	return &RegistrationController{
		synchronizer: synchronizer,
		store:        store,
	}
}

// RegisterRoutes registers the API routes
func (rc *RegistrationController) RegisterRoutes(r *gin.RouterGroup) {
	registrations := r.Group("/registrations")
	{
		registrations.GET("/:studentId/:semesterId", rc.GetRegistration)
		registrations.POST("/:studentId/:semesterId/confirm", rc.ConfirmRegistration)
	}
}

// GetRegistration endpoint
func (rc *RegistrationController) GetRegistration(c *gin.Context) {
	record, err := rc.store.RegistrationFor(c.Request.Context(), c.Param("studentId"), c.Param("semesterId"))
	if err != nil {
		if errors.Is(err, aegis_errors.ErrRegistrationNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Registration record not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to load registration record", err)
		}
		return
	}
	c.JSON(http.StatusOK, record)
}

// ConfirmRegistration endpoint. A record without sufficient verified
// payment answers 423 (locked); that is an expected outcome, not a
// validation failure.
func (rc *RegistrationController) ConfirmRegistration(c *gin.Context) {
	err := rc.synchronizer.ConfirmRegistration(c.Request.Context(), c.Param("studentId"), c.Param("semesterId"))
	if err != nil {
		switch {
		case errors.Is(err, aegis_errors.ErrRegistrationLocked):
			c.JSON(http.StatusLocked, gin.H{"locked": true, "reason": "insufficient verified payment"})
		case errors.Is(err, aegis_errors.ErrRegistrationNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Registration record not found", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to confirm registration, retry", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"registered": true})
}
