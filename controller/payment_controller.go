// controller/payment_controller.go
package controller

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	aegis_errors "github.com/campusforge/aegis/errors"
	"github.com/campusforge/aegis/finance"
	"github.com/campusforge/aegis/model"
	"github.com/campusforge/aegis/util"
)

// PaymentController owns ledger submission and the two status
// transitions. Verifying or rejecting runs the registration
// synchronizer; the whole transition either commits or rolls back, so a
// 5xx here always means "retry", never "half applied".
type PaymentController struct {
	synchronizer   *finance.RegistrationSynchronizer
	store          finance.Store
	validationUtil *util.ValidationUtil
}

func NewPaymentController(synchronizer *finance.RegistrationSynchronizer, store finance.Store, validationUtil *util.ValidationUtil) *PaymentController {
	return &PaymentController{
		synchronizer:   synchronizer,
		store:          store,
		validationUtil: validationUtil,
	}
}

// RegisterRoutes registers the API routes. Submission is open to any
// authenticated caller; the status transitions sit behind the supplied
// guard (the accounts desk gate).
func (pc *PaymentController) RegisterRoutes(r *gin.RouterGroup, transitionGuard gin.HandlerFunc) {
	payments := r.Group("/payments")
	{
		payments.POST("", pc.SubmitPayment)
		payments.GET("/:id", pc.GetPayment)

		transitions := payments.Group("")
		transitions.Use(transitionGuard)
		{
			transitions.POST("/:id/verify", pc.VerifyPayment)
			transitions.POST("/:id/reject", pc.RejectPayment)
		}
	}
}

// SubmitPayment endpoint: appends a pending row to the ledger.
func (pc *PaymentController) SubmitPayment(c *gin.Context) {
	var payment model.Payment
	if err := c.ShouldBindJSON(&payment); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid payment data", aegis_errors.ErrInvalidPaymentData)
		return
	}
	if err := pc.validationUtil.ValidatePayment(payment); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid payment data", err)
		return
	}

	payment.ID = ""
	payment.Status = model.PaymentPending
	payment.CreatedAt = time.Now().UTC()

	if err := pc.store.SavePayment(c.Request.Context(), &payment); err != nil {
		if errors.Is(err, aegis_errors.ErrPaymentConflict) {
			util.RespondWithError(c, http.StatusConflict, "Duplicate payment reference", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to record payment", err)
		}
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// GetPayment endpoint
func (pc *PaymentController) GetPayment(c *gin.Context) {
	payment, err := pc.store.PaymentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, aegis_errors.ErrPaymentNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Payment not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to load payment", err)
		}
		return
	}
	c.JSON(http.StatusOK, payment)
}

type transitionRequest struct {
	Reason string `json:"reason"`
}

// VerifyPayment endpoint
func (pc *PaymentController) VerifyPayment(c *gin.Context) {
	pc.transition(c, model.PaymentVerified)
}

// RejectPayment endpoint
func (pc *PaymentController) RejectPayment(c *gin.Context) {
	pc.transition(c, model.PaymentRejected)
}

func (pc *PaymentController) transition(c *gin.Context, newStatus model.PaymentStatus) {
	paymentID := c.Param("id")

	// An empty body means "no reason given", not a malformed request.
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid transition request", err)
		return
	}

	err := pc.synchronizer.OnPaymentStatusChanged(c.Request.Context(), paymentID, newStatus, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, aegis_errors.ErrPaymentNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Payment not found", err)
		case errors.Is(err, aegis_errors.ErrPaymentAlreadyFinalized):
			util.RespondWithError(c, http.StatusConflict, "Payment already finalized", err)
		case errors.Is(err, aegis_errors.ErrRegistrationNotFound):
			util.RespondWithError(c, http.StatusConflict, "No registration record for payment", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Payment transition failed, retry", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": string(newStatus)})
}
