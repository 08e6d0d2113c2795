// finance/synchronizer.go
package finance

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	aegis_errors "github.com/campusforge/aegis/errors"
	logger "github.com/campusforge/aegis/logging"
	"github.com/campusforge/aegis/model"
	"github.com/campusforge/aegis/util"
)

// Event types published after a committed financial transition.
const (
	EventPaymentVerified       = "payment.verified"
	EventPaymentRejected       = "payment.rejected"
	EventRegistrationConfirmed = "registration.confirmed"
)

// PaymentTransition is the event payload for payment.* events.
type PaymentTransition struct {
	PaymentID  string
	StudentID  string
	SemesterID string
	NewStatus  model.PaymentStatus
	Tier       model.AccessTier
}

// RegistrationSynchronizer keeps the registration record consistent with
// the payment ledger. Every transition runs as one transaction: the
// payment status write, the derived registration flags and the
// notification row commit or roll back together, and the locked payment
// row serializes concurrent attempts on the same payment id.
//
// The record's reachable states are Unpaid/Unregistered,
// Paid/Unregistered and Paid/Registered; IsRegistered is force-cleared
// whenever IsPaid falls, so Unpaid/Registered cannot be observed after a
// commit.
type RegistrationSynchronizer struct {
	store       Store
	semesterFee int64
	eventBus    *util.EventBus
}

func NewRegistrationSynchronizer(store Store, semesterFee int64, eventBus *util.EventBus) *RegistrationSynchronizer {
	return &RegistrationSynchronizer{
		store:       store,
		semesterFee: semesterFee,
		eventBus:    eventBus,
	}
}

// OnPaymentStatusChanged applies a Pending -> Verified or Pending ->
// Rejected transition. A payment that already left the pending state is
// rejected with ErrPaymentAlreadyFinalized and nothing changes. Any
// failure aborts the whole transaction; the caller may retry.
func (rs *RegistrationSynchronizer) OnPaymentStatusChanged(ctx context.Context, paymentID string, newStatus model.PaymentStatus, reason string) error {
	if newStatus != model.PaymentVerified && newStatus != model.PaymentRejected {
		return aegis_errors.ErrInvalidPaymentData
	}

	var transition PaymentTransition

	err := rs.store.Transact(ctx, func(tx Store) error {
		payment, err := tx.PaymentByID(ctx, paymentID)
		if err != nil {
			return err
		}
		if !transitionAllowed(payment.Status, newStatus) {
			return aegis_errors.ErrPaymentAlreadyFinalized
		}

		payment.Status = newStatus
		payment.StatusNote = reason
		if err := tx.SavePayment(ctx, payment); err != nil {
			return err
		}

		// The registration row lock serializes every transition on this
		// (student, semester) scope. It must be taken before the ledger
		// sum: under read committed, a sum taken pre-lock can miss a
		// transition that commits while this transaction waits, and the
		// stale total would then overwrite the flags that transition set.
		record, err := tx.RegistrationFor(ctx, payment.StudentID, payment.SemesterID)
		if err != nil {
			return err
		}

		totals, err := tx.SumLedger(ctx, payment.StudentID, payment.SemesterID)
		if err != nil {
			return err
		}
		status := ComputeTier(totals, rs.semesterFee)

		record.IsPaid = status.CanRegister
		if !record.IsPaid && record.IsRegistered {
			// Losing the paid flag revokes registration outright.
			logger.Warn("Registration revoked by payment rejection",
				zap.String("studentID", record.StudentID),
				zap.String("semesterID", record.SemesterID),
				zap.String("paymentID", paymentID))
			record.IsRegistered = false
		}
		if err := tx.SaveRegistration(ctx, record); err != nil {
			return err
		}

		notification := &model.Notification{
			RecipientID: payment.StudentID,
			Kind:        "payment." + string(newStatus),
			Message:     paymentMessage(payment, status),
			CreatedAt:   time.Now().UTC(),
		}
		if err := tx.CreateNotification(ctx, notification); err != nil {
			return err
		}

		transition = PaymentTransition{
			PaymentID:  paymentID,
			StudentID:  payment.StudentID,
			SemesterID: payment.SemesterID,
			NewStatus:  newStatus,
			Tier:       status.Tier,
		}
		return nil
	})
	if err != nil {
		return err
	}

	eventType := EventPaymentVerified
	if newStatus == model.PaymentRejected {
		eventType = EventPaymentRejected
	}
	rs.eventBus.Publish(ctx, eventType, transition)

	logger.Info("Payment transition applied",
		zap.String("paymentID", paymentID),
		zap.String("newStatus", string(newStatus)),
		zap.String("tier", transition.Tier.String()))
	return nil
}

// ConfirmRegistration flips IsRegistered for a record whose fee standing
// allows it. The check and the write share one transaction and the row
// lock, so a concurrent rejection cannot slip between them.
func (rs *RegistrationSynchronizer) ConfirmRegistration(ctx context.Context, studentID, semesterID string) error {
	err := rs.store.Transact(ctx, func(tx Store) error {
		record, err := tx.RegistrationFor(ctx, studentID, semesterID)
		if err != nil {
			return err
		}
		if !record.IsPaid {
			return aegis_errors.ErrRegistrationLocked
		}
		if record.IsRegistered {
			return nil
		}

		record.IsRegistered = true
		if err := tx.SaveRegistration(ctx, record); err != nil {
			return err
		}

		return tx.CreateNotification(ctx, &model.Notification{
			RecipientID: studentID,
			Kind:        "registration.confirmed",
			Message:     "Your semester registration is confirmed.",
			CreatedAt:   time.Now().UTC(),
		})
	})
	if err != nil {
		return err
	}

	rs.eventBus.Publish(ctx, EventRegistrationConfirmed, PaymentTransition{
		StudentID:  studentID,
		SemesterID: semesterID,
	})
	return nil
}

// transitionAllowed encodes the ledger's legal moves: a pending row may
// be verified or rejected, and a verified row may still be rejected
// (revocation by the accounts desk). A rejected row is final, and
// re-applying the current status is a no-op attempt, not a transition.
func transitionAllowed(current, next model.PaymentStatus) bool {
	if current == model.PaymentPending {
		return true
	}
	return current == model.PaymentVerified && next == model.PaymentRejected
}

func paymentMessage(payment *model.Payment, status model.TierStatus) string {
	switch payment.Status {
	case model.PaymentVerified:
		return fmt.Sprintf("Payment of %d verified. Access level: %s.", payment.Amount, status.TierName)
	case model.PaymentRejected:
		return fmt.Sprintf("Payment of %d was rejected. Access level: %s.", payment.Amount, status.TierName)
	default:
		return fmt.Sprintf("Payment of %d recorded.", payment.Amount)
	}
}
