// finance/store.go
package finance

import (
	"context"

	"github.com/campusforge/aegis/model"
)

// LedgerTotals are the per-status sums of one student's semester ledger.
// Rejected rows are excluded from both buckets.
type LedgerTotals struct {
	VerifiedTotal int64
	PendingTotal  int64
}

// Store is the transactional surface the financial path runs against. Any
// method called inside Transact operates on the transaction's snapshot,
// and the row-returning reads take a row-level write lock there, so
// concurrent transitions on the same payment serialize.
type Store interface {
	// PaymentByID returns the ledger row, locked for update when inside
	// a transaction.
	PaymentByID(ctx context.Context, paymentID string) (*model.Payment, error)
	SavePayment(ctx context.Context, payment *model.Payment) error
	SumLedger(ctx context.Context, studentID, semesterID string) (LedgerTotals, error)

	// RegistrationFor returns the one record per (student, semester),
	// locked for update when inside a transaction. Transactions that
	// derive registration flags from the ledger must take this lock
	// before calling SumLedger.
	RegistrationFor(ctx context.Context, studentID, semesterID string) (*model.RegistrationRecord, error)
	SaveRegistration(ctx context.Context, record *model.RegistrationRecord) error

	CreateNotification(ctx context.Context, notification *model.Notification) error

	// Transact runs fn atomically: every write inside either commits as a
	// unit or rolls back as a unit.
	Transact(ctx context.Context, fn func(Store) error) error
}
