// test/mock/finance_store.go
package mock

import (
	"context"
	"sync"

	"github.com/google/uuid"

	aegis_errors "github.com/campusforge/aegis/errors"
	"github.com/campusforge/aegis/finance"
	"github.com/campusforge/aegis/model"
)

// FinanceStore is an in-memory finance.Store with real transaction
// semantics: Transact snapshots state and restores it when the closure
// fails, so rollback behavior is observable in tests.
type FinanceStore struct {
	mu            sync.Mutex
	Payments      map[string]*model.Payment
	Registrations map[string]*model.RegistrationRecord
	Notifications []*model.Notification

	// FailSaveRegistration forces the next registration write to fail,
	// for rollback tests.
	FailSaveRegistration bool
}

func NewFinanceStore() *FinanceStore {
	return &FinanceStore{
		Payments:      make(map[string]*model.Payment),
		Registrations: make(map[string]*model.RegistrationRecord),
	}
}

var _ finance.Store = (*FinanceStore)(nil)

func regKey(studentID, semesterID string) string {
	return studentID + "/" + semesterID
}

func (s *FinanceStore) AddPayment(p model.Payment) {
	s.Payments[p.ID] = &p
}

func (s *FinanceStore) AddRegistration(r model.RegistrationRecord) {
	s.Registrations[regKey(r.StudentID, r.SemesterID)] = &r
}

func (s *FinanceStore) PaymentByID(ctx context.Context, paymentID string) (*model.Payment, error) {
	p, ok := s.Payments[paymentID]
	if !ok {
		return nil, aegis_errors.ErrPaymentNotFound
	}
	copied := *p
	return &copied, nil
}

func (s *FinanceStore) SavePayment(ctx context.Context, payment *model.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	copied := *payment
	s.Payments[payment.ID] = &copied
	return nil
}

func (s *FinanceStore) SumLedger(ctx context.Context, studentID, semesterID string) (finance.LedgerTotals, error) {
	var totals finance.LedgerTotals
	for _, p := range s.Payments {
		if p.StudentID != studentID || p.SemesterID != semesterID {
			continue
		}
		switch p.Status {
		case model.PaymentVerified:
			totals.VerifiedTotal += p.Amount
		case model.PaymentPending:
			totals.PendingTotal += p.Amount
		}
	}
	return totals, nil
}

func (s *FinanceStore) RegistrationFor(ctx context.Context, studentID, semesterID string) (*model.RegistrationRecord, error) {
	r, ok := s.Registrations[regKey(studentID, semesterID)]
	if !ok {
		return nil, aegis_errors.ErrRegistrationNotFound
	}
	copied := *r
	return &copied, nil
}

func (s *FinanceStore) SaveRegistration(ctx context.Context, record *model.RegistrationRecord) error {
	if s.FailSaveRegistration {
		return aegis_errors.ErrDatabaseOperation
	}
	record.Version++
	copied := *record
	s.Registrations[regKey(record.StudentID, record.SemesterID)] = &copied
	return nil
}

func (s *FinanceStore) CreateNotification(ctx context.Context, notification *model.Notification) error {
	copied := *notification
	s.Notifications = append(s.Notifications, &copied)
	return nil
}

func (s *FinanceStore) Transact(ctx context.Context, fn func(finance.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.snapshot()
	if err := fn(s); err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

type financeSnapshot struct {
	payments      map[string]*model.Payment
	registrations map[string]*model.RegistrationRecord
	notifications []*model.Notification
}

func (s *FinanceStore) snapshot() financeSnapshot {
	snap := financeSnapshot{
		payments:      make(map[string]*model.Payment, len(s.Payments)),
		registrations: make(map[string]*model.RegistrationRecord, len(s.Registrations)),
		notifications: append([]*model.Notification(nil), s.Notifications...),
	}
	for k, v := range s.Payments {
		copied := *v
		snap.payments[k] = &copied
	}
	for k, v := range s.Registrations {
		copied := *v
		snap.registrations[k] = &copied
	}
	return snap
}

func (s *FinanceStore) restore(snap financeSnapshot) {
	s.Payments = snap.payments
	s.Registrations = snap.registrations
	s.Notifications = snap.notifications
}
