// finance/status.go
package finance

import (
	"context"

	"github.com/campusforge/aegis/model"
)

// AccessStatus is the read-model consumed by document-gating checks.
type AccessStatus struct {
	model.TierStatus
	IsRegistered bool `json:"is_registered"`
}

// AccessStatusService answers "what may this student access right now".
// Every call recomputes the tier from the ledger; nothing here is cached,
// so a rejection that just committed is visible to the next read.
type AccessStatusService struct {
	store       Store
	semesterFee int64
}

func NewAccessStatusService(store Store, semesterFee int64) *AccessStatusService {
	return &AccessStatusService{
		store:       store,
		semesterFee: semesterFee,
	}
}

// GetAccessStatus reads the registration record and the ledger in one
// transaction, record lock first, same ordering as the transition path.
// The returned tier and registration flag therefore come from the same
// committed state; a transition cannot commit between the two reads.
func (s *AccessStatusService) GetAccessStatus(ctx context.Context, studentID, semesterID string) (*AccessStatus, error) {
	var status *AccessStatus
	err := s.store.Transact(ctx, func(tx Store) error {
		record, err := tx.RegistrationFor(ctx, studentID, semesterID)
		if err != nil {
			return err
		}

		totals, err := NewPaymentAggregator(tx).Aggregate(ctx, studentID, semesterID)
		if err != nil {
			return err
		}

		status = &AccessStatus{
			TierStatus:   ComputeTier(totals, s.semesterFee),
			IsRegistered: record.IsRegistered,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}
