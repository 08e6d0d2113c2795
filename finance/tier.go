// finance/tier.go
package finance

import (
	"context"

	"github.com/campusforge/aegis/model"
)

// Tier thresholds as whole percentages of the semester fee, inclusive at
// the lower bound of each tier.
const (
	basicThresholdPct   = 30
	midtermThresholdPct = 65
	finalThresholdPct   = 100
)

// PaymentAggregator reduces a student's semester ledger into verified and
// pending totals.
type PaymentAggregator struct {
	store Store
}

func NewPaymentAggregator(store Store) *PaymentAggregator {
	return &PaymentAggregator{store: store}
}

// Aggregate sums verified and pending rows for one student/semester.
// Rejected rows never count, in either bucket.
func (pa *PaymentAggregator) Aggregate(ctx context.Context, studentID, semesterID string) (LedgerTotals, error) {
	return pa.store.SumLedger(ctx, studentID, semesterID)
}

// ComputeTier derives the access tier for a verified/pending total against
// the per-semester fee. Pure function; callers must recompute on every
// read so a freshly rejected payment surfaces immediately.
//
// Overpayment is reported but not applied anywhere else; it is carried
// conceptually as a next-period advance.
func ComputeTier(totals LedgerTotals, semesterFee int64) model.TierStatus {
	status := model.TierStatus{
		Tier:           model.TierLocked,
		VerifiedTotal:  totals.VerifiedTotal,
		PendingTotal:   totals.PendingTotal,
		RequiredAmount: semesterFee,
	}

	if semesterFee <= 0 {
		status.TierName = status.Tier.String()
		return status
	}

	effectivePaid := totals.VerifiedTotal
	if effectivePaid > semesterFee {
		effectivePaid = semesterFee
	}
	status.EffectivePaid = effectivePaid

	if overpayment := totals.VerifiedTotal - semesterFee; overpayment > 0 {
		status.Overpayment = overpayment
	}

	status.Percentage = 100 * effectivePaid / semesterFee

	// Tier boundaries compare in fee-scaled units rather than on the
	// floored percentage, so a fee that does not divide evenly cannot
	// shift a boundary.
	scaled := 100 * effectivePaid
	switch {
	case scaled >= finalThresholdPct*semesterFee:
		status.Tier = model.TierFinal
	case scaled >= midtermThresholdPct*semesterFee:
		status.Tier = model.TierMidterm
	case scaled >= basicThresholdPct*semesterFee:
		status.Tier = model.TierBasic
	default:
		status.Tier = model.TierLocked
	}
	status.TierName = status.Tier.String()

	// Pending submissions reserve against the remaining balance so a
	// student is not prompted to pay twice while verification is in
	// flight.
	if remaining := semesterFee - effectivePaid - totals.PendingTotal; remaining > 0 {
		status.RemainingBalance = remaining
	}

	status.CanRegister = status.Tier >= model.TierBasic
	return status
}
