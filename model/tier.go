// model/tier.go
package model

// AccessTier is the discrete academic-access level derived from the share
// of the semester fee covered by verified payments. It is never persisted;
// every read recomputes it from the ledger.
type AccessTier int

const (
	TierLocked AccessTier = iota
	TierBasic
	TierMidterm
	TierFinal
)

func (t AccessTier) String() string {
	switch t {
	case TierLocked:
		return "locked"
	case TierBasic:
		return "basic"
	case TierMidterm:
		return "midterm"
	case TierFinal:
		return "final"
	default:
		return "locked"
	}
}

// TierStatus is the full derived financial standing for one
// student/semester pair. Amounts are in currency minor units.
type TierStatus struct {
	Tier             AccessTier `json:"-"`
	TierName         string     `json:"tier"`
	Percentage       int64      `json:"percentage"`
	EffectivePaid    int64      `json:"effective_paid"`
	Overpayment      int64      `json:"overpayment"`
	VerifiedTotal    int64      `json:"verified_total"`
	PendingTotal     int64      `json:"pending_total"`
	RemainingBalance int64      `json:"remaining_balance"`
	RequiredAmount   int64      `json:"required_amount"`
	CanRegister      bool       `json:"can_register"`
}
