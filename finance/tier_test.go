// finance/tier_test.go
package finance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusforge/aegis/finance"
	"github.com/campusforge/aegis/model"
)

const fee = int64(100000)

func TestComputeTierThresholds(t *testing.T) {
	tests := []struct {
		name     string
		verified int64
		want     model.AccessTier
		wantPct  int64
	}{
		{"NothingPaidIsLocked", 0, model.TierLocked, 0},
		{"JustUnderBasicIsLocked", 29999, model.TierLocked, 29},
		{"BasicBoundaryInclusive", 30000, model.TierBasic, 30},
		{"JustUnderMidtermIsBasic", 64999, model.TierBasic, 64},
		{"MidtermBoundaryInclusive", 65000, model.TierMidterm, 65},
		{"JustUnderFinalIsMidterm", 99999, model.TierMidterm, 99},
		{"FullFeeIsFinal", 100000, model.TierFinal, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := finance.ComputeTier(finance.LedgerTotals{VerifiedTotal: tt.verified}, fee)
			assert.Equal(t, tt.want, status.Tier)
			assert.Equal(t, tt.want.String(), status.TierName)
			assert.Equal(t, tt.wantPct, status.Percentage)
		})
	}
}

func TestComputeTierOverpayment(t *testing.T) {
	status := finance.ComputeTier(finance.LedgerTotals{VerifiedTotal: 150000}, fee)

	assert.Equal(t, model.TierFinal, status.Tier)
	assert.Equal(t, int64(100000), status.EffectivePaid)
	assert.Equal(t, int64(50000), status.Overpayment)
	assert.Equal(t, int64(100), status.Percentage)
	assert.Equal(t, int64(0), status.RemainingBalance)
}

func TestComputeTierRemainingBalance(t *testing.T) {
	t.Run("PendingReservesAgainstBalance", func(t *testing.T) {
		status := finance.ComputeTier(finance.LedgerTotals{VerifiedTotal: 30000, PendingTotal: 50000}, fee)
		assert.Equal(t, int64(20000), status.RemainingBalance)
	})

	t.Run("PendingCoveringTheRestLeavesZero", func(t *testing.T) {
		status := finance.ComputeTier(finance.LedgerTotals{VerifiedTotal: 30000, PendingTotal: 90000}, fee)
		assert.Equal(t, int64(0), status.RemainingBalance)
	})

	t.Run("PendingAloneDoesNotRaiseTier", func(t *testing.T) {
		status := finance.ComputeTier(finance.LedgerTotals{VerifiedTotal: 0, PendingTotal: 100000}, fee)
		assert.Equal(t, model.TierLocked, status.Tier)
		assert.False(t, status.CanRegister)
	})
}

func TestComputeTierRegistrationEligibility(t *testing.T) {
	assert.False(t, finance.ComputeTier(finance.LedgerTotals{VerifiedTotal: 29999}, fee).CanRegister)
	assert.True(t, finance.ComputeTier(finance.LedgerTotals{VerifiedTotal: 30000}, fee).CanRegister)
	assert.True(t, finance.ComputeTier(finance.LedgerTotals{VerifiedTotal: 150000}, fee).CanRegister)
}

func TestComputeTierUnevenFee(t *testing.T) {
	// A fee that does not divide into whole-percent slices must not
	// shift the boundaries.
	oddFee := int64(99999)

	under := finance.ComputeTier(finance.LedgerTotals{VerifiedTotal: 29999}, oddFee)
	assert.Equal(t, model.TierLocked, under.Tier)

	// 30% of 99999 is 29999.7, so 30000 clears the boundary.
	over := finance.ComputeTier(finance.LedgerTotals{VerifiedTotal: 30000}, oddFee)
	assert.Equal(t, model.TierBasic, over.Tier)
}

func TestComputeTierDegenerateFee(t *testing.T) {
	status := finance.ComputeTier(finance.LedgerTotals{VerifiedTotal: 50000}, 0)
	assert.Equal(t, model.TierLocked, status.Tier)
	assert.Equal(t, int64(0), status.Percentage)
	assert.False(t, status.CanRegister)
}
