package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/boring-ventures/minka-sub001/internal/domain/ledger"
	"github.com/boring-ventures/minka-sub001/internal/domain/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newCampaign(goal, collected string, donors int) *model.Campaign {
	c := &model.Campaign{
		GoalAmount:      dec(goal),
		CollectedAmount: dec(collected),
		DonorCount:      donors,
	}
	c.PercentageFunded = ledger.Percentage(c.CollectedAmount, c.GoalAmount)
	return c
}

func TestCountsTowardTotal(t *testing.T) {
	counted := map[model.PaymentStatus]bool{
		model.PaymentStatusPending:   false,
		model.PaymentStatusActive:    true,
		model.PaymentStatusCompleted: true,
		model.PaymentStatusFailed:    false,
		model.PaymentStatusRefunded:  false,
		model.PaymentStatusRejected:  false,
	}
	for status, want := range counted {
		assert.Equal(t, want, ledger.CountsTowardTotal(status), status)
	}
}

func TestTransition(t *testing.T) {
	amount := dec("250")

	tests := []struct {
		name       string
		from, to   model.PaymentStatus
		wantAmount decimal.Decimal
		wantDonors int
	}{
		{"same status is a no-op", model.PaymentStatusCompleted, model.PaymentStatusCompleted, decimal.Zero, 0},
		{"pending to completed counts", model.PaymentStatusPending, model.PaymentStatusCompleted, amount, 1},
		{"pending to active counts", model.PaymentStatusPending, model.PaymentStatusActive, amount, 1},
		{"active to completed stays counted once", model.PaymentStatusActive, model.PaymentStatusCompleted, decimal.Zero, 0},
		{"completed to refunded uncounts", model.PaymentStatusCompleted, model.PaymentStatusRefunded, amount.Neg(), -1},
		{"active to rejected uncounts", model.PaymentStatusActive, model.PaymentStatusRejected, amount.Neg(), -1},
		{"pending to failed stays uncounted", model.PaymentStatusPending, model.PaymentStatusFailed, decimal.Zero, 0},
		{"failed to pending stays uncounted", model.PaymentStatusFailed, model.PaymentStatusPending, decimal.Zero, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ledger.Transition(tt.from, tt.to, amount)
			assert.True(t, tt.wantAmount.Equal(d.Amount), "amount: got %s want %s", d.Amount, tt.wantAmount)
			assert.Equal(t, tt.wantDonors, d.Donors)
		})
	}
}

// goal 1000, one donation of 250 entering the counting set.
func TestApply_CompletionCountsOnce(t *testing.T) {
	c := newCampaign("1000", "0", 0)

	ledger.Apply(c, ledger.Transition(model.PaymentStatusPending, model.PaymentStatusCompleted, dec("250")))

	assert.True(t, dec("250").Equal(c.CollectedAmount))
	assert.Equal(t, 1, c.DonorCount)
	assert.True(t, dec("25").Equal(c.PercentageFunded))
}

// A second notification for an already counted donation must not count it again.
func TestApply_RepeatedCompletionIsNoop(t *testing.T) {
	c := newCampaign("1000", "0", 0)

	ledger.Apply(c, ledger.Transition(model.PaymentStatusPending, model.PaymentStatusActive, dec("250")))
	ledger.Apply(c, ledger.Transition(model.PaymentStatusActive, model.PaymentStatusCompleted, dec("250")))
	ledger.Apply(c, ledger.Transition(model.PaymentStatusCompleted, model.PaymentStatusCompleted, dec("250")))

	assert.True(t, dec("250").Equal(c.CollectedAmount))
	assert.Equal(t, 1, c.DonorCount)
}

func TestApply_RefundRemovesDonation(t *testing.T) {
	c := newCampaign("1000", "250", 1)

	ledger.Apply(c, ledger.Transition(model.PaymentStatusCompleted, model.PaymentStatusRefunded, dec("250")))

	assert.True(t, c.CollectedAmount.IsZero())
	assert.Equal(t, 0, c.DonorCount)
	assert.True(t, c.PercentageFunded.IsZero())
}

// Rejection moves the donor count together with the amount.
func TestApply_RejectMovesAmountAndDonors(t *testing.T) {
	c := newCampaign("1000", "400", 4)

	ledger.Apply(c, ledger.Transition(model.PaymentStatusActive, model.PaymentStatusRejected, dec("100")))

	assert.True(t, dec("300").Equal(c.CollectedAmount))
	assert.Equal(t, 3, c.DonorCount)
	assert.True(t, dec("30").Equal(c.PercentageFunded))
}

func TestApply_IncrementThenDecrementRestores(t *testing.T) {
	c := newCampaign("1500", "123.45", 3)
	before := ledger.Snapshot(c)

	ledger.Apply(c, ledger.Transition(model.PaymentStatusPending, model.PaymentStatusActive, dec("76.55")))
	ledger.Apply(c, ledger.Transition(model.PaymentStatusActive, model.PaymentStatusRejected, dec("76.55")))

	after := ledger.Snapshot(c)
	assert.True(t, before.CollectedAmount.Equal(after.CollectedAmount))
	assert.Equal(t, before.DonorCount, after.DonorCount)
	assert.True(t, before.PercentageFunded.Equal(after.PercentageFunded))
}

func TestApply_ClampsAtZero(t *testing.T) {
	c := newCampaign("1000", "50", 0)

	ledger.Apply(c, ledger.Transition(model.PaymentStatusCompleted, model.PaymentStatusRefunded, dec("80")))

	assert.True(t, c.CollectedAmount.IsZero())
	assert.Equal(t, 0, c.DonorCount)
	assert.False(t, c.PercentageFunded.IsNegative())
}

func TestApply_NDonations(t *testing.T) {
	c := newCampaign("1000", "0", 0)
	amounts := []string{"10", "20.50", "30.25", "100"}

	for _, a := range amounts {
		ledger.Apply(c, ledger.Transition(model.PaymentStatusPending, model.PaymentStatusActive, dec(a)))
	}

	assert.Equal(t, len(amounts), c.DonorCount)
	assert.True(t, dec("160.75").Equal(c.CollectedAmount))
	assert.True(t, dec("16.08").Equal(c.PercentageFunded))
}

func TestPercentage(t *testing.T) {
	assert.True(t, decimal.Zero.Equal(ledger.Percentage(dec("100"), decimal.Zero)))
	assert.True(t, decimal.Zero.Equal(ledger.Percentage(dec("-5"), dec("100"))))
	assert.True(t, dec("33.33").Equal(ledger.Percentage(dec("1"), dec("3"))))
	assert.True(t, dec("150").Equal(ledger.Percentage(dec("1500"), dec("1000"))))
}

func TestTotals(t *testing.T) {
	donations := []model.Donation{
		{Amount: dec("100"), PaymentStatus: model.PaymentStatusActive},
		{Amount: dec("50"), PaymentStatus: model.PaymentStatusCompleted},
		{Amount: dec("75"), PaymentStatus: model.PaymentStatusPending},
		{Amount: dec("25"), PaymentStatus: model.PaymentStatusRefunded},
		{Amount: dec("10"), PaymentStatus: model.PaymentStatusRejected},
	}

	agg := ledger.Totals(dec("300"), donations)

	assert.True(t, dec("150").Equal(agg.CollectedAmount))
	assert.Equal(t, 2, agg.DonorCount)
	assert.True(t, dec("50").Equal(agg.PercentageFunded))
}

func TestValidAmount(t *testing.T) {
	tests := []struct {
		amount string
		want   bool
	}{
		{"0.01", true},
		{"250", true},
		{"12345.50", true},
		{"9999999999999.99", true},
		{"0", false},
		{"-5", false},
		{"0.004", false},
		{"10.005", false},
		{"10000000000000", false},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, ledger.ValidAmount(dec(tt.amount)))
		})
	}
}
