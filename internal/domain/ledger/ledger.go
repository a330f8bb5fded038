// Package ledger keeps a campaign's aggregate fields in step with the
// payment status of its donations.
//
// A donation contributes to its campaign iff its status is in the
// counting set {active, completed}. Every status change, whatever its
// source, is turned into a Delta by Transition and applied with Apply.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/boring-ventures/minka-sub001/internal/domain/model"
)

// AmountScale is the number of decimal places stored for money
const AmountScale = 2

var (
	hundred = decimal.NewFromInt(100)
	// maxAmount is the largest value a decimal(15,2) column holds
	maxAmount = decimal.RequireFromString("9999999999999.99")
)

// ValidAmount reports whether amount is positive, has at most AmountScale
// decimal places and fits the amount columns.
func ValidAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() &&
		amount.Equal(amount.Round(AmountScale)) &&
		amount.LessThanOrEqual(maxAmount)
}

// Delta is the change a status transition makes to a campaign aggregate.
type Delta struct {
	Amount decimal.Decimal
	Donors int
}

// IsZero reports whether applying d leaves the aggregate unchanged.
func (d Delta) IsZero() bool {
	return d.Amount.IsZero() && d.Donors == 0
}

// Aggregate is the derived state of a campaign.
type Aggregate struct {
	CollectedAmount  decimal.Decimal `json:"collected_amount"`
	DonorCount       int             `json:"donor_count"`
	PercentageFunded decimal.Decimal `json:"percentage_funded"`
}

// CountsTowardTotal reports whether a donation in status s is part of the
// campaign aggregate.
func CountsTowardTotal(s model.PaymentStatus) bool {
	return s == model.PaymentStatusActive || s == model.PaymentStatusCompleted
}

// Transition returns the aggregate change for a donation of amount moving
// from one status to another.
func Transition(from, to model.PaymentStatus, amount decimal.Decimal) Delta {
	if from == to {
		return Delta{}
	}
	wasCounted, isCounted := CountsTowardTotal(from), CountsTowardTotal(to)
	switch {
	case !wasCounted && isCounted:
		return Delta{Amount: amount, Donors: 1}
	case wasCounted && !isCounted:
		return Delta{Amount: amount.Neg(), Donors: -1}
	default:
		return Delta{}
	}
}

// Apply adds d to the campaign aggregate, clamping at zero, and recomputes
// PercentageFunded.
func Apply(c *model.Campaign, d Delta) {
	c.CollectedAmount = c.CollectedAmount.Add(d.Amount)
	if c.CollectedAmount.IsNegative() {
		c.CollectedAmount = decimal.Zero
	}
	c.DonorCount += d.Donors
	if c.DonorCount < 0 {
		c.DonorCount = 0
	}
	c.PercentageFunded = Percentage(c.CollectedAmount, c.GoalAmount)
}

// Set overwrites the campaign aggregate.
func Set(c *model.Campaign, a Aggregate) {
	c.CollectedAmount = a.CollectedAmount
	c.DonorCount = a.DonorCount
	c.PercentageFunded = a.PercentageFunded
}

// Snapshot reads the current aggregate off a campaign.
func Snapshot(c *model.Campaign) Aggregate {
	return Aggregate{
		CollectedAmount:  c.CollectedAmount,
		DonorCount:       c.DonorCount,
		PercentageFunded: c.PercentageFunded,
	}
}

// Percentage is collected/goal*100 rounded to two decimals. It is zero
// for a non-positive goal and never negative. It is not capped at 100.
func Percentage(collected, goal decimal.Decimal) decimal.Decimal {
	if !goal.IsPositive() || !collected.IsPositive() {
		return decimal.Zero
	}
	return collected.Mul(hundred).Div(goal).Round(2)
}

// Totals derives the aggregate of a campaign from its donations.
func Totals(goal decimal.Decimal, donations []model.Donation) Aggregate {
	var agg Aggregate
	agg.CollectedAmount = decimal.Zero
	for _, d := range donations {
		if !CountsTowardTotal(d.PaymentStatus) {
			continue
		}
		agg.CollectedAmount = agg.CollectedAmount.Add(d.Amount)
		agg.DonorCount++
	}
	agg.PercentageFunded = Percentage(agg.CollectedAmount, goal)
	return agg
}
