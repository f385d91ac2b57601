package domain

import (
	"fmt"
	"math/big"
)

// PricingMode identifies which pricing rule produced a subtotal.
type PricingMode string

const (
	// ModeDurationTable prices every duration from the monthly unit price and the discount table.
	ModeDurationTable PricingMode = "duration_table"
	// ModePlanOverride uses the legacy flat price of the selected plan.
	ModePlanOverride PricingMode = "plan_override"
	// ModeLinear multiplies the annual base price by the number of years.
	ModeLinear PricingMode = "linear"
)

// PricingCalculator is the domain service for subscription price calculations.
//
// It is the only place the pricing formulas live. Every surface (preview, plan listing,
// quote locking, exports) goes through it, so the results cannot drift apart.
type PricingCalculator struct{}

// NewPricingCalculator creates a new PricingCalculator instance.
func NewPricingCalculator() *PricingCalculator {
	return &PricingCalculator{}
}

// ComputeDiscountedTotal returns monthlyPrice * months * (1 - percent/100).
// The percentage is clamped to [0,100]. Nothing is rounded here.
func (pc *PricingCalculator) ComputeDiscountedTotal(monthlyPrice *Money, months int, percent *big.Rat) (*Money, error) {
	if monthlyPrice == nil {
		return nil, ErrConfigurationUnavailable
	}
	if monthlyPrice.IsNegative() {
		return nil, ErrNegativeAmount
	}
	if months <= 0 {
		return nil, ErrInvalidDuration
	}

	raw := monthlyPrice.MultiplyByInt(int64(months))
	return NewPercent(percent).Apply(raw), nil
}

// SubtotalInput carries everything needed to price the subscription part of an order.
type SubtotalInput struct {
	Config    *PriceConfiguration
	Discounts *DiscountTable
	Plans     []SubscriptionPlan
	Months    int
}

// Subtotal is the pre-add-on subscription price and the rule that produced it.
type Subtotal struct {
	Mode            PricingMode
	Months          int
	DiscountPercent Percent
	Amount          *Money
}

// ResolveSubtotal selects exactly one pricing mode, in strict order:
//  1. duration table, when the package has any active discount row (missing durations get 0%)
//  2. plan override, when the table is empty and the selected plan carries a flat price
//  3. linear, annual base price times years
//
// Base prices must be sound before any mode is considered: a missing price makes every
// duration unavailable, including durations that have an override.
func (pc *PricingCalculator) ResolveSubtotal(in SubtotalInput) (*Subtotal, error) {
	if in.Months <= 0 {
		return nil, ErrInvalidDuration
	}

	base, err := in.Config.ResolveBaseAnnual()
	if err != nil {
		return nil, err
	}

	if in.Discounts.HasAnyActiveRow() {
		percent := in.Discounts.Lookup(in.Months)
		amount, err := pc.ComputeDiscountedTotal(base.Monthly(), in.Months, percent.Rat())
		if err != nil {
			return nil, err
		}
		return &Subtotal{Mode: ModeDurationTable, Months: in.Months, DiscountPercent: percent, Amount: amount}, nil
	}

	if override := findOverride(in.Plans, in.Months); override != nil {
		if override.IsNegative() {
			return nil, fmt.Errorf("%w: negative plan override", ErrConfigurationUnavailable)
		}
		return &Subtotal{Mode: ModePlanOverride, Months: in.Months, DiscountPercent: NewPercent(nil), Amount: override}, nil
	}

	amount, err := pc.ComputeDiscountedTotal(base.Monthly(), in.Months, nil)
	if err != nil {
		return nil, err
	}
	return &Subtotal{Mode: ModeLinear, Months: in.Months, DiscountPercent: NewPercent(nil), Amount: amount}, nil
}
