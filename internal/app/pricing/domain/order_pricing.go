package domain

import (
	"errors"
	"math/big"
	"time"
)

// CatalogSnapshot is an immutable view of everything a package is priced from. It is
// loaded once per computation; the engine never reads configuration on its own.
type CatalogSnapshot struct {
	PackageID string                `json:"package_id"`
	Pricing   PriceConfiguration    `json:"pricing"`
	Durations []DurationDiscountRow `json:"durations"`
	Plans     []SubscriptionPlan    `json:"plans"`
	AddOns    []AddOnItem           `json:"add_ons"`
}

// DisplayConverter converts a base-currency amount to the display currency. It is the only
// component allowed to round.
type DisplayConverter interface {
	ToDisplay(amountBase *big.Rat) *big.Rat
	Currency() string
}

// OrderPricingInput is one snapshot of every upstream input.
type OrderPricingInput struct {
	Snapshot   *CatalogSnapshot
	Builtins   []AddOnItem
	Months     int
	Selections AddOnSelections
	PromoCode  string
	Promos     PromoLookup
	Now        time.Time
}

// OrderPricingResult is the derived price of an order. When Available is false every
// amount is nil; callers must render a placeholder and disable payment.
type OrderPricingResult struct {
	PackageID         string
	Months            int
	Available         bool
	UnavailableReason string
	Mode              PricingMode
	DiscountPercent   Percent
	SubtotalBase      *Money
	AddOnsBase        *Money
	AddOnLines        []AddOnLine
	PreDiscountBase   *Money
	DiscountApplied   *Money
	TotalBase         *Money
	TotalDisplay      *big.Rat
	DisplayCurrency   string
	Promo             *PromoResult
}

// Engine is the consolidated order pricing pipeline:
// subtotal (mode selection) + add-ons -> pre-discount, minus clamped promo -> total,
// converted once for display.
type Engine struct {
	calculator *PricingCalculator
	converter  DisplayConverter
}

// NewEngine creates an Engine. The converter carries the injected exchange rate.
func NewEngine(calculator *PricingCalculator, converter DisplayConverter) *Engine {
	if calculator == nil {
		calculator = NewPricingCalculator()
	}
	return &Engine{calculator: calculator, converter: converter}
}

// Calculator exposes the underlying calculator.
func (e *Engine) Calculator() *PricingCalculator {
	return e.calculator
}

// Price runs the full pipeline. It never returns an error: every failure is represented
// in the result as Available=false.
func (e *Engine) Price(in OrderPricingInput) *OrderPricingResult {
	result := &OrderPricingResult{
		Months:          in.Months,
		DiscountPercent: NewPercent(nil),
	}
	if e.converter != nil {
		result.DisplayCurrency = e.converter.Currency()
	}

	if in.Snapshot == nil {
		return e.unavailable(result, in, ErrConfigurationUnavailable)
	}
	result.PackageID = in.Snapshot.PackageID

	subtotal, err := e.calculator.ResolveSubtotal(SubtotalInput{
		Config:    &in.Snapshot.Pricing,
		Discounts: NewDiscountTable(in.Snapshot.Durations),
		Plans:     in.Snapshot.Plans,
		Months:    in.Months,
	})
	if err != nil {
		return e.unavailable(result, in, err)
	}

	catalog := MergeCatalog(in.Snapshot.AddOns, in.Builtins)
	addOns, err := SumAddOns(catalog, in.Selections)
	if err != nil {
		return e.unavailable(result, in, err)
	}

	preDiscount := subtotal.Amount.Add(addOns.Total)

	result.Available = true
	result.Mode = subtotal.Mode
	result.DiscountPercent = subtotal.DiscountPercent
	result.SubtotalBase = subtotal.Amount
	result.AddOnsBase = addOns.Total
	result.AddOnLines = addOns.Lines
	result.PreDiscountBase = preDiscount
	result.DiscountApplied = Zero()
	result.TotalBase = preDiscount.FloorAtZero()

	if NormalizeCode(in.PromoCode) != "" {
		promo := ApplyPromo(in.Promos, in.PromoCode, preDiscount, in.Now)
		result.Promo = promo
		if promo.OK {
			result.DiscountApplied = promo.EffectiveDiscount
			result.TotalBase = promo.FinalTotal
		}
	}

	if e.converter != nil {
		result.TotalDisplay = e.converter.ToDisplay(result.TotalBase.Rat())
	}
	return result
}

func (e *Engine) unavailable(result *OrderPricingResult, in OrderPricingInput, err error) *OrderPricingResult {
	result.Available = false
	result.UnavailableReason = unavailableReason(err)
	if NormalizeCode(in.PromoCode) != "" {
		result.Promo = ApplyPromo(in.Promos, in.PromoCode, nil, in.Now)
	}
	return result
}

func unavailableReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidDuration):
		return "invalid_duration"
	case errors.Is(err, ErrConfigurationUnavailable):
		return "configuration_unavailable"
	case errors.Is(err, ErrNegativeAmount), errors.Is(err, ErrNonFiniteAmount):
		return "invalid_amount"
	default:
		return "invalid_catalog"
	}
}
