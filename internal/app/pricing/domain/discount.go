package domain

import (
	"math/big"
)

var (
	ratZero    = new(big.Rat)
	ratHundred = big.NewRat(100, 1)
)

// Percent is a percentage discount clamped to the range 0..100.
type Percent struct {
	value              *big.Rat
	discountMultiplier *big.Rat // value/100, cached
}

// NewPercent creates a clamped Percent. A nil value is treated as 0%.
func NewPercent(value *big.Rat) Percent {
	v := new(big.Rat)
	if value != nil {
		v.Set(value)
	}
	if v.Cmp(ratZero) < 0 {
		v.SetInt64(0)
	}
	if v.Cmp(ratHundred) > 0 {
		v.SetInt64(100)
	}
	return Percent{
		value:              v,
		discountMultiplier: new(big.Rat).Quo(v, ratHundred),
	}
}

// PercentFromInt is a convenience constructor for whole percentages.
func PercentFromInt(p int64) Percent {
	return NewPercent(big.NewRat(p, 1))
}

// Rat returns a copy of the percentage value (e.g. 20 for 20%).
func (p Percent) Rat() *big.Rat {
	if p.value == nil {
		return new(big.Rat)
	}
	return new(big.Rat).Set(p.value)
}

// Multiplier returns a copy of value/100.
func (p Percent) Multiplier() *big.Rat {
	if p.discountMultiplier == nil {
		return new(big.Rat)
	}
	return new(big.Rat).Set(p.discountMultiplier)
}

// IsZero reports whether the percentage is 0.
func (p Percent) IsZero() bool {
	return p.value == nil || p.value.Sign() == 0
}

// String renders the percentage with up to two decimals.
func (p Percent) String() string {
	return p.Rat().FloatString(2)
}

// Apply applies the discount to a price and returns the discounted price.
// Formula: discountedPrice = price - (price * percentage / 100)
func (p Percent) Apply(price *Money) *Money {
	return price.Subtract(p.CalculateDiscountAmount(price))
}

// CalculateDiscountAmount calculates the discount amount (not the final price).
func (p Percent) CalculateDiscountAmount(price *Money) *Money {
	return price.MultiplyByRat(p.Multiplier())
}
