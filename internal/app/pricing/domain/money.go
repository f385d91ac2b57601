package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
)

// Money represents a monetary value in the base currency with exact rational arithmetic using big.Rat.
// Money is immutable: every operation returns a new instance. Rounding never happens here;
// it is applied once, at display conversion.
type Money struct {
	rat *big.Rat
}

// NewMoney creates a new Money instance from numerator and denominator.
// Example: NewMoney(249900, 100) represents 2499.00
func NewMoney(numerator, denominator int64) (*Money, error) {
	if denominator == 0 {
		return nil, fmt.Errorf("denominator cannot be zero")
	}

	return &Money{rat: big.NewRat(numerator, denominator)}, nil
}

// MustMoney is NewMoney for constants known to be valid.
func MustMoney(numerator, denominator int64) *Money {
	m, err := NewMoney(numerator, denominator)
	if err != nil {
		panic(err)
	}
	return m
}

// NewMoneyFromRat creates a new Money instance from a big.Rat.
func NewMoneyFromRat(rat *big.Rat) *Money {
	if rat == nil {
		return Zero()
	}
	return &Money{rat: new(big.Rat).Set(rat)}
}

// NewMoneyFromFloat converts a float64 amount. Non-finite values are rejected so that
// NaN or Inf can never reach a charge amount.
func NewMoneyFromFloat(f float64) (*Money, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, ErrNonFiniteAmount
	}
	rat := new(big.Rat)
	if rat.SetFloat64(f) == nil {
		return nil, ErrNonFiniteAmount
	}
	return &Money{rat: rat}, nil
}

// ParseMoney parses a decimal ("12.50") or fraction ("25/2") string.
func ParseMoney(s string) (*Money, error) {
	rat, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid money amount %q", s)
	}
	return &Money{rat: rat}, nil
}

// Zero returns a zero amount.
func Zero() *Money {
	return &Money{rat: new(big.Rat)}
}

// Numerator returns the numerator and whether it fits in int64.
func (m *Money) Numerator() (int64, bool) {
	num := m.rat.Num()
	return num.Int64(), num.IsInt64()
}

// Denominator returns the denominator and whether it fits in int64.
func (m *Money) Denominator() (int64, bool) {
	denom := m.rat.Denom()
	return denom.Int64(), denom.IsInt64()
}

// IsSafeForStorage reports whether the amount can be persisted as an int64 numerator/denominator pair.
func (m *Money) IsSafeForStorage() bool {
	_, numOK := m.Numerator()
	_, denomOK := m.Denominator()
	return numOK && denomOK
}

// Rat returns a copy of the underlying rational value.
func (m *Money) Rat() *big.Rat {
	return new(big.Rat).Set(m.rat)
}

// Add adds two Money values and returns a new Money instance.
func (m *Money) Add(other *Money) *Money {
	return &Money{rat: new(big.Rat).Add(m.rat, other.rat)}
}

// Subtract subtracts another Money value from this one and returns a new Money instance.
func (m *Money) Subtract(other *Money) *Money {
	return &Money{rat: new(big.Rat).Sub(m.rat, other.rat)}
}

// MultiplyByRat multiplies this Money value by a rational number and returns a new Money instance.
func (m *Money) MultiplyByRat(rat *big.Rat) *Money {
	return &Money{rat: new(big.Rat).Mul(m.rat, rat)}
}

// MultiplyByInt multiplies this Money value by an integer factor.
func (m *Money) MultiplyByInt(n int64) *Money {
	return m.MultiplyByRat(new(big.Rat).SetInt64(n))
}

// DivideByInt divides this Money value by an integer divisor.
func (m *Money) DivideByInt(n int64) (*Money, error) {
	if n == 0 {
		return nil, fmt.Errorf("cannot divide by zero")
	}
	return &Money{rat: new(big.Rat).Quo(m.rat, new(big.Rat).SetInt64(n))}, nil
}

// Min returns the smaller of the two amounts.
func (m *Money) Min(other *Money) *Money {
	if other.LessThan(m) {
		return other.Copy()
	}
	return m.Copy()
}

// FloorAtZero returns zero for negative amounts and a copy otherwise.
func (m *Money) FloorAtZero() *Money {
	if m.IsNegative() {
		return Zero()
	}
	return m.Copy()
}

// IsZero returns true if the money value is zero.
func (m *Money) IsZero() bool {
	return m.rat.Sign() == 0
}

// IsNegative returns true if the money value is negative.
func (m *Money) IsNegative() bool {
	return m.rat.Sign() < 0
}

// IsPositive returns true if the money value is positive.
func (m *Money) IsPositive() bool {
	return m.rat.Sign() > 0
}

// LessThan returns true if this Money value is less than another.
func (m *Money) LessThan(other *Money) bool {
	return m.rat.Cmp(other.rat) < 0
}

// GreaterThan returns true if this Money value is greater than another.
func (m *Money) GreaterThan(other *Money) bool {
	return m.rat.Cmp(other.rat) > 0
}

// Equals returns true if this Money value equals another.
func (m *Money) Equals(other *Money) bool {
	return m.rat.Cmp(other.rat) == 0
}

// Float64 returns an approximate float64 representation (for display only, not calculations).
func (m *Money) Float64() float64 {
	f, _ := m.rat.Float64()
	return f
}

// String returns a string representation of the money value with two decimals.
func (m *Money) String() string {
	return m.rat.FloatString(2)
}

// Copy creates a deep copy of this Money instance.
func (m *Money) Copy() *Money {
	return &Money{rat: new(big.Rat).Set(m.rat)}
}

// MarshalJSON encodes the exact rational value as a string ("25/2", "12").
func (m *Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.rat.RatString())
}

// UnmarshalJSON decodes a value written by MarshalJSON or a plain decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("money must be a JSON string: %w", err)
	}
	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}
	m.rat = parsed.rat
	return nil
}
