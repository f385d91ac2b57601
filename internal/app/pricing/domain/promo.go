package domain

import (
	"math/big"
	"strings"
	"time"
)

// PromoRuleType is the kind of discount a promo code grants.
type PromoRuleType string

const (
	PromoFlat    PromoRuleType = "flat"
	PromoPercent PromoRuleType = "percent"
)

// PromoRule computes the raw discount for a subtotal. Flat values are in the base currency.
type PromoRule struct {
	Type  PromoRuleType `json:"type"`
	Value *big.Rat      `json:"value"`
}

// Validate checks the rule shape.
func (r PromoRule) Validate() error {
	if r.Type != PromoFlat && r.Type != PromoPercent {
		return ErrInvalidPromoRule
	}
	if r.Value == nil || r.Value.Sign() < 0 {
		return ErrInvalidPromoRule
	}
	return nil
}

// DiscountFor returns the unclamped discount. Invalid rules yield zero.
func (r PromoRule) DiscountFor(subtotal *Money) *Money {
	if r.Validate() != nil {
		return Zero()
	}
	switch r.Type {
	case PromoPercent:
		return NewPercent(r.Value).CalculateDiscountAmount(subtotal)
	default:
		return NewMoneyFromRat(r.Value)
	}
}

// ValidityWindow is an optional inclusive time range. A zero bound is open.
type ValidityWindow struct {
	StartsAt time.Time `json:"starts_at,omitempty"`
	EndsAt   time.Time `json:"ends_at,omitempty"`
}

// IsValidAt checks if t falls inside the window. Both ends are inclusive.
func (w ValidityWindow) IsValidAt(t time.Time) bool {
	if !w.StartsAt.IsZero() && t.Before(w.StartsAt) {
		return false
	}
	if !w.EndsAt.IsZero() && t.After(w.EndsAt) {
		return false
	}
	return true
}

// PromoCode is a stored promo record.
type PromoCode struct {
	ID          string         `json:"id"`
	Code        string         `json:"code"`
	Name        string         `json:"name"`
	IsActive    bool           `json:"is_active"`
	Rule        PromoRule      `json:"rule"`
	MinSubtotal *Money         `json:"min_subtotal,omitempty"`
	Window      ValidityWindow `json:"window"`
}

// PromoReason explains why a promo was not applied.
type PromoReason string

const (
	PromoReasonEmpty        PromoReason = "Empty"
	PromoReasonNotFound     PromoReason = "NotFound"
	PromoReasonUnavailable  PromoReason = "Unavailable"
	PromoReasonExpired      PromoReason = "Expired"
	PromoReasonBelowMinimum PromoReason = "BelowMinimum"
)

// PromoResult is the outcome of applying a promo code to a subtotal.
type PromoResult struct {
	OK                bool        `json:"ok"`
	Code              string      `json:"code"`
	PromoID           string      `json:"promo_id,omitempty"`
	Name              string      `json:"name,omitempty"`
	DiscountBase      *Money      `json:"discount_base,omitempty"`
	EffectiveDiscount *Money      `json:"effective_discount,omitempty"`
	FinalTotal        *Money      `json:"final_total,omitempty"`
	Reason            PromoReason `json:"reason,omitempty"`
}

// PromoLookup finds an active promo by normalized code.
type PromoLookup interface {
	FindActive(normalizedCode string) (*PromoCode, bool)
}

// PromoCatalog is an in-memory PromoLookup keyed by normalized code.
type PromoCatalog map[string]PromoCode

// NewPromoCatalog indexes active codes. Later entries with the same normalized code win.
func NewPromoCatalog(codes ...PromoCode) PromoCatalog {
	c := make(PromoCatalog, len(codes))
	for _, p := range codes {
		if !p.IsActive {
			continue
		}
		c[NormalizeCode(p.Code)] = p
	}
	return c
}

// FindActive implements PromoLookup.
func (c PromoCatalog) FindActive(normalizedCode string) (*PromoCode, bool) {
	p, ok := c[normalizedCode]
	if !ok {
		return nil, false
	}
	return &p, true
}

// NormalizeCode trims and upper-cases a code so comparisons are case-insensitive.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ApplyPromo validates a code against a pre-discount subtotal and clamps the discount so
// the final total never goes below zero. A nil subtotal means the price is not computable
// yet; the promo is then rejected as Unavailable instead of being guessed.
//
// ApplyPromo has no side effects: the same arguments always produce the same result, and
// a changed subtotal simply requires calling it again.
func ApplyPromo(lookup PromoLookup, code string, subtotal *Money, now time.Time) *PromoResult {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return &PromoResult{Code: normalized, Reason: PromoReasonEmpty}
	}
	if subtotal == nil {
		return &PromoResult{Code: normalized, Reason: PromoReasonUnavailable}
	}

	var promo *PromoCode
	if lookup != nil {
		promo, _ = lookup.FindActive(normalized)
	}
	if promo == nil || !promo.IsActive {
		return &PromoResult{Code: normalized, Reason: PromoReasonNotFound}
	}

	rejected := &PromoResult{Code: normalized, PromoID: promo.ID, Name: promo.Name}
	if !promo.Window.IsValidAt(now) {
		rejected.Reason = PromoReasonExpired
		return rejected
	}
	if promo.MinSubtotal != nil && subtotal.LessThan(promo.MinSubtotal) {
		rejected.Reason = PromoReasonBelowMinimum
		return rejected
	}

	discount := promo.Rule.DiscountFor(subtotal)
	if !discount.IsPositive() {
		discount = Zero()
	}
	base := subtotal.FloorAtZero()
	effective := discount.Min(base)

	return &PromoResult{
		OK:                true,
		Code:              normalized,
		PromoID:           promo.ID,
		Name:              promo.Name,
		DiscountBase:      discount,
		EffectiveDiscount: effective,
		FinalTotal:        base.Subtract(effective),
	}
}
