package pricing

import (
	"github.com/shopspring/decimal"

	gatewaydomain "github.com/light-bringer/checkout-pricing-service/internal/app/gateway/domain"
)

// PriceRequest describes an order. It is used by PreviewPrice and LockQuote.
type PriceRequest struct {
	PackageID string                     `json:"package_id"`
	Years     int32                      `json:"years,omitempty"`
	Months    int32                      `json:"months,omitempty"`
	AddOns    map[string]decimal.Decimal `json:"add_ons,omitempty"`
	PromoCode string                     `json:"promo_code,omitempty"`
}

// AddOnLine is one priced add-on.
type AddOnLine struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Kind      string `json:"kind"`
	Quantity  string `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Amount    string `json:"amount"`
}

// Promo is the outcome of a promo code.
type Promo struct {
	OK                bool   `json:"ok"`
	Code              string `json:"code"`
	Name              string `json:"name,omitempty"`
	Reason            string `json:"reason,omitempty"`
	DiscountBase      string `json:"discount_base,omitempty"`
	EffectiveDiscount string `json:"effective_discount,omitempty"`
	FinalTotal        string `json:"final_total,omitempty"`
}

// PriceReply is an order price. Base amounts are exact rationals ("4125/4"); amounts are
// empty when the price is unavailable.
type PriceReply struct {
	PackageID         string       `json:"package_id"`
	Months            int32        `json:"months"`
	Available         bool         `json:"available"`
	UnavailableReason string       `json:"unavailable_reason,omitempty"`
	Mode              string       `json:"mode,omitempty"`
	DiscountPercent   string       `json:"discount_percent"`
	SubtotalBase      string       `json:"subtotal_base,omitempty"`
	AddOnsBase        string       `json:"add_ons_base,omitempty"`
	AddOnLines        []*AddOnLine `json:"add_on_lines,omitempty"`
	DiscountApplied   string       `json:"discount_applied,omitempty"`
	TotalBase         string       `json:"total_base,omitempty"`
	TotalDisplay      string       `json:"total_display,omitempty"`
	DisplayCurrency   string       `json:"display_currency"`
	Promo             *Promo       `json:"promo,omitempty"`
}

// ValidatePromoRequest checks a code against an order.
type ValidatePromoRequest struct {
	Code      string                     `json:"code"`
	PackageID string                     `json:"package_id"`
	Years     int32                      `json:"years,omitempty"`
	Months    int32                      `json:"months,omitempty"`
	AddOns    map[string]decimal.Decimal `json:"add_ons,omitempty"`
}

// ValidatePromoReply carries the promo outcome and, when priced, the order.
type ValidatePromoReply struct {
	Promo *Promo      `json:"promo"`
	Price *PriceReply `json:"price,omitempty"`
}

// ListPlanOptionsRequest selects a package.
type ListPlanOptionsRequest struct {
	PackageID string `json:"package_id"`
}

// PlanOption is one subscription length with its price.
type PlanOption struct {
	Years           int32  `json:"years"`
	Label           string `json:"label"`
	Months          int32  `json:"months"`
	Mode            string `json:"mode,omitempty"`
	DiscountPercent string `json:"discount_percent"`
	Available       bool   `json:"available"`
	TotalBase       string `json:"total_base,omitempty"`
	TotalDisplay    string `json:"total_display,omitempty"`
	DisplayCurrency string `json:"display_currency"`
}

// ListPlanOptionsReply lists plan options in display order.
type ListPlanOptionsReply struct {
	Plans []*PlanOption `json:"plans"`
}

// Quote is a locked or consumed quote.
type Quote struct {
	QuoteID         string                     `json:"quote_id"`
	PackageID       string                     `json:"package_id"`
	Months          int32                      `json:"months"`
	AddOns          map[string]decimal.Decimal `json:"add_ons,omitempty"`
	PromoCode       string                     `json:"promo_code,omitempty"`
	Mode            string                     `json:"mode"`
	DiscountPercent string                     `json:"discount_percent"`
	TotalBase       string                     `json:"total_base"`
	TotalDisplay    string                     `json:"total_display"`
	DisplayCurrency string                     `json:"display_currency"`
	Status          string                     `json:"status"`
	PaymentRef      string                     `json:"payment_ref,omitempty"`
	Version         int64                      `json:"version"`
	CreatedAt       string                     `json:"created_at"`
	ExpiresAt       string                     `json:"expires_at"`
	ConsumedAt      string                     `json:"consumed_at,omitempty"`
}

// QuoteReply wraps a quote.
type QuoteReply struct {
	Quote *Quote `json:"quote"`
}

// GetQuoteRequest identifies a quote.
type GetQuoteRequest struct {
	QuoteID string `json:"quote_id"`
}

// ConsumeQuoteRequest marks a quote as charged.
type ConsumeQuoteRequest struct {
	QuoteID    string `json:"quote_id"`
	PaymentRef string `json:"payment_ref"`
}

// DetectPaymentProviderRequest has no fields.
type DetectPaymentProviderRequest struct{}

// DetectPaymentProviderReply is the provider checkout should use.
type DetectPaymentProviderReply struct {
	Detection *gatewaydomain.Detection `json:"detection"`
}
