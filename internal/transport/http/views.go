package http

import (
	"math/big"
	"time"

	"github.com/shopspring/decimal"

	gatewaydomain "github.com/light-bringer/checkout-pricing-service/internal/app/gateway/domain"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/queries/list_plan_options"
	"github.com/light-bringer/checkout-pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/checkout-pricing-service/internal/pkg/currency"
)

// UnavailablePlaceholder is rendered instead of a formatted total that cannot be computed.
const UnavailablePlaceholder = "—"

// Presenter renders amounts in the display currency. *currency.Converter implements it.
type Presenter interface {
	ToDisplay(amountBase *big.Rat) *big.Rat
	Format(amountDisplay *big.Rat) string
	Currency() string
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// PriceView is an order price. Base amounts are exact rational strings; the display
// total is the rounded amount the gateway charges.
type PriceView struct {
	PackageID         string             `json:"package_id"`
	Months            int                `json:"months"`
	Available         bool               `json:"available"`
	UnavailableReason string             `json:"unavailable_reason,omitempty"`
	Mode              domain.PricingMode `json:"mode,omitempty"`
	DiscountPercent   string             `json:"discount_percent"`
	SubtotalBase      *domain.Money      `json:"subtotal_base"`
	AddOnsBase        *domain.Money      `json:"add_ons_base"`
	AddOnLines        []domain.AddOnLine `json:"add_on_lines"`
	PreDiscountBase   *domain.Money      `json:"pre_discount_base"`
	DiscountApplied   *domain.Money      `json:"discount_applied"`
	TotalBase         *domain.Money      `json:"total_base"`
	TotalDisplay      *decimal.Decimal   `json:"total_display"`
	TotalFormatted    string             `json:"total_formatted"`
	DisplayCurrency   string             `json:"display_currency"`
	Promo             *PromoView         `json:"promo,omitempty"`
}

// PromoView is the outcome of a promo code.
type PromoView struct {
	OK                bool               `json:"ok"`
	Code              string             `json:"code"`
	Name              string             `json:"name,omitempty"`
	Reason            domain.PromoReason `json:"reason,omitempty"`
	DiscountBase      *domain.Money      `json:"discount_base,omitempty"`
	EffectiveDiscount *domain.Money      `json:"effective_discount,omitempty"`
	FinalTotal        *domain.Money      `json:"final_total,omitempty"`
}

// ValidatePromoResponse pairs the promo outcome with the order it was checked against.
type ValidatePromoResponse struct {
	Promo *PromoView `json:"promo"`
	Price *PriceView `json:"price,omitempty"`
}

// AddOnView is a catalog entry with its display price.
type AddOnView struct {
	domain.AddOnItem
	PriceFormatted string `json:"price_formatted"`
}

// PlanOptionView is one selectable subscription length.
type PlanOptionView struct {
	Years           int                `json:"years"`
	Label           string             `json:"label"`
	Months          int                `json:"months"`
	Mode            domain.PricingMode `json:"mode,omitempty"`
	DiscountPercent string             `json:"discount_percent"`
	Available       bool               `json:"available"`
	TotalBase       *domain.Money      `json:"total_base"`
	TotalDisplay    *decimal.Decimal   `json:"total_display"`
	TotalFormatted  string             `json:"total_formatted"`
	DisplayCurrency string             `json:"display_currency"`
}

// QuoteView is a locked or consumed quote.
type QuoteView struct {
	QuoteID         string                 `json:"quote_id"`
	PackageID       string                 `json:"package_id"`
	Months          int                    `json:"months"`
	AddOns          domain.AddOnSelections `json:"add_ons"`
	PromoCode       string                 `json:"promo_code,omitempty"`
	Mode            domain.PricingMode     `json:"mode"`
	DiscountPercent string                 `json:"discount_percent"`
	SubtotalBase    *domain.Money          `json:"subtotal_base"`
	AddOnsBase      *domain.Money          `json:"add_ons_base"`
	DiscountApplied *domain.Money          `json:"discount_applied"`
	TotalBase       *domain.Money          `json:"total_base"`
	TotalDisplay    decimal.Decimal        `json:"total_display"`
	TotalFormatted  string                 `json:"total_formatted"`
	DisplayCurrency string                 `json:"display_currency"`
	Status          domain.QuoteStatus     `json:"status"`
	PaymentRef      string                 `json:"payment_ref,omitempty"`
	Version         int64                  `json:"version"`
	CreatedAt       string                 `json:"created_at"`
	ExpiresAt       string                 `json:"expires_at"`
	ConsumedAt      *string                `json:"consumed_at,omitempty"`
}

// EventView is an outbox event.
type EventView struct {
	EventID     string  `json:"event_id"`
	EventType   string  `json:"event_type"`
	AggregateID string  `json:"aggregate_id"`
	Payload     string  `json:"payload"`
	Status      string  `json:"status"`
	RetryCount  int64   `json:"retry_count"`
	CreatedAt   string  `json:"created_at"`
	ProcessedAt *string `json:"processed_at,omitempty"`
}

// ListEventsResponse is returned by GET /v1/events.
type ListEventsResponse struct {
	Events     []EventView `json:"events"`
	TotalCount int64       `json:"total_count"`
}

// ProviderView is the payment provider detection result. Secrets are never included.
type ProviderView = gatewaydomain.Detection

func toPriceView(r *domain.OrderPricingResult, p Presenter) *PriceView {
	v := &PriceView{
		PackageID:         r.PackageID,
		Months:            r.Months,
		Available:         r.Available,
		UnavailableReason: r.UnavailableReason,
		Mode:              r.Mode,
		DiscountPercent:   r.DiscountPercent.String(),
		SubtotalBase:      r.SubtotalBase,
		AddOnsBase:        r.AddOnsBase,
		AddOnLines:        r.AddOnLines,
		PreDiscountBase:   r.PreDiscountBase,
		DiscountApplied:   r.DiscountApplied,
		TotalBase:         r.TotalBase,
		TotalFormatted:    UnavailablePlaceholder,
		DisplayCurrency:   r.DisplayCurrency,
		Promo:             toPromoView(r.Promo),
	}
	if v.AddOnLines == nil {
		v.AddOnLines = []domain.AddOnLine{}
	}
	if r.Available && r.TotalDisplay != nil {
		total := currency.DisplayDecimal(r.TotalDisplay)
		v.TotalDisplay = &total
		v.TotalFormatted = p.Format(r.TotalDisplay)
	}
	return v
}

func toPromoView(r *domain.PromoResult) *PromoView {
	if r == nil {
		return nil
	}
	return &PromoView{
		OK:                r.OK,
		Code:              r.Code,
		Name:              r.Name,
		Reason:            r.Reason,
		DiscountBase:      r.DiscountBase,
		EffectiveDiscount: r.EffectiveDiscount,
		FinalTotal:        r.FinalTotal,
	}
}

func toAddOnViews(items []domain.AddOnItem, p Presenter) []AddOnView {
	out := make([]AddOnView, 0, len(items))
	for _, item := range items {
		formatted := UnavailablePlaceholder
		if item.Price != nil {
			formatted = p.Format(p.ToDisplay(item.Price.Rat()))
		}
		out = append(out, AddOnView{AddOnItem: item, PriceFormatted: formatted})
	}
	return out
}

func toPlanOptionViews(options []list_plan_options.PlanOption, p Presenter) []PlanOptionView {
	out := make([]PlanOptionView, 0, len(options))
	for _, o := range options {
		v := PlanOptionView{
			Years:           o.Years,
			Label:           o.Label,
			Months:          o.Months,
			Mode:            o.Mode,
			DiscountPercent: o.DiscountPercent.String(),
			Available:       o.Available,
			TotalBase:       o.TotalBase,
			TotalFormatted:  UnavailablePlaceholder,
			DisplayCurrency: o.DisplayCurrency,
		}
		if o.Available && o.TotalDisplay != nil {
			total := currency.DisplayDecimal(o.TotalDisplay)
			v.TotalDisplay = &total
			v.TotalFormatted = p.Format(o.TotalDisplay)
		}
		out = append(out, v)
	}
	return out
}

func toQuoteView(q *domain.Quote, p Presenter) *QuoteView {
	v := &QuoteView{
		QuoteID:         q.ID(),
		PackageID:       q.PackageID(),
		Months:          q.Months(),
		AddOns:          q.Selections(),
		PromoCode:       q.PromoCode(),
		Mode:            q.Mode(),
		DiscountPercent: q.DiscountPercent().String(),
		SubtotalBase:    q.SubtotalBase(),
		AddOnsBase:      q.AddOnsBase(),
		DiscountApplied: q.DiscountApplied(),
		TotalBase:       q.TotalBase(),
		TotalDisplay:    currency.DisplayDecimal(q.TotalDisplay()),
		TotalFormatted:  p.Format(q.TotalDisplay()),
		DisplayCurrency: q.DisplayCurrency(),
		Status:          q.Status(),
		PaymentRef:      q.PaymentRef(),
		Version:         q.Version(),
		CreatedAt:       formatTime(q.CreatedAt()),
		ExpiresAt:       formatTime(q.ExpiresAt()),
	}
	if at := q.ConsumedAt(); at != nil {
		s := formatTime(*at)
		v.ConsumedAt = &s
	}
	return v
}

func toEventViews(events []*m_outbox.Data) []EventView {
	out := make([]EventView, 0, len(events))
	for _, e := range events {
		v := EventView{
			EventID:     e.EventID,
			EventType:   e.EventType,
			AggregateID: e.AggregateID,
			Payload:     e.PayloadString(),
			Status:      e.Status,
			RetryCount:  e.RetryCount,
			CreatedAt:   formatTime(e.CreatedAt),
		}
		if e.ProcessedAt.Valid {
			s := formatTime(e.ProcessedAt.Time)
			v.ProcessedAt = &s
		}
		out = append(out, v)
	}
	return out
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
