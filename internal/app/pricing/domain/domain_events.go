package domain

import "time"

// DomainEvent is the base interface for all domain events.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// QuoteLockedEvent is emitted when a priced order is frozen for payment.
type QuoteLockedEvent struct {
	QuoteID         string    `json:"quote_id"`
	PackageID       string    `json:"package_id"`
	Months          int       `json:"months"`
	Mode            string    `json:"mode"`
	PromoCode       string    `json:"promo_code,omitempty"`
	TotalBase       string    `json:"total_base"`
	TotalDisplay    string    `json:"total_display"`
	DisplayCurrency string    `json:"display_currency"`
	LockedAt        time.Time `json:"locked_at"`
	ExpiresAt       time.Time `json:"expires_at"`
}

func (e *QuoteLockedEvent) EventType() string {
	return "quote.locked"
}

func (e *QuoteLockedEvent) AggregateID() string {
	return e.QuoteID
}

// QuoteConsumedEvent is emitted when a payment collaborator charges a locked quote.
type QuoteConsumedEvent struct {
	QuoteID    string    `json:"quote_id"`
	PaymentRef string    `json:"payment_ref,omitempty"`
	ConsumedAt time.Time `json:"consumed_at"`
}

func (e *QuoteConsumedEvent) EventType() string {
	return "quote.consumed"
}

func (e *QuoteConsumedEvent) AggregateID() string {
	return e.QuoteID
}
