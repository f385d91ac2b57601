package domain

import (
	"math/big"
	"time"
)

// Field names for change tracking
const (
	FieldStatus     = "status"
	FieldPaymentRef = "payment_ref"
	FieldConsumedAt = "consumed_at"
)

// QuoteStatus represents the lifecycle status of a quote.
type QuoteStatus string

const (
	QuoteStatusLocked   QuoteStatus = "locked"
	QuoteStatusConsumed QuoteStatus = "consumed"
)

// Quote is the aggregate root for a frozen order price. Once locked, the amounts never
// change; the payment collaborator charges TotalBase (or TotalDisplay) exactly as stored.
type Quote struct {
	id              string
	packageID       string
	months          int
	selections      AddOnSelections
	promoCode       string
	mode            PricingMode
	discountPercent Percent
	subtotalBase    *Money
	addOnsBase      *Money
	discountApplied *Money
	totalBase       *Money
	totalDisplay    *big.Rat
	displayCurrency string
	status          QuoteStatus
	paymentRef      string
	version         int64
	createdAt       time.Time
	expiresAt       time.Time
	consumedAt      *time.Time

	changes *ChangeTracker
	events  []DomainEvent
}

// NewQuote freezes an available pricing result. Unavailable results cannot be locked.
// The stored selections are the priced (clamped) quantities, not the raw request.
func NewQuote(
	id string,
	result *OrderPricingResult,
	now time.Time,
	ttl time.Duration,
) (*Quote, error) {
	if result == nil || !result.Available || result.TotalBase == nil {
		return nil, ErrConfigurationUnavailable
	}
	if ttl <= 0 {
		return nil, ErrInvalidQuoteTTL
	}

	// A rejected code is not carried into the quote.
	appliedCode := ""
	if result.Promo != nil && result.Promo.OK {
		appliedCode = result.Promo.Code
	}

	totalDisplay := new(big.Rat)
	if result.TotalDisplay != nil {
		totalDisplay.Set(result.TotalDisplay)
	}

	selections := make(AddOnSelections, len(result.AddOnLines))
	for _, line := range result.AddOnLines {
		selections[line.ID] = line.Quantity
	}

	q := &Quote{
		id:              id,
		packageID:       result.PackageID,
		months:          result.Months,
		selections:      selections,
		promoCode:       appliedCode,
		mode:            result.Mode,
		discountPercent: result.DiscountPercent,
		subtotalBase:    result.SubtotalBase.Copy(),
		addOnsBase:      result.AddOnsBase.Copy(),
		discountApplied: result.DiscountApplied.Copy(),
		totalBase:       result.TotalBase.Copy(),
		totalDisplay:    totalDisplay,
		displayCurrency: result.DisplayCurrency,
		status:          QuoteStatusLocked,
		version:         1,
		createdAt:       now,
		expiresAt:       now.Add(ttl),
		changes:         NewChangeTracker(),
		events:          make([]DomainEvent, 0),
	}

	q.recordEvent(&QuoteLockedEvent{
		QuoteID:         q.id,
		PackageID:       q.packageID,
		Months:          q.months,
		Mode:            string(q.mode),
		PromoCode:       q.promoCode,
		TotalBase:       q.totalBase.Rat().RatString(),
		TotalDisplay:    q.totalDisplay.FloatString(2),
		DisplayCurrency: q.displayCurrency,
		LockedAt:        q.createdAt,
		ExpiresAt:       q.expiresAt,
	})

	return q, nil
}

// QuoteState is the persisted form of a Quote, used to reconstruct it from storage.
type QuoteState struct {
	ID              string
	PackageID       string
	Months          int
	Selections      AddOnSelections
	PromoCode       string
	Mode            PricingMode
	DiscountPercent *big.Rat
	SubtotalBase    *Money
	AddOnsBase      *Money
	DiscountApplied *Money
	TotalBase       *Money
	TotalDisplay    *big.Rat
	DisplayCurrency string
	Status          QuoteStatus
	PaymentRef      string
	Version         int64
	CreatedAt       time.Time
	ExpiresAt       time.Time
	ConsumedAt      *time.Time
}

// ReconstructQuote reconstitutes a Quote from storage with a clean change set.
func ReconstructQuote(s QuoteState) *Quote {
	totalDisplay := new(big.Rat)
	if s.TotalDisplay != nil {
		totalDisplay.Set(s.TotalDisplay)
	}
	return &Quote{
		id:              s.ID,
		packageID:       s.PackageID,
		months:          s.Months,
		selections:      copySelections(s.Selections),
		promoCode:       s.PromoCode,
		mode:            s.Mode,
		discountPercent: NewPercent(s.DiscountPercent),
		subtotalBase:    s.SubtotalBase,
		addOnsBase:      s.AddOnsBase,
		discountApplied: s.DiscountApplied,
		totalBase:       s.TotalBase,
		totalDisplay:    totalDisplay,
		displayCurrency: s.DisplayCurrency,
		status:          s.Status,
		paymentRef:      s.PaymentRef,
		version:         s.Version,
		createdAt:       s.CreatedAt,
		expiresAt:       s.ExpiresAt,
		consumedAt:      s.ConsumedAt,
		changes:         NewChangeTracker(),
		events:          make([]DomainEvent, 0),
	}
}

// Getters
func (q *Quote) ID() string                  { return q.id }
func (q *Quote) PackageID() string           { return q.packageID }
func (q *Quote) Months() int                 { return q.months }
func (q *Quote) Selections() AddOnSelections { return copySelections(q.selections) }
func (q *Quote) PromoCode() string           { return q.promoCode }
func (q *Quote) Mode() PricingMode           { return q.mode }
func (q *Quote) DiscountPercent() Percent    { return q.discountPercent }
func (q *Quote) SubtotalBase() *Money        { return q.subtotalBase.Copy() }
func (q *Quote) AddOnsBase() *Money          { return q.addOnsBase.Copy() }
func (q *Quote) DiscountApplied() *Money     { return q.discountApplied.Copy() }
func (q *Quote) TotalBase() *Money           { return q.totalBase.Copy() }
func (q *Quote) TotalDisplay() *big.Rat      { return new(big.Rat).Set(q.totalDisplay) }
func (q *Quote) DisplayCurrency() string     { return q.displayCurrency }
func (q *Quote) Status() QuoteStatus         { return q.status }
func (q *Quote) PaymentRef() string          { return q.paymentRef }
func (q *Quote) Version() int64              { return q.version }
func (q *Quote) CreatedAt() time.Time        { return q.createdAt }
func (q *Quote) ExpiresAt() time.Time        { return q.expiresAt }
func (q *Quote) ConsumedAt() *time.Time      { return q.consumedAt }
func (q *Quote) Changes() *ChangeTracker     { return q.changes }
func (q *Quote) DomainEvents() []DomainEvent { return q.events }

// IsExpiredAt reports whether the quote can no longer be charged at t.
func (q *Quote) IsExpiredAt(t time.Time) bool {
	return t.After(q.expiresAt)
}

// Consume marks the quote as charged by the payment collaborator.
func (q *Quote) Consume(paymentRef string, now time.Time) error {
	if q.status == QuoteStatusConsumed {
		return ErrQuoteAlreadyConsumed
	}
	if q.IsExpiredAt(now) {
		return ErrQuoteExpired
	}

	q.status = QuoteStatusConsumed
	q.paymentRef = paymentRef
	consumedAt := now
	q.consumedAt = &consumedAt
	q.changes.MarkDirty(FieldStatus, FieldPaymentRef, FieldConsumedAt)

	q.recordEvent(&QuoteConsumedEvent{
		QuoteID:    q.id,
		PaymentRef: paymentRef,
		ConsumedAt: now,
	})
	return nil
}

// MarkPersisted records that the pending changes were committed. The stored version
// moved on by one when there were changes, so the aggregate follows it.
func (q *Quote) MarkPersisted() {
	if q.changes.HasChanges() {
		q.version++
	}
	q.changes.Clear()
	q.ClearEvents()
}

// recordEvent adds a domain event to the list of events.
func (q *Quote) recordEvent(event DomainEvent) {
	q.events = append(q.events, event)
}

// ClearEvents clears all recorded domain events (called after the commit plan is applied).
func (q *Quote) ClearEvents() {
	q.events = make([]DomainEvent, 0)
}

func copySelections(in AddOnSelections) AddOnSelections {
	out := make(AddOnSelections, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
