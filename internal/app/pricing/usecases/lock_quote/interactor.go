package lock_quote

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/queries/preview_price"
	"github.com/light-bringer/checkout-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/checkout-pricing-service/internal/pkg/committer"
)

// Request is the order to freeze.
type Request struct {
	PackageID string
	Months    int
	Years     int
	AddOns    domain.AddOnSelections
	PromoCode string
}

// Interactor prices an order and persists the result as a locked quote.
type Interactor struct {
	preview    *preview_price.Query
	repo       contracts.QuoteRepository
	outboxRepo contracts.OutboxRepository
	committer  committer.Applier
	clock      clock.Clock
	ttl        time.Duration
	observer   contracts.Observer
}

// NewInteractor creates a new lock quote interactor.
func NewInteractor(
	preview *preview_price.Query,
	repo contracts.QuoteRepository,
	outboxRepo contracts.OutboxRepository,
	applier committer.Applier,
	clk clock.Clock,
	ttl time.Duration,
	observer contracts.Observer,
) *Interactor {
	if observer == nil {
		observer = contracts.NopObserver{}
	}
	return &Interactor{
		preview:    preview,
		repo:       repo,
		outboxRepo: outboxRepo,
		committer:  applier,
		clock:      clk,
		ttl:        ttl,
		observer:   observer,
	}
}

// Execute locks the current price of the order. A supplied promo code that does not
// apply fails the lock instead of silently charging the undiscounted total.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Quote, error) {
	result, err := i.preview.Execute(ctx, &preview_price.Request{
		PackageID: req.PackageID,
		Months:    req.Months,
		Years:     req.Years,
		AddOns:    req.AddOns,
		PromoCode: req.PromoCode,
	})
	if err != nil {
		return nil, err
	}
	if !result.Available {
		return nil, fmt.Errorf("%w: %s", domain.ErrConfigurationUnavailable, result.UnavailableReason)
	}
	if result.Promo != nil && !result.Promo.OK {
		return nil, fmt.Errorf("%w: %s", domain.ErrPromoNotApplicable, result.Promo.Reason)
	}

	quote, err := domain.NewQuote(uuid.New().String(), result, i.clock.Now(), i.ttl)
	if err != nil {
		return nil, err
	}

	plan := committer.NewPlan()
	mut, err := i.repo.InsertMut(quote)
	if err != nil {
		return nil, err
	}
	plan.Add(mut)

	for _, event := range quote.DomainEvents() {
		payload, err := json.Marshal(event)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize event: %w", err)
		}
		plan.Add(i.outboxRepo.InsertMut(i.outboxRepo.EnrichEvent(event, string(payload))))
	}

	if err := i.committer.Apply(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	quote.ClearEvents()

	i.observer.ObserveQuoteLocked(quote)
	return quote, nil
}
