package consume_quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/checkout-pricing-service/internal/models/m_quote"
	"github.com/light-bringer/checkout-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/checkout-pricing-service/internal/pkg/committer"
)

// Request identifies the quote being charged.
type Request struct {
	QuoteID    string
	PaymentRef string
}

// Interactor marks a locked quote as charged.
type Interactor struct {
	repo       contracts.QuoteRepository
	outboxRepo contracts.OutboxRepository
	committer  committer.Applier
	clock      clock.Clock
	observer   contracts.Observer
}

// NewInteractor creates a new consume quote interactor.
func NewInteractor(
	repo contracts.QuoteRepository,
	outboxRepo contracts.OutboxRepository,
	applier committer.Applier,
	clk clock.Clock,
	observer contracts.Observer,
) *Interactor {
	if observer == nil {
		observer = contracts.NopObserver{}
	}
	return &Interactor{
		repo:       repo,
		outboxRepo: outboxRepo,
		committer:  applier,
		clock:      clk,
		observer:   observer,
	}
}

// Execute consumes the quote under an optimistic version check, so two concurrent
// charges cannot both succeed.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Quote, error) {
	quote, err := i.repo.GetByID(ctx, req.QuoteID)
	if err != nil {
		return nil, err
	}

	if err := quote.Consume(req.PaymentRef, i.clock.Now()); err != nil {
		return nil, err
	}

	plan := committer.NewPlan()
	mut, err := i.repo.UpdateMut(quote)
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

	guard := committer.VersionGuard{
		Table:           m_quote.TableName,
		Key:             spanner.Key{quote.ID()},
		Column:          m_quote.Version,
		ExpectedVersion: quote.Version(),
	}
	if err := i.committer.ApplyWithVersionCheck(ctx, guard, plan); err != nil {
		switch {
		case errors.Is(err, committer.ErrVersionConflict):
			return nil, fmt.Errorf("%w: %v", domain.ErrVersionConflict, err)
		case errors.Is(err, committer.ErrRowNotFound):
			return nil, domain.ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	quote.MarkPersisted()

	i.observer.ObserveQuoteConsumed(quote)
	return quote, nil
}
