package get_quote

import (
	"context"

	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/domain"
)

// Request contains the quote ID to retrieve.
type Request struct {
	QuoteID string
}

// Query handles the get quote query use case.
type Query struct {
	repo contracts.QuoteRepository
}

// NewQuery creates a new get quote query.
func NewQuery(repo contracts.QuoteRepository) *Query {
	return &Query{repo: repo}
}

// Execute retrieves a quote by ID.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.Quote, error) {
	if req.QuoteID == "" {
		return nil, domain.ErrQuoteNotFound
	}
	return q.repo.GetByID(ctx, req.QuoteID)
}
