package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/domain"
)

// QuoteRepository persists locked quotes. It returns mutations and never applies them.
type QuoteRepository interface {
	// InsertMut creates a mutation for a newly locked quote.
	// Returns domain.ErrMoneyOverflow if an amount does not fit the storage columns.
	InsertMut(quote *domain.Quote) (*spanner.Mutation, error)

	// UpdateMut creates a mutation for the dirty fields of a quote and bumps its version.
	UpdateMut(quote *domain.Quote) (*spanner.Mutation, error)

	// GetByID loads a quote. Returns domain.ErrQuoteNotFound if it does not exist.
	GetByID(ctx context.Context, quoteID string) (*domain.Quote, error)
}
