package list_add_ons

import (
	"context"
	"fmt"

	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/domain"
)

// Request selects the package.
type Request struct {
	PackageID string
}

// Query returns the add-on catalog of a package merged with the builtin add-ons.
type Query struct {
	catalog  contracts.CatalogReader
	builtins []domain.AddOnItem
}

// NewQuery creates a new list add-ons query.
func NewQuery(catalog contracts.CatalogReader, builtins []domain.AddOnItem) *Query {
	return &Query{catalog: catalog, builtins: builtins}
}

// Execute returns the merged catalog sorted by sort order.
func (q *Query) Execute(ctx context.Context, req *Request) ([]domain.AddOnItem, error) {
	if req.PackageID == "" {
		return nil, domain.ErrEmptyPackageID
	}
	snapshot, err := q.catalog.LoadSnapshot(ctx, req.PackageID)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return domain.MergeCatalog(snapshot.AddOns, q.builtins), nil
}
