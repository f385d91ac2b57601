package list_plan_options

import (
	"context"
	"fmt"
	"math/big"

	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/checkout-pricing-service/internal/pkg/clock"
)

// Request selects the package.
type Request struct {
	PackageID string
}

// PlanOption is one selectable subscription length with its price. TotalBase and
// TotalDisplay are nil when the price is not computable.
type PlanOption struct {
	Years             int
	Label             string
	Months            int
	Mode              domain.PricingMode
	DiscountPercent   domain.Percent
	Available         bool
	UnavailableReason string
	TotalBase         *domain.Money
	TotalDisplay      *big.Rat
	DisplayCurrency   string
}

// Query lists plan options priced without add-ons or promo.
type Query struct {
	catalog contracts.CatalogReader
	engine  *domain.Engine
	clock   clock.Clock
}

// NewQuery creates a new list plan options query.
func NewQuery(catalog contracts.CatalogReader, engine *domain.Engine, clk clock.Clock) *Query {
	return &Query{catalog: catalog, engine: engine, clock: clk}
}

// Execute prices every configured plan, falling back to 1, 2 and 3 years.
func (q *Query) Execute(ctx context.Context, req *Request) ([]PlanOption, error) {
	if req.PackageID == "" {
		return nil, domain.ErrEmptyPackageID
	}
	snapshot, err := q.catalog.LoadSnapshot(ctx, req.PackageID)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	now := q.clock.Now()
	plans := domain.NormalizePlans(snapshot.Plans)
	options := make([]PlanOption, 0, len(plans))
	for _, plan := range plans {
		res := q.engine.Price(domain.OrderPricingInput{
			Snapshot: snapshot,
			Months:   plan.Months(),
			Now:      now,
		})
		options = append(options, PlanOption{
			Years:             plan.Years,
			Label:             plan.Label,
			Months:            plan.Months(),
			Mode:              res.Mode,
			DiscountPercent:   res.DiscountPercent,
			Available:         res.Available,
			UnavailableReason: res.UnavailableReason,
			TotalBase:         res.TotalBase,
			TotalDisplay:      res.TotalDisplay,
			DisplayCurrency:   res.DisplayCurrency,
		})
	}
	return options, nil
}
