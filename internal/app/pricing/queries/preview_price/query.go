package preview_price

import (
	"context"
	"fmt"

	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/checkout-pricing-service/internal/pkg/clock"
)

// Request describes an order to price. Months wins over Years when both are set.
type Request struct {
	PackageID string
	Months    int
	Years     int
	AddOns    domain.AddOnSelections
	PromoCode string
}

// ResolveMonths returns the subscription length in months.
func (r *Request) ResolveMonths() int {
	if r.Months != 0 {
		return r.Months
	}
	return domain.MonthsForYears(r.Years)
}

// Query prices an order from a fresh catalog snapshot.
type Query struct {
	catalog  contracts.CatalogReader
	promos   contracts.PromoReader
	engine   *domain.Engine
	builtins []domain.AddOnItem
	clock    clock.Clock
	observer contracts.Observer
}

// NewQuery creates a new preview price query.
func NewQuery(
	catalog contracts.CatalogReader,
	promos contracts.PromoReader,
	engine *domain.Engine,
	builtins []domain.AddOnItem,
	clk clock.Clock,
	observer contracts.Observer,
) *Query {
	if observer == nil {
		observer = contracts.NopObserver{}
	}
	return &Query{
		catalog:  catalog,
		promos:   promos,
		engine:   engine,
		builtins: builtins,
		clock:    clk,
		observer: observer,
	}
}

// Execute loads the catalog and runs the pricing engine. Missing or unusable
// configuration is reported in the result, not as an error; errors are reserved for
// bad requests and storage failures.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.OrderPricingResult, error) {
	if req.PackageID == "" {
		return nil, domain.ErrEmptyPackageID
	}

	snapshot, err := q.catalog.LoadSnapshot(ctx, req.PackageID)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	promos, err := q.lookupPromo(ctx, req.PromoCode)
	if err != nil {
		return nil, err
	}

	result := q.engine.Price(domain.OrderPricingInput{
		Snapshot:   snapshot,
		Builtins:   q.builtins,
		Months:     req.ResolveMonths(),
		Selections: req.AddOns,
		PromoCode:  req.PromoCode,
		Promos:     promos,
		Now:        q.clock.Now(),
	})

	q.observer.ObservePrice(result)
	if result.Promo != nil {
		q.observer.ObservePromo(result.Promo)
	}
	return result, nil
}

func (q *Query) lookupPromo(ctx context.Context, code string) (domain.PromoLookup, error) {
	normalized := domain.NormalizeCode(code)
	if normalized == "" {
		return domain.NewPromoCatalog(), nil
	}
	promo, err := q.promos.FindByCode(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to load promo code: %w", err)
	}
	if promo == nil {
		return domain.NewPromoCatalog(), nil
	}
	return domain.NewPromoCatalog(*promo), nil
}
