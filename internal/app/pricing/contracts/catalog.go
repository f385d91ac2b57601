package contracts

import (
	"context"

	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/domain"
)

// CatalogReader loads everything a package is priced from in one call. A package without
// a pricing row yields a snapshot with nil prices, which the engine reports as unavailable.
type CatalogReader interface {
	LoadSnapshot(ctx context.Context, packageID string) (*domain.CatalogSnapshot, error)
}

// PromoReader finds promo codes by normalized code. It returns nil, nil when no row exists.
type PromoReader interface {
	FindByCode(ctx context.Context, normalizedCode string) (*domain.PromoCode, error)
}
