package contracts

import (
	"context"

	"github.com/light-bringer/checkout-pricing-service/internal/app/gateway/domain"
)

// SettingsReader loads the gateway settings and secrets in one snapshot.
type SettingsReader interface {
	LoadConfig(ctx context.Context) (*domain.Config, error)
}
