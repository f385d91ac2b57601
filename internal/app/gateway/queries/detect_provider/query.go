package detect_provider

import (
	"context"
	"fmt"

	"github.com/light-bringer/checkout-pricing-service/internal/app/gateway/contracts"
	"github.com/light-bringer/checkout-pricing-service/internal/app/gateway/domain"
)

// Query reports which payment provider checkout should use.
type Query struct {
	settings contracts.SettingsReader
}

// NewQuery creates a new detect provider query.
func NewQuery(settings contracts.SettingsReader) *Query {
	return &Query{settings: settings}
}

// Execute loads the current settings and runs detection. Secrets never leave this call.
func (q *Query) Execute(ctx context.Context) (*domain.Detection, error) {
	cfg, err := q.settings.LoadConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load gateway settings: %w", err)
	}
	return domain.DetectProvider(cfg), nil
}
