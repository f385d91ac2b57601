package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/repo"
)

func TestSeedPlan(t *testing.T) {
	plan, err := seedPlan(repo.NewCatalogRepo(nil), repo.NewPromoRepo(nil))
	require.NoError(t, err)

	// pricing + 3 durations + 3 plans + 4 add-ons + 2 promos + 4 settings
	assert.Equal(t, 17, plan.Count())
}

func TestSeedSnapshot(t *testing.T) {
	snapshot := seedSnapshot()

	for _, item := range snapshot.AddOns {
		assert.NoError(t, item.Validate(), item.ID)
	}
	for _, promo := range seedPromos() {
		assert.NoError(t, promo.Rule.Validate(), promo.Code)
	}
}
