//go:build integration

package repo_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/checkout-pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/checkout-pricing-service/internal/models/m_quote"
	"github.com/light-bringer/checkout-pricing-service/internal/pkg/committer"
	"github.com/light-bringer/checkout-pricing-service/internal/testutil"
)

func TestCatalogRepo_LoadSnapshot(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	catalog := repo.NewCatalogRepo(client)

	muts, err := catalog.SnapshotMuts(testutil.SampleSnapshot())
	require.NoError(t, err)
	testutil.Apply(t, client, muts...)

	t.Run("round trips the snapshot", func(t *testing.T) {
		snapshot, err := catalog.LoadSnapshot(ctx, testutil.SamplePackageID)
		require.NoError(t, err)

		require.NotNil(t, snapshot.Pricing.DomainPrice)
		assert.True(t, snapshot.Pricing.DomainPrice.Equals(domain.MustMoney(200, 1)))
		assert.True(t, snapshot.Pricing.PackagePrice.Equals(domain.MustMoney(1000, 1)))
		require.Len(t, snapshot.Durations, 2)
		assert.Equal(t, 12, snapshot.Durations[0].DurationMonths)
		assert.Equal(t, 0, snapshot.Durations[0].DiscountPercent.Cmp(domain.PercentFromInt(20).Rat()))
		assert.Len(t, snapshot.Plans, 2)
		require.Len(t, snapshot.AddOns, 2)
		assert.Equal(t, "seo", snapshot.AddOns[0].ID)
		require.NotNil(t, snapshot.AddOns[1].MaxQuantity)
		assert.Equal(t, "3", snapshot.AddOns[1].MaxQuantity.String())
		assert.Equal(t, "1", snapshot.AddOns[1].UnitStep.String())
	})

	t.Run("unknown package has no prices", func(t *testing.T) {
		snapshot, err := catalog.LoadSnapshot(ctx, "unknown")
		require.NoError(t, err)
		assert.Nil(t, snapshot.Pricing.DomainPrice)
		assert.Nil(t, snapshot.Pricing.PackagePrice)
		assert.Empty(t, snapshot.Durations)
	})
}

func TestPromoRepo_FindByCode(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	promos := repo.NewPromoRepo(client)

	promo := testutil.FlatPromo("SAVE100", 100)
	promo.MinSubtotal = domain.MustMoney(500, 1)
	promo.Window.EndsAt = testutil.ReferenceTime.Add(24 * time.Hour)
	mut, err := promos.UpsertMut(&promo)
	require.NoError(t, err)
	testutil.Apply(t, client, mut)

	found, err := promos.FindByCode(ctx, "SAVE100")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, found.IsActive)
	assert.Equal(t, domain.PromoFlat, found.Rule.Type)
	assert.True(t, found.MinSubtotal.Equals(domain.MustMoney(500, 1)))
	assert.True(t, found.Window.StartsAt.IsZero())
	assert.True(t, found.Window.EndsAt.Equal(promo.Window.EndsAt))

	missing, err := promos.FindByCode(ctx, "NOPE")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestQuoteRepo_LockAndConsume(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	quotes := repo.NewQuoteRepo(client)
	outbox := repo.NewOutboxRepo()
	applier := committer.NewCommitter(client)

	quote := testutil.LockedQuote("quote-1", testutil.ReferenceTime, time.Hour)
	mut, err := quotes.InsertMut(quote)
	require.NoError(t, err)
	plan := committer.NewPlan()
	plan.Add(mut)
	require.NoError(t, applier.Apply(ctx, plan))

	loaded, err := quotes.GetByID(ctx, "quote-1")
	require.NoError(t, err)
	assert.True(t, loaded.TotalBase().Equals(quote.TotalBase()))
	assert.Equal(t, 0, loaded.TotalDisplay().Cmp(quote.TotalDisplay()))
	assert.Equal(t, quote.Selections(), loaded.Selections())
	assert.Equal(t, int64(1), loaded.Version())

	require.NoError(t, loaded.Consume("pay-1", testutil.ReferenceTime.Add(time.Minute)))
	update, err := quotes.UpdateMut(loaded)
	require.NoError(t, err)

	plan = committer.NewPlan()
	plan.Add(update)
	for _, event := range loaded.DomainEvents() {
		payload, err := json.Marshal(event)
		require.NoError(t, err)
		plan.Add(outbox.InsertMut(outbox.EnrichEvent(event, string(payload))))
	}
	guard := committer.VersionGuard{Table: m_quote.TableName, Key: spanner.Key{"quote-1"}, Column: m_quote.Version, ExpectedVersion: 1}
	require.NoError(t, applier.ApplyWithVersionCheck(ctx, guard, plan))

	consumed, err := quotes.GetByID(ctx, "quote-1")
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusConsumed, consumed.Status())
	assert.Equal(t, "pay-1", consumed.PaymentRef())
	assert.Equal(t, int64(2), consumed.Version())
	testutil.AssertOutboxEvent(t, client, "quote.consumed")

	t.Run("stale version is rejected", func(t *testing.T) {
		err := applier.ApplyWithVersionCheck(ctx, guard, committer.NewPlan())
		assert.ErrorIs(t, err, committer.ErrVersionConflict)
	})

	t.Run("missing quote", func(t *testing.T) {
		_, err := quotes.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrQuoteNotFound)
	})
}

func TestEventsReadModel_ListEvents(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	outbox := repo.NewOutboxRepo()
	events := []domain.DomainEvent{
		&domain.QuoteLockedEvent{QuoteID: "q-1"},
		&domain.QuoteLockedEvent{QuoteID: "q-2"},
		&domain.QuoteConsumedEvent{QuoteID: "q-1", PaymentRef: "pay"},
	}
	for _, e := range events {
		testutil.Apply(t, client, outbox.InsertMut(outbox.EnrichEvent(e, "{}")))
	}

	query := list_events.NewQuery(repo.NewEventsReadModel(client))

	t.Run("all events", func(t *testing.T) {
		rows, total, err := query.Execute(ctx, &list_events.Request{})
		require.NoError(t, err)
		assert.Len(t, rows, 3)
		assert.Equal(t, int64(3), total)
	})

	t.Run("filter by type with limit", func(t *testing.T) {
		eventType := "quote.locked"
		rows, total, err := query.Execute(ctx, &list_events.Request{EventType: &eventType, Limit: 1})
		require.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, int64(2), total)
	})

	t.Run("filter by aggregate and status", func(t *testing.T) {
		aggregate := "q-1"
		status := m_outbox.StatusPending
		rows, total, err := query.Execute(ctx, &list_events.Request{AggregateID: &aggregate, Status: &status})
		require.NoError(t, err)
		assert.Len(t, rows, 2)
		assert.Equal(t, int64(2), total)
	})
}
