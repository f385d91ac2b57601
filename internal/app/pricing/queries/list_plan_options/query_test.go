package list_plan_options

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/checkout-pricing-service/internal/testutil"
)

func TestListPlanOptions_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("duration table pricing", func(t *testing.T) {
		q := NewQuery(testutil.NewFakeCatalog(testutil.SampleSnapshot()), testutil.NewEngine(), testutil.NewMockClock())

		options, err := q.Execute(ctx, &Request{PackageID: testutil.SamplePackageID})
		require.NoError(t, err)
		require.Len(t, options, 2)

		assert.Equal(t, 1, options[0].Years)
		assert.Equal(t, "1 Year", options[0].Label)
		assert.Equal(t, 12, options[0].Months)
		assert.Equal(t, domain.ModeDurationTable, options[0].Mode)
		assert.Equal(t, "20.00", options[0].DiscountPercent.String())
		assert.True(t, options[0].TotalBase.Equals(domain.MustMoney(960, 1)))
		assert.Equal(t, "15360000", options[0].TotalDisplay.RatString())

		assert.Equal(t, 2, options[1].Years)
		assert.True(t, options[1].TotalBase.Equals(domain.MustMoney(1680, 1)))
	})

	t.Run("default plans with linear pricing", func(t *testing.T) {
		snapshot := testutil.SampleSnapshot()
		snapshot.Durations = nil
		snapshot.Plans = nil
		q := NewQuery(testutil.NewFakeCatalog(snapshot), testutil.NewEngine(), testutil.NewMockClock())

		options, err := q.Execute(ctx, &Request{PackageID: testutil.SamplePackageID})
		require.NoError(t, err)
		require.Len(t, options, 3)
		for i, opt := range options {
			assert.Equal(t, i+1, opt.Years)
			assert.Equal(t, domain.ModeLinear, opt.Mode)
			assert.True(t, opt.TotalBase.Equals(domain.MustMoney(int64(1200*(i+1)), 1)), "years %d got %s", opt.Years, opt.TotalBase)
		}
	})

	t.Run("plan override without duration rows", func(t *testing.T) {
		snapshot := testutil.SampleSnapshot()
		snapshot.Durations = nil
		snapshot.Plans[1].PriceOverride = domain.MustMoney(2000, 1)
		q := NewQuery(testutil.NewFakeCatalog(snapshot), testutil.NewEngine(), testutil.NewMockClock())

		options, err := q.Execute(ctx, &Request{PackageID: testutil.SamplePackageID})
		require.NoError(t, err)
		require.Len(t, options, 2)
		assert.Equal(t, domain.ModeLinear, options[0].Mode)
		assert.Equal(t, domain.ModePlanOverride, options[1].Mode)
		assert.True(t, options[1].TotalBase.Equals(domain.MustMoney(2000, 1)))
	})

	t.Run("missing prices list unavailable options", func(t *testing.T) {
		q := NewQuery(testutil.NewFakeCatalog(), testutil.NewEngine(), testutil.NewMockClock())

		options, err := q.Execute(ctx, &Request{PackageID: "unknown"})
		require.NoError(t, err)
		require.Len(t, options, 3)
		for _, opt := range options {
			assert.False(t, opt.Available)
			assert.Nil(t, opt.TotalBase)
			assert.Nil(t, opt.TotalDisplay)
		}
	})

	t.Run("empty package id", func(t *testing.T) {
		q := NewQuery(testutil.NewFakeCatalog(), testutil.NewEngine(), testutil.NewMockClock())
		_, err := q.Execute(ctx, &Request{})
		assert.ErrorIs(t, err, domain.ErrEmptyPackageID)
	})
}
