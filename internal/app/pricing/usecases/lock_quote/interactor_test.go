package lock_quote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/queries/preview_price"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/checkout-pricing-service/internal/testutil"
)

type fixture struct {
	interactor *Interactor
	applier    *testutil.FakeApplier
	observer   *testutil.RecordingObserver
}

func setup(catalog *testutil.FakeCatalog, promos *testutil.FakePromos) *fixture {
	clk := testutil.NewMockClock()
	preview := preview_price.NewQuery(catalog, promos, testutil.NewEngine(), testutil.Builtins(), clk, nil)
	applier := &testutil.FakeApplier{}
	observer := &testutil.RecordingObserver{}
	interactor := NewInteractor(preview, testutil.NewFakeQuoteStore(), repo.NewOutboxRepo(), applier, clk, 30*time.Minute, observer)
	return &fixture{interactor: interactor, applier: applier, observer: observer}
}

func TestLockQuote_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("locks the priced order", func(t *testing.T) {
		f := setup(testutil.NewFakeCatalog(testutil.SampleSnapshot()), testutil.NewFakePromos(testutil.FlatPromo("SAVE100", 100)))

		quote, err := f.interactor.Execute(ctx, &Request{
			PackageID: testutil.SamplePackageID,
			Years:     1,
			AddOns:    domain.AddOnSelections{"pages": testutil.Qty("9"), "seo": testutil.Qty("1"), "unknown": testutil.Qty("4")},
			PromoCode: "save100",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, quote.ID())
		assert.Equal(t, domain.QuoteStatusLocked, quote.Status())
		assert.Equal(t, "SAVE100", quote.PromoCode())
		// 960 + 40 + 3*10 - 100
		assert.True(t, quote.TotalBase().Equals(domain.MustMoney(930, 1)), "got %s", quote.TotalBase())
		assert.Equal(t, "14880000", quote.TotalDisplay().RatString())
		assert.Equal(t, map[string]string{"pages": "3", "seo": "1"}, testutil.Quantities(quote.Selections()))
		assert.Equal(t, testutil.ReferenceTime.Add(30*time.Minute), quote.ExpiresAt())
		assert.Empty(t, quote.DomainEvents())

		require.Len(t, f.applier.Plans, 1)
		// quote row plus one outbox event
		assert.Equal(t, 2, f.applier.Plans[0].Count())
		assert.Len(t, f.observer.Locked, 1)
	})

	t.Run("unavailable configuration cannot be locked", func(t *testing.T) {
		f := setup(testutil.NewFakeCatalog(), testutil.NewFakePromos())

		_, err := f.interactor.Execute(ctx, &Request{PackageID: "unknown", Months: 12})
		assert.ErrorIs(t, err, domain.ErrConfigurationUnavailable)
		assert.Empty(t, f.applier.Plans)
	})

	t.Run("invalid duration cannot be locked", func(t *testing.T) {
		f := setup(testutil.NewFakeCatalog(testutil.SampleSnapshot()), testutil.NewFakePromos())

		_, err := f.interactor.Execute(ctx, &Request{PackageID: testutil.SamplePackageID})
		assert.ErrorIs(t, err, domain.ErrConfigurationUnavailable)
	})

	t.Run("rejected promo fails the lock", func(t *testing.T) {
		f := setup(testutil.NewFakeCatalog(testutil.SampleSnapshot()), testutil.NewFakePromos())

		_, err := f.interactor.Execute(ctx, &Request{PackageID: testutil.SamplePackageID, Months: 12, PromoCode: "NOPE"})
		assert.ErrorIs(t, err, domain.ErrPromoNotApplicable)
		assert.Contains(t, err.Error(), string(domain.PromoReasonNotFound))
		assert.Empty(t, f.applier.Plans)
	})

	t.Run("commit failure is returned", func(t *testing.T) {
		f := setup(testutil.NewFakeCatalog(testutil.SampleSnapshot()), testutil.NewFakePromos())
		f.applier.Err = errors.New("aborted")

		_, err := f.interactor.Execute(ctx, &Request{PackageID: testutil.SamplePackageID, Months: 12})
		assert.ErrorIs(t, err, f.applier.Err)
		assert.Empty(t, f.observer.Locked)
	})
}
