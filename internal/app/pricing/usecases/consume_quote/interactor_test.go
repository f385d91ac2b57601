package consume_quote

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/checkout-pricing-service/internal/models/m_quote"
	"github.com/light-bringer/checkout-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/checkout-pricing-service/internal/pkg/committer"
	"github.com/light-bringer/checkout-pricing-service/internal/testutil"
)

type fixture struct {
	interactor *Interactor
	applier    *testutil.FakeApplier
	observer   *testutil.RecordingObserver
	clock      *clock.MockClock
}

func setup(quotes ...*domain.Quote) *fixture {
	clk := testutil.NewMockClock()
	applier := &testutil.FakeApplier{}
	observer := &testutil.RecordingObserver{}
	interactor := NewInteractor(testutil.NewFakeQuoteStore(quotes...), repo.NewOutboxRepo(), applier, clk, observer)
	return &fixture{interactor: interactor, applier: applier, observer: observer, clock: clk}
}

func TestConsumeQuote_Execute(t *testing.T) {
	ctx := context.Background()
	ttl := 30 * time.Minute

	t.Run("consumes under a version guard", func(t *testing.T) {
		f := setup(testutil.LockedQuote("quote-1", testutil.ReferenceTime, ttl))
		f.clock.Advance(10 * time.Minute)

		quote, err := f.interactor.Execute(ctx, &Request{QuoteID: "quote-1", PaymentRef: "pay-123"})
		require.NoError(t, err)

		assert.Equal(t, domain.QuoteStatusConsumed, quote.Status())
		assert.Equal(t, "pay-123", quote.PaymentRef())
		require.NotNil(t, quote.ConsumedAt())
		assert.Equal(t, testutil.ReferenceTime.Add(10*time.Minute), *quote.ConsumedAt())
		assert.False(t, quote.Changes().HasChanges())
		assert.Empty(t, quote.DomainEvents())
		assert.Equal(t, int64(2), quote.Version())

		require.Len(t, f.applier.Guards, 1)
		assert.Equal(t, committer.VersionGuard{
			Table:           m_quote.TableName,
			Key:             spanner.Key{"quote-1"},
			Column:          m_quote.Version,
			ExpectedVersion: 1,
		}, f.applier.Guards[0])
		assert.Equal(t, 2, f.applier.Plans[0].Count())
		assert.Len(t, f.observer.Consumed, 1)
	})

	t.Run("expired quote", func(t *testing.T) {
		f := setup(testutil.LockedQuote("quote-1", testutil.ReferenceTime, ttl))
		f.clock.Advance(ttl + time.Second)

		_, err := f.interactor.Execute(ctx, &Request{QuoteID: "quote-1", PaymentRef: "pay-1"})
		assert.ErrorIs(t, err, domain.ErrQuoteExpired)
		assert.Empty(t, f.applier.Plans)
	})

	t.Run("already consumed", func(t *testing.T) {
		f := setup(testutil.LockedQuote("quote-1", testutil.ReferenceTime, ttl))

		_, err := f.interactor.Execute(ctx, &Request{QuoteID: "quote-1", PaymentRef: "pay-1"})
		require.NoError(t, err)
		_, err = f.interactor.Execute(ctx, &Request{QuoteID: "quote-1", PaymentRef: "pay-2"})
		assert.ErrorIs(t, err, domain.ErrQuoteAlreadyConsumed)
	})

	t.Run("unknown quote", func(t *testing.T) {
		f := setup()

		_, err := f.interactor.Execute(ctx, &Request{QuoteID: "missing"})
		assert.ErrorIs(t, err, domain.ErrQuoteNotFound)
	})

	t.Run("version conflict", func(t *testing.T) {
		f := setup(testutil.LockedQuote("quote-1", testutil.ReferenceTime, ttl))
		f.applier.Err = fmt.Errorf("%w: expected 1, got 2", committer.ErrVersionConflict)

		_, err := f.interactor.Execute(ctx, &Request{QuoteID: "quote-1", PaymentRef: "pay-1"})
		assert.ErrorIs(t, err, domain.ErrVersionConflict)
		assert.Empty(t, f.observer.Consumed)
	})

	t.Run("row deleted concurrently", func(t *testing.T) {
		f := setup(testutil.LockedQuote("quote-1", testutil.ReferenceTime, ttl))
		f.applier.Err = committer.ErrRowNotFound

		_, err := f.interactor.Execute(ctx, &Request{QuoteID: "quote-1", PaymentRef: "pay-1"})
		assert.ErrorIs(t, err, domain.ErrQuoteNotFound)
	})

	t.Run("other commit failures", func(t *testing.T) {
		f := setup(testutil.LockedQuote("quote-1", testutil.ReferenceTime, ttl))
		f.applier.Err = errors.New("deadline exceeded")

		_, err := f.interactor.Execute(ctx, &Request{QuoteID: "quote-1", PaymentRef: "pay-1"})
		assert.ErrorIs(t, err, f.applier.Err)
	})
}
