package domain

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRate converts at a whole-number rate without rounding.
type fixedRate struct {
	rate     int64
	currency string
}

func (f fixedRate) ToDisplay(amount *big.Rat) *big.Rat {
	return new(big.Rat).Mul(amount, big.NewRat(f.rate, 1))
}

func (f fixedRate) Currency() string { return f.currency }

func testSnapshot() *CatalogSnapshot {
	return &CatalogSnapshot{
		PackageID: "pkg-1",
		Pricing:   PriceConfiguration{PackageID: "pkg-1", DomainPrice: MustMoney(200, 1), PackagePrice: MustMoney(1000, 1)},
		Durations: []DurationDiscountRow{activeRow(12, 20), activeRow(24, 30)},
		AddOns: []AddOnItem{
			{ID: "seo", Label: "SEO", Kind: AddOnFlat, Price: MustMoney(40, 1), SortOrder: 1},
			perUnit("pages", MustMoney(10, 1), "1", qtyPtr("3")),
		},
	}
}

func TestEngine_Price(t *testing.T) {
	engine := NewEngine(NewPricingCalculator(), fixedRate{rate: 16000, currency: "IDR"})
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("subtotal plus add-ons", func(t *testing.T) {
		res := engine.Price(OrderPricingInput{
			Snapshot:   testSnapshot(),
			Months:     12,
			Selections: AddOnSelections{"seo": qty("1"), "pages": qty("2")},
			Now:        now,
		})

		require.True(t, res.Available)
		assert.Equal(t, ModeDurationTable, res.Mode)
		assert.True(t, res.SubtotalBase.Equals(MustMoney(960, 1)))
		assert.True(t, res.AddOnsBase.Equals(MustMoney(60, 1)))
		assert.True(t, res.TotalBase.Equals(MustMoney(1020, 1)))
		assert.True(t, res.DiscountApplied.IsZero())
		assert.Equal(t, 0, res.TotalDisplay.Cmp(big.NewRat(16320000, 1)))
		assert.Equal(t, "IDR", res.DisplayCurrency)
		assert.Nil(t, res.Promo)
	})

	t.Run("promo is applied to subtotal plus add-ons", func(t *testing.T) {
		res := engine.Price(OrderPricingInput{
			Snapshot:   testSnapshot(),
			Months:     12,
			Selections: AddOnSelections{"seo": qty("1")},
			PromoCode:  "save100",
			Promos:     NewPromoCatalog(flatPromo("SAVE100", 100)),
			Now:        now,
		})

		require.True(t, res.Available)
		require.NotNil(t, res.Promo)
		assert.True(t, res.Promo.OK)
		assert.True(t, res.PreDiscountBase.Equals(MustMoney(1000, 1)))
		assert.True(t, res.DiscountApplied.Equals(MustMoney(100, 1)))
		assert.True(t, res.TotalBase.Equals(MustMoney(900, 1)))
	})

	t.Run("override plus add-ons", func(t *testing.T) {
		snap := testSnapshot()
		snap.Durations = nil
		snap.Plans = []SubscriptionPlan{{Years: 1, PriceOverride: MustMoney(500, 1)}}

		res := engine.Price(OrderPricingInput{Snapshot: snap, Months: 12, Selections: AddOnSelections{"seo": qty("1")}, Now: now})

		require.True(t, res.Available)
		assert.Equal(t, ModePlanOverride, res.Mode)
		assert.True(t, res.TotalBase.Equals(MustMoney(540, 1)))
	})

	t.Run("builtin add-on is merged into the catalog", func(t *testing.T) {
		res := engine.Price(OrderPricingInput{
			Snapshot:   testSnapshot(),
			Builtins:   []AddOnItem{BuiltinEditingWebsite(MustMoney(125, 4))},
			Months:     12,
			Selections: AddOnSelections{BuiltinEditingWebsiteID: qty("5")},
			Now:        now,
		})

		require.True(t, res.Available)
		require.Len(t, res.AddOnLines, 1)
		assert.Equal(t, "1", res.AddOnLines[0].Quantity.String())
		assert.True(t, res.AddOnsBase.Equals(MustMoney(125, 4)))
	})

	t.Run("missing domain price makes the order unavailable", func(t *testing.T) {
		snap := testSnapshot()
		snap.Pricing.DomainPrice = nil

		res := engine.Price(OrderPricingInput{Snapshot: snap, Months: 12, PromoCode: "SAVE100", Promos: NewPromoCatalog(flatPromo("SAVE100", 100)), Now: now})

		assert.False(t, res.Available)
		assert.Equal(t, "configuration_unavailable", res.UnavailableReason)
		assert.Nil(t, res.TotalBase)
		assert.Nil(t, res.TotalDisplay)
		require.NotNil(t, res.Promo)
		assert.Equal(t, PromoReasonUnavailable, res.Promo.Reason)
	})

	t.Run("nil snapshot", func(t *testing.T) {
		res := engine.Price(OrderPricingInput{Months: 12})
		assert.False(t, res.Available)
		assert.Equal(t, "configuration_unavailable", res.UnavailableReason)
	})

	t.Run("invalid duration", func(t *testing.T) {
		res := engine.Price(OrderPricingInput{Snapshot: testSnapshot(), Months: 0})
		assert.False(t, res.Available)
		assert.Equal(t, "invalid_duration", res.UnavailableReason)
	})

	t.Run("invalid add-on catalog", func(t *testing.T) {
		snap := testSnapshot()
		snap.AddOns = append(snap.AddOns, AddOnItem{ID: "bad", Kind: AddOnFlat, Price: MustMoney(-5, 1)})
		res := engine.Price(OrderPricingInput{Snapshot: snap, Months: 12, Selections: AddOnSelections{"bad": qty("1")}})
		assert.False(t, res.Available)
		assert.Equal(t, "invalid_amount", res.UnavailableReason)
	})

	t.Run("same inputs give the same result", func(t *testing.T) {
		in := OrderPricingInput{
			Snapshot:   testSnapshot(),
			Months:     24,
			Selections: AddOnSelections{"pages": qty("7")},
			PromoCode:  "SAVE100",
			Promos:     NewPromoCatalog(flatPromo("SAVE100", 100)),
			Now:        now,
		}
		assert.Equal(t, engine.Price(in), engine.Price(in))
	})

	t.Run("without converter", func(t *testing.T) {
		res := NewEngine(nil, nil).Price(OrderPricingInput{Snapshot: testSnapshot(), Months: 12})
		require.True(t, res.Available)
		assert.Nil(t, res.TotalDisplay)
		assert.Empty(t, res.DisplayCurrency)
	})
}
