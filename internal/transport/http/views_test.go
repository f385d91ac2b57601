package http

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/queries/list_plan_options"
	"github.com/light-bringer/checkout-pricing-service/internal/testutil"
)

// doublingPresenter converts at a rate that disagrees with the engine's converter, so a
// view that re-converts base totals would show a different amount.
type doublingPresenter struct{}

func (doublingPresenter) ToDisplay(amountBase *big.Rat) *big.Rat {
	return new(big.Rat).Mul(amountBase, big.NewRat(2, 1))
}

func (doublingPresenter) Format(amountDisplay *big.Rat) string {
	return "fmt:" + amountDisplay.FloatString(2)
}

func (doublingPresenter) Currency() string { return "XTS" }

func TestToPriceView(t *testing.T) {
	t.Run("display total comes from the pricing result", func(t *testing.T) {
		r := &domain.OrderPricingResult{
			Available:       true,
			DiscountPercent: domain.PercentFromInt(0),
			TotalBase:       domain.MustMoney(1000, 1),
			TotalDisplay:    big.NewRat(1600050, 100),
			DisplayCurrency: "IDR",
		}

		v := toPriceView(r, doublingPresenter{})

		require.NotNil(t, v.TotalDisplay)
		assert.Equal(t, "16000.5", v.TotalDisplay.String())
		assert.Equal(t, "fmt:16000.50", v.TotalFormatted)
		assert.Empty(t, v.AddOnLines)
	})

	t.Run("unavailable price renders the placeholder", func(t *testing.T) {
		r := &domain.OrderPricingResult{Available: false, DiscountPercent: domain.PercentFromInt(0)}

		v := toPriceView(r, doublingPresenter{})

		assert.Nil(t, v.TotalDisplay)
		assert.Equal(t, "—", v.TotalFormatted)
	})
}

func TestToPlanOptionViews(t *testing.T) {
	options := []list_plan_options.PlanOption{
		{Years: 1, Months: 12, DiscountPercent: domain.PercentFromInt(20), Available: true, TotalBase: domain.MustMoney(960, 1), TotalDisplay: big.NewRat(15360000, 1)},
		{Years: 2, Months: 24, DiscountPercent: domain.PercentFromInt(0), Available: false},
	}

	views := toPlanOptionViews(options, doublingPresenter{})

	require.Len(t, views, 2)
	assert.Equal(t, "15360000", views[0].TotalDisplay.String())
	assert.Equal(t, "fmt:15360000.00", views[0].TotalFormatted)
	assert.Nil(t, views[1].TotalDisplay)
	assert.Equal(t, UnavailablePlaceholder, views[1].TotalFormatted)
}

func TestToAddOnViews(t *testing.T) {
	views := toAddOnViews(testutil.SampleSnapshot().AddOns, testutil.IDRConverter())

	require.Len(t, views, 2)
	assert.Equal(t, "Rp 640.000", views[0].PriceFormatted)
	assert.Equal(t, "1", views[1].UnitStep.String())
}
