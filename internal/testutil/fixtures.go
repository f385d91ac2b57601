package testutil

import (
	"math/big"
	"time"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/checkout-pricing-service/internal/pkg/currency"
)

// SamplePackageID is the package used by SampleSnapshot.
const SamplePackageID = "pkg-business"

// SampleSnapshot is a package priced at 200 domain + 1000 package per year
// (100 a month) with 20% off 12 months and 30% off 24 months, and two add-ons.
func SampleSnapshot() *domain.CatalogSnapshot {
	maxPages := decimal.NewFromInt(3)
	return &domain.CatalogSnapshot{
		PackageID: SamplePackageID,
		Pricing: domain.PriceConfiguration{
			PackageID:    SamplePackageID,
			DomainPrice:  domain.MustMoney(200, 1),
			PackagePrice: domain.MustMoney(1000, 1),
		},
		Durations: []domain.DurationDiscountRow{
			{PackageID: SamplePackageID, DurationID: "d12", DurationMonths: 12, DiscountPercent: big.NewRat(20, 1), IsActive: true, SortOrder: 1},
			{PackageID: SamplePackageID, DurationID: "d24", DurationMonths: 24, DiscountPercent: big.NewRat(30, 1), IsActive: true, SortOrder: 2},
		},
		Plans: []domain.SubscriptionPlan{
			{Years: 1, Label: "1 Year", SortOrder: 1},
			{Years: 2, Label: "2 Years", SortOrder: 2},
		},
		AddOns: []domain.AddOnItem{
			{ID: "seo", Label: "SEO Setup", Kind: domain.AddOnFlat, Price: domain.MustMoney(40, 1), SortOrder: 1},
			{ID: "pages", Label: "Extra Page", Kind: domain.AddOnPerUnit, Price: domain.MustMoney(10, 1), Unit: "page", UnitStep: decimal.NewFromInt(1), MaxQuantity: &maxPages, SortOrder: 2},
		},
	}
}

// FlatPromo returns an active flat promo code.
func FlatPromo(code string, amount int64) domain.PromoCode {
	return domain.PromoCode{
		ID:       "promo-" + code,
		Code:     code,
		Name:     code + " promo",
		IsActive: true,
		Rule:     domain.PromoRule{Type: domain.PromoFlat, Value: big.NewRat(amount, 1)},
	}
}

// IDRConverter converts USD to IDR at 16000 with no decimals.
func IDRConverter() *currency.Converter {
	c, err := currency.NewConverter(currency.Config{
		BaseCurrency:    "USD",
		DisplayCurrency: "IDR",
		Locale:          "id",
		Rate:            decimal.NewFromInt(16000),
	})
	if err != nil {
		panic(err)
	}
	return c
}

// NewEngine returns an engine converting with IDRConverter.
func NewEngine() *domain.Engine {
	return domain.NewEngine(domain.NewPricingCalculator(), IDRConverter())
}

// Builtins returns the builtin add-ons at the default price.
func Builtins() []domain.AddOnItem {
	return []domain.AddOnItem{domain.BuiltinEditingWebsite(domain.MustMoney(125, 4))}
}

// LockedQuote prices the sample snapshot for 12 months and locks it.
func LockedQuote(id string, now time.Time, ttl time.Duration) *domain.Quote {
	res := NewEngine().Price(domain.OrderPricingInput{
		Snapshot:   SampleSnapshot(),
		Months:     12,
		Selections: domain.AddOnSelections{"seo": decimal.NewFromInt(1)},
		Now:        now,
	})
	q, err := domain.NewQuote(id, res, now, ttl)
	if err != nil {
		panic(err)
	}
	q.ClearEvents()
	return q
}

// Qty parses a decimal quantity literal.
func Qty(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Quantities renders selections as canonical decimal strings for comparison.
func Quantities(sel domain.AddOnSelections) map[string]string {
	out := make(map[string]string, len(sel))
	for id, q := range sel {
		out[id] = q.String()
	}
	return out
}
