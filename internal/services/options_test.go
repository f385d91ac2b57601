package services

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/checkout-pricing-service/internal/config"
)

func pricingConfig() config.PricingConfig {
	return config.PricingConfig{
		BaseCurrency:        "USD",
		DisplayCurrency:     "IDR",
		DisplayLocale:       "id",
		ExchangeRate:        decimal.NewFromInt(16000),
		BuiltinEditingPrice: decimal.RequireFromString("31.25"),
	}
}

func TestNewConverter(t *testing.T) {
	t.Run("uses the configured rate", func(t *testing.T) {
		converter, err := NewConverter(pricingConfig())
		require.NoError(t, err)

		assert.Equal(t, "IDR", converter.Currency())
		assert.Equal(t, "16000000", converter.ToDisplayDecimal(big.NewRat(1000, 1)).String())
	})

	t.Run("rejects an unknown currency", func(t *testing.T) {
		cfg := pricingConfig()
		cfg.DisplayCurrency = "RUPIAH"

		_, err := NewConverter(cfg)
		assert.Error(t, err)
	})
}

func TestBuiltins(t *testing.T) {
	builtins := Builtins(pricingConfig())

	require.Len(t, builtins, 1)
	assert.Equal(t, domain.BuiltinEditingWebsiteID, builtins[0].ID)
	assert.Equal(t, "125/4", builtins[0].Price.Rat().RatString())
}
