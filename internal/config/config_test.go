package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "checkout-pricing-service", cfg.App.Name)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, "9090", cfg.GRPC.Port)
	assert.Equal(t, "USD", cfg.Pricing.BaseCurrency)
	assert.Equal(t, "IDR", cfg.Pricing.DisplayCurrency)
	assert.True(t, cfg.Pricing.ExchangeRate.Equal(decimal.NewFromInt(16000)))
	assert.True(t, cfg.Pricing.BuiltinEditingPrice.Equal(decimal.RequireFromString("31.25")))
	assert.Equal(t, 30*time.Minute, cfg.Quote.TTL)
	assert.Equal(t, time.Minute, cfg.Redis.CatalogCacheTTL)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "8181")
	t.Setenv("PRICING_EXCHANGE_RATE", "15500.5")
	t.Setenv("PRICING_DISPLAY_CURRENCY", "usd")
	t.Setenv("PRICING_DISPLAY_DECIMALS", "2")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("QUOTE_TTL", "15m")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8181", cfg.HTTP.Port)
	assert.True(t, cfg.Pricing.ExchangeRate.Equal(decimal.RequireFromString("15500.5")))
	assert.Equal(t, "USD", cfg.Pricing.DisplayCurrency)
	assert.Equal(t, int32(2), cfg.Pricing.DisplayDecimals)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 15*time.Minute, cfg.Quote.TTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"malformed rate", "PRICING_EXCHANGE_RATE", "abc"},
		{"zero rate", "PRICING_EXCHANGE_RATE", "0"},
		{"negative editing price", "PRICING_BUILTIN_EDITING_PRICE", "-1"},
		{"zero quote ttl", "QUOTE_TTL", "0s"},
		{"zero batch size", "OUTBOX_BATCH_SIZE", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
