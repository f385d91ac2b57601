// Package config loads service configuration from the environment, an optional .env
// file and an optional checkout-pricing.yaml.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	Log     LogConfig
	HTTP    ServerConfig
	GRPC    ServerConfig
	Spanner SpannerConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Pricing PricingConfig
	Quote   QuoteConfig
	Outbox  OutboxConfig
}

type AppConfig struct {
	Name string
}

type LogConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	Host string
	Port string
}

type SpannerConfig struct {
	Database string
}

// RedisConfig configures the catalog snapshot cache. An empty Addr disables it.
type RedisConfig struct {
	Addr            string
	Password        string
	DB              int
	CatalogCacheTTL time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// PricingConfig carries the injected exchange rate and display settings.
type PricingConfig struct {
	BaseCurrency        string
	DisplayCurrency     string
	DisplayLocale       string
	ExchangeRate        decimal.Decimal
	DisplayDecimals     int32
	BuiltinEditingPrice decimal.Decimal
}

type QuoteConfig struct {
	TTL time.Duration
}

type OutboxConfig struct {
	PollInterval  time.Duration
	BatchSize     int
	MaxRetries    int
	RetentionDays int
}

var defaults = map[string]interface{}{
	"app_name":                      "checkout-pricing-service",
	"log_level":                     "info",
	"log_format":                    "json",
	"http_host":                     "0.0.0.0",
	"http_port":                     "8080",
	"grpc_host":                     "0.0.0.0",
	"grpc_port":                     "9090",
	"spanner_database":              "projects/test-project/instances/dev-instance/databases/checkout-pricing-db",
	"redis_addr":                    "",
	"redis_password":                "",
	"redis_db":                      0,
	"catalog_cache_ttl":             "60s",
	"kafka_brokers":                 "localhost:9092",
	"kafka_topic":                   "checkout-pricing.events",
	"pricing_base_currency":         "USD",
	"pricing_display_currency":      "IDR",
	"pricing_display_locale":        "id",
	"pricing_exchange_rate":         "16000",
	"pricing_display_decimals":      0,
	"pricing_builtin_editing_price": "31.25",
	"quote_ttl":                     "30m",
	"outbox_poll_interval":          "2s",
	"outbox_batch_size":             100,
	"outbox_max_retries":            5,
	"outbox_retention_days":         7,
}

// Load reads configuration. Environment variables override the config file, which
// overrides the defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("checkout-pricing")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/checkout-pricing")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(v.GetString("pricing_exchange_rate")))
	if err != nil {
		return nil, fmt.Errorf("invalid PRICING_EXCHANGE_RATE: %w", err)
	}
	editing, err := decimal.NewFromString(strings.TrimSpace(v.GetString("pricing_builtin_editing_price")))
	if err != nil {
		return nil, fmt.Errorf("invalid PRICING_BUILTIN_EDITING_PRICE: %w", err)
	}

	cfg := &Config{
		App: AppConfig{Name: v.GetString("app_name")},
		Log: LogConfig{
			Level:  v.GetString("log_level"),
			Format: v.GetString("log_format"),
		},
		HTTP: ServerConfig{Host: v.GetString("http_host"), Port: v.GetString("http_port")},
		GRPC: ServerConfig{Host: v.GetString("grpc_host"), Port: v.GetString("grpc_port")},
		Spanner: SpannerConfig{
			Database: v.GetString("spanner_database"),
		},
		Redis: RedisConfig{
			Addr:            v.GetString("redis_addr"),
			Password:        v.GetString("redis_password"),
			DB:              v.GetInt("redis_db"),
			CatalogCacheTTL: v.GetDuration("catalog_cache_ttl"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("kafka_brokers")),
			Topic:   v.GetString("kafka_topic"),
		},
		Pricing: PricingConfig{
			BaseCurrency:        strings.ToUpper(v.GetString("pricing_base_currency")),
			DisplayCurrency:     strings.ToUpper(v.GetString("pricing_display_currency")),
			DisplayLocale:       v.GetString("pricing_display_locale"),
			ExchangeRate:        rate,
			DisplayDecimals:     v.GetInt32("pricing_display_decimals"),
			BuiltinEditingPrice: editing,
		},
		Quote: QuoteConfig{TTL: v.GetDuration("quote_ttl")},
		Outbox: OutboxConfig{
			PollInterval:  v.GetDuration("outbox_poll_interval"),
			BatchSize:     v.GetInt("outbox_batch_size"),
			MaxRetries:    v.GetInt("outbox_max_retries"),
			RetentionDays: v.GetInt("outbox_retention_days"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail at first use.
func (c *Config) Validate() error {
	if c.Spanner.Database == "" {
		return errors.New("SPANNER_DATABASE is required")
	}
	if !c.Pricing.ExchangeRate.IsPositive() {
		return errors.New("PRICING_EXCHANGE_RATE must be positive")
	}
	if c.Pricing.BuiltinEditingPrice.IsNegative() {
		return errors.New("PRICING_BUILTIN_EDITING_PRICE cannot be negative")
	}
	if c.Quote.TTL <= 0 {
		return errors.New("QUOTE_TTL must be positive")
	}
	if c.Outbox.BatchSize <= 0 {
		return errors.New("OUTBOX_BATCH_SIZE must be positive")
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
