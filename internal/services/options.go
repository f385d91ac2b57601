package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/light-bringer/checkout-pricing-service/internal/app/gateway/queries/detect_provider"
	gatewayrepo "github.com/light-bringer/checkout-pricing-service/internal/app/gateway/repo"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/queries/get_quote"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/queries/list_add_ons"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/queries/list_plan_options"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/queries/preview_price"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/queries/validate_promo"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/usecases/consume_quote"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/usecases/lock_quote"
	"github.com/light-bringer/checkout-pricing-service/internal/cache"
	"github.com/light-bringer/checkout-pricing-service/internal/config"
	"github.com/light-bringer/checkout-pricing-service/internal/metrics"
	"github.com/light-bringer/checkout-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/checkout-pricing-service/internal/pkg/committer"
	"github.com/light-bringer/checkout-pricing-service/internal/pkg/currency"
	grpcpricing "github.com/light-bringer/checkout-pricing-service/internal/transport/grpc/pricing"
	httptransport "github.com/light-bringer/checkout-pricing-service/internal/transport/http"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	RedisClient   *redis.Client
	Committer     *committer.Committer
	Converter     *currency.Converter
	Metrics       *metrics.Metrics

	PricingHandler *grpcpricing.Handler
	HTTPServer     *echo.Echo
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config) (*ServiceOptions, error) {
	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, cfg.Spanner.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}
	opts := &ServiceOptions{SpannerClient: spannerClient}

	// 2. Create infrastructure components
	clk := clock.NewRealClock()
	opts.Committer = committer.NewCommitter(spannerClient)
	opts.Metrics = metrics.New(prometheus.NewRegistry())

	converter, err := NewConverter(cfg.Pricing)
	if err != nil {
		opts.Close()
		return nil, err
	}
	opts.Converter = converter
	engine := domain.NewEngine(domain.NewPricingCalculator(), converter)
	builtins := Builtins(cfg.Pricing)

	// 3. Create repositories
	var catalog contracts.CatalogReader = repo.NewCatalogRepo(spannerClient)
	if cfg.Redis.Addr != "" {
		opts.RedisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		catalog = cache.NewCatalogCache(opts.RedisClient, catalog, cfg.Redis.CatalogCacheTTL)
		logrus.WithField("addr", cfg.Redis.Addr).Info("Catalog cache enabled")
	}
	promoRepo := repo.NewPromoRepo(spannerClient)
	quoteRepo := repo.NewQuoteRepo(spannerClient)
	outboxRepo := repo.NewOutboxRepo()
	eventsReadModel := repo.NewEventsReadModel(spannerClient)
	settingsRepo := gatewayrepo.NewSettingsRepo(spannerClient)

	// 4. Create query use cases (read operations)
	previewQuery := preview_price.NewQuery(catalog, promoRepo, engine, builtins, clk, opts.Metrics)
	validatePromoQuery := validate_promo.NewQuery(previewQuery)
	planOptionsQuery := list_plan_options.NewQuery(catalog, engine, clk)
	addOnsQuery := list_add_ons.NewQuery(catalog, builtins)
	getQuoteQuery := get_quote.NewQuery(quoteRepo)
	listEventsQuery := list_events.NewQuery(eventsReadModel)
	detectProviderQuery := detect_provider.NewQuery(settingsRepo)

	// 5. Create command use cases (write operations)
	lockQuoteUseCase := lock_quote.NewInteractor(previewQuery, quoteRepo, outboxRepo, opts.Committer, clk, cfg.Quote.TTL, opts.Metrics)
	consumeQuoteUseCase := consume_quote.NewInteractor(quoteRepo, outboxRepo, opts.Committer, clk, opts.Metrics)

	// 6. Create gRPC handler
	opts.PricingHandler = grpcpricing.NewHandler(
		lockQuoteUseCase,
		consumeQuoteUseCase,
		previewQuery,
		validatePromoQuery,
		planOptionsQuery,
		getQuoteQuery,
		detectProviderQuery,
	)

	// 7. Create HTTP server
	pricingController := httptransport.NewPricingController(
		previewQuery,
		validatePromoQuery,
		planOptionsQuery,
		addOnsQuery,
		getQuoteQuery,
		lockQuoteUseCase,
		consumeQuoteUseCase,
		detectProviderQuery,
		converter,
	)
	opts.HTTPServer = httptransport.NewServer(pricingController, httptransport.NewEventsHandler(listEventsQuery), opts.Metrics)

	return opts, nil
}

// NewConverter builds the display converter from the pricing settings.
func NewConverter(cfg config.PricingConfig) (*currency.Converter, error) {
	converter, err := currency.NewConverter(currency.Config{
		BaseCurrency:    cfg.BaseCurrency,
		DisplayCurrency: cfg.DisplayCurrency,
		Locale:          cfg.DisplayLocale,
		Rate:            cfg.ExchangeRate,
		Decimals:        cfg.DisplayDecimals,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create currency converter: %w", err)
	}
	return converter, nil
}

// Builtins returns the add-ons offered on every package.
func Builtins(cfg config.PricingConfig) []domain.AddOnItem {
	return []domain.AddOnItem{
		domain.BuiltinEditingWebsite(domain.NewMoneyFromRat(cfg.BuiltinEditingPrice.Rat())),
	}
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.RedisClient != nil {
		if err := s.RedisClient.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close Redis client")
		}
	}
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
