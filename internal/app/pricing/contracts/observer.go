package contracts

import "github.com/light-bringer/checkout-pricing-service/internal/app/pricing/domain"

// Observer receives pricing outcomes for instrumentation.
type Observer interface {
	ObservePrice(result *domain.OrderPricingResult)
	ObservePromo(result *domain.PromoResult)
	ObserveQuoteLocked(quote *domain.Quote)
	ObserveQuoteConsumed(quote *domain.Quote)
}

// NopObserver discards everything.
type NopObserver struct{}

func (NopObserver) ObservePrice(*domain.OrderPricingResult) {}
func (NopObserver) ObservePromo(*domain.PromoResult)        {}
func (NopObserver) ObserveQuoteLocked(*domain.Quote)        {}
func (NopObserver) ObserveQuoteConsumed(*domain.Quote)      {}
