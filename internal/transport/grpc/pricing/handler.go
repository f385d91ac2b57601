// Package pricing is the gRPC surface of the pricing service.
package pricing

import (
	"context"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/checkout-pricing-service/internal/app/gateway/queries/detect_provider"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/queries/get_quote"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/queries/list_plan_options"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/queries/preview_price"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/queries/validate_promo"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/usecases/consume_quote"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/usecases/lock_quote"
)

// Handler implements PricingServiceServer.
// It's a thin coordinator that delegates to use cases and queries.
type Handler struct {
	// Commands
	lockQuote    *lock_quote.Interactor
	consumeQuote *consume_quote.Interactor

	// Queries
	preview        *preview_price.Query
	validatePromo  *validate_promo.Query
	planOptions    *list_plan_options.Query
	getQuote       *get_quote.Query
	detectProvider *detect_provider.Query
}

var _ PricingServiceServer = (*Handler)(nil)

// NewHandler creates a new gRPC pricing handler.
func NewHandler(
	lockQuote *lock_quote.Interactor,
	consumeQuote *consume_quote.Interactor,
	preview *preview_price.Query,
	validatePromo *validate_promo.Query,
	planOptions *list_plan_options.Query,
	getQuote *get_quote.Query,
	detectProvider *detect_provider.Query,
) *Handler {
	return &Handler{
		lockQuote:      lockQuote,
		consumeQuote:   consumeQuote,
		preview:        preview,
		validatePromo:  validatePromo,
		planOptions:    planOptions,
		getQuote:       getQuote,
		detectProvider: detectProvider,
	}
}

// PreviewPrice prices an order. Unavailable prices are a normal reply.
func (h *Handler) PreviewPrice(ctx context.Context, req *PriceRequest) (*PriceReply, error) {
	if err := validatePriceRequest(req); err != nil {
		return nil, err
	}

	result, err := h.preview.Execute(ctx, &preview_price.Request{
		PackageID: strings.TrimSpace(req.PackageID),
		Months:    int(req.Months),
		Years:     int(req.Years),
		AddOns:    domain.AddOnSelections(req.AddOns),
		PromoCode: req.PromoCode,
	})
	if err != nil {
		return nil, logged(ctx, "Preview price failed", err)
	}
	return toPriceReply(result), nil
}

// ValidatePromo checks a promo code against an order.
func (h *Handler) ValidatePromo(ctx context.Context, req *ValidatePromoRequest) (*ValidatePromoReply, error) {
	if err := validateValidatePromoRequest(req); err != nil {
		return nil, err
	}

	res, err := h.validatePromo.Execute(ctx, &validate_promo.Request{
		Code:      req.Code,
		PackageID: strings.TrimSpace(req.PackageID),
		Months:    int(req.Months),
		Years:     int(req.Years),
		AddOns:    domain.AddOnSelections(req.AddOns),
	})
	if err != nil {
		return nil, logged(ctx, "Validate promo failed", err)
	}

	reply := &ValidatePromoReply{Promo: toPromo(res.Promo)}
	if res.Price != nil {
		reply.Price = toPriceReply(res.Price)
	}
	return reply, nil
}

// ListPlanOptions lists the subscription lengths of a package with prices.
func (h *Handler) ListPlanOptions(ctx context.Context, req *ListPlanOptionsRequest) (*ListPlanOptionsReply, error) {
	options, err := h.planOptions.Execute(ctx, &list_plan_options.Request{PackageID: strings.TrimSpace(req.PackageID)})
	if err != nil {
		return nil, logged(ctx, "List plan options failed", err)
	}
	return &ListPlanOptionsReply{Plans: toPlanOptions(options)}, nil
}

// LockQuote freezes the price of an order.
func (h *Handler) LockQuote(ctx context.Context, req *PriceRequest) (*QuoteReply, error) {
	if err := validatePriceRequest(req); err != nil {
		return nil, err
	}

	quote, err := h.lockQuote.Execute(ctx, &lock_quote.Request{
		PackageID: strings.TrimSpace(req.PackageID),
		Months:    int(req.Months),
		Years:     int(req.Years),
		AddOns:    domain.AddOnSelections(req.AddOns),
		PromoCode: req.PromoCode,
	})
	if err != nil {
		return nil, logged(ctx, "Lock quote failed", err)
	}
	return &QuoteReply{Quote: toQuote(quote)}, nil
}

// GetQuote returns a quote by id.
func (h *Handler) GetQuote(ctx context.Context, req *GetQuoteRequest) (*QuoteReply, error) {
	if err := validateQuoteID(req.QuoteID); err != nil {
		return nil, err
	}

	quote, err := h.getQuote.Execute(ctx, &get_quote.Request{QuoteID: strings.TrimSpace(req.QuoteID)})
	if err != nil {
		return nil, logged(ctx, "Get quote failed", err)
	}
	return &QuoteReply{Quote: toQuote(quote)}, nil
}

// ConsumeQuote marks a locked quote as charged.
func (h *Handler) ConsumeQuote(ctx context.Context, req *ConsumeQuoteRequest) (*QuoteReply, error) {
	if err := validateQuoteID(req.QuoteID); err != nil {
		return nil, err
	}

	quote, err := h.consumeQuote.Execute(ctx, &consume_quote.Request{
		QuoteID:    strings.TrimSpace(req.QuoteID),
		PaymentRef: req.PaymentRef,
	})
	if err != nil {
		return nil, logged(ctx, "Consume quote failed", err)
	}
	return &QuoteReply{Quote: toQuote(quote)}, nil
}

// DetectPaymentProvider reports the provider checkout should use.
func (h *Handler) DetectPaymentProvider(ctx context.Context, _ *DetectPaymentProviderRequest) (*DetectPaymentProviderReply, error) {
	detection, err := h.detectProvider.Execute(ctx)
	if err != nil {
		loggerWithContext(ctx).WithError(err).Error("Detect payment provider failed")
		return nil, status.Error(codes.Internal, "internal server error")
	}
	return &DetectPaymentProviderReply{Detection: detection}, nil
}

// logged maps err and logs it when it is not a known domain error.
func logged(ctx context.Context, msg string, err error) error {
	mapped := mapDomainErrorToGRPC(err)
	if status.Code(mapped) == codes.Internal {
		loggerWithContext(ctx).WithError(err).Error(msg)
	}
	return mapped
}
