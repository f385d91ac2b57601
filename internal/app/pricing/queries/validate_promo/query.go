package validate_promo

import (
	"context"

	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/queries/preview_price"
)

// Request is the order a promo code is checked against.
type Request struct {
	Code      string
	PackageID string
	Months    int
	Years     int
	AddOns    domain.AddOnSelections
}

// Response carries the promo outcome and the order total it was computed from.
type Response struct {
	Promo *domain.PromoResult
	Price *domain.OrderPricingResult
}

// Query validates a promo code against the current price of an order.
type Query struct {
	preview *preview_price.Query
}

// NewQuery creates a new validate promo query.
func NewQuery(preview *preview_price.Query) *Query {
	return &Query{preview: preview}
}

// Execute prices the order with the code applied. An empty code is rejected without
// touching storage.
func (q *Query) Execute(ctx context.Context, req *Request) (*Response, error) {
	if domain.NormalizeCode(req.Code) == "" {
		return &Response{Promo: &domain.PromoResult{Reason: domain.PromoReasonEmpty}}, nil
	}

	price, err := q.preview.Execute(ctx, &preview_price.Request{
		PackageID: req.PackageID,
		Months:    req.Months,
		Years:     req.Years,
		AddOns:    req.AddOns,
		PromoCode: req.Code,
	})
	if err != nil {
		return nil, err
	}
	return &Response{Promo: price.Promo, Price: price}, nil
}
