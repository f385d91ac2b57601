package http

import (
	"errors"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/queries/list_events"
)

var (
	errPackageIDRequired = errors.New("package_id is required")
	errQuoteIDRequired   = errors.New("quote id is required")
	errNegativeDuration  = errors.New("years and months cannot be negative")
	errNegativeQuantity  = errors.New("add-on quantities cannot be negative")
)

// PricingRequest is the body of POST /v1/pricing/preview and POST /v1/quotes.
type PricingRequest struct {
	PackageID string                     `json:"package_id"`
	Years     int                        `json:"years"`
	Months    int                        `json:"months"`
	AddOns    map[string]decimal.Decimal `json:"add_ons"`
	PromoCode string                     `json:"promo_code"`
}

func newPricingRequestFromContext(c echo.Context) (*PricingRequest, error) {
	req := &PricingRequest{}
	if err := c.Bind(req); err != nil {
		return nil, err
	}
	req.PackageID = strings.TrimSpace(req.PackageID)
	return req, nil
}

// Validate checks the request shape. Unknown add-on ids are accepted and ignored.
func (r *PricingRequest) Validate() error {
	if r.PackageID == "" {
		return errPackageIDRequired
	}
	if r.Years < 0 || r.Months < 0 {
		return errNegativeDuration
	}
	for _, qty := range r.AddOns {
		if qty.IsNegative() {
			return errNegativeQuantity
		}
	}
	return nil
}

func (r *PricingRequest) selections() domain.AddOnSelections {
	return domain.AddOnSelections(r.AddOns)
}

// ValidatePromoRequest is the body of POST /v1/promos/validate.
type ValidatePromoRequest struct {
	Code      string                     `json:"code"`
	PackageID string                     `json:"package_id"`
	Years     int                        `json:"years"`
	Months    int                        `json:"months"`
	AddOns    map[string]decimal.Decimal `json:"add_ons"`
}

func newValidatePromoRequestFromContext(c echo.Context) (*ValidatePromoRequest, error) {
	req := &ValidatePromoRequest{}
	if err := c.Bind(req); err != nil {
		return nil, err
	}
	req.PackageID = strings.TrimSpace(req.PackageID)
	return req, nil
}

// Validate only requires a package when a code is given; an empty code is answered
// without pricing anything.
func (r *ValidatePromoRequest) Validate() error {
	if strings.TrimSpace(r.Code) != "" && r.PackageID == "" {
		return errPackageIDRequired
	}
	if r.Years < 0 || r.Months < 0 {
		return errNegativeDuration
	}
	for _, qty := range r.AddOns {
		if qty.IsNegative() {
			return errNegativeQuantity
		}
	}
	return nil
}

// ConsumeQuoteRequest is the body of POST /v1/quotes/:id/consume.
type ConsumeQuoteRequest struct {
	QuoteID    string `param:"id" json:"-"`
	PaymentRef string `json:"payment_ref"`
}

func newConsumeQuoteRequestFromContext(c echo.Context) (*ConsumeQuoteRequest, error) {
	req := &ConsumeQuoteRequest{}
	if err := c.Bind(req); err != nil {
		return nil, err
	}
	req.QuoteID = strings.TrimSpace(c.Param("id"))
	return req, nil
}

// Validate checks the request shape.
func (r *ConsumeQuoteRequest) Validate() error {
	if r.QuoteID == "" {
		return errQuoteIDRequired
	}
	return nil
}

func listEventsRequestFromContext(c echo.Context) *list_events.Request {
	req := &list_events.Request{}
	if v := c.QueryParam("event_type"); v != "" {
		req.EventType = &v
	}
	if v := c.QueryParam("aggregate_id"); v != "" {
		req.AggregateID = &v
	}
	if v := c.QueryParam("status"); v != "" {
		req.Status = &v
	}
	if v := c.QueryParam("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			req.Limit = limit
		}
	}
	return req
}
