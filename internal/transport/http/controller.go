package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/light-bringer/checkout-pricing-service/internal/app/gateway/queries/detect_provider"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/queries/get_quote"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/queries/list_add_ons"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/queries/list_plan_options"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/queries/preview_price"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/queries/validate_promo"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/usecases/consume_quote"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/usecases/lock_quote"
	"github.com/light-bringer/checkout-pricing-service/internal/logging"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// PricingController serves the pricing, quote and payment provider endpoints.
type PricingController struct {
	preview        *preview_price.Query
	validatePromo  *validate_promo.Query
	planOptions    *list_plan_options.Query
	addOns         *list_add_ons.Query
	getQuote       *get_quote.Query
	lockQuote      *lock_quote.Interactor
	consumeQuote   *consume_quote.Interactor
	detectProvider *detect_provider.Query
	presenter      Presenter
	logger         logrus.FieldLogger
}

// NewPricingController creates a new pricing controller.
func NewPricingController(
	preview *preview_price.Query,
	validatePromo *validate_promo.Query,
	planOptions *list_plan_options.Query,
	addOns *list_add_ons.Query,
	getQuote *get_quote.Query,
	lockQuote *lock_quote.Interactor,
	consumeQuote *consume_quote.Interactor,
	detectProvider *detect_provider.Query,
	presenter Presenter,
) *PricingController {
	return &PricingController{
		preview:        preview,
		validatePromo:  validatePromo,
		planOptions:    planOptions,
		addOns:         addOns,
		getQuote:       getQuote,
		lockQuote:      lockQuote,
		consumeQuote:   consumeQuote,
		detectProvider: detectProvider,
		presenter:      presenter,
		logger:         logging.NewModuleLogger("pricing-controller"),
	}
}

func (c *PricingController) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, &HealthResponse{Status: "ok"})
}

func (c *PricingController) PreviewPrice(ctx echo.Context) error {
	req, err := newPricingRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	result, err := c.preview.Execute(ctx.Request().Context(), &preview_price.Request{
		PackageID: req.PackageID,
		Months:    req.Months,
		Years:     req.Years,
		AddOns:    req.selections(),
		PromoCode: req.PromoCode,
	})
	if err != nil {
		return c.handleError(ctx, err, "Preview price failed")
	}
	return ctx.JSON(http.StatusOK, toPriceView(result, c.presenter))
}

func (c *PricingController) ValidatePromo(ctx echo.Context) error {
	req, err := newValidatePromoRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	res, err := c.validatePromo.Execute(ctx.Request().Context(), &validate_promo.Request{
		Code:      req.Code,
		PackageID: req.PackageID,
		Months:    req.Months,
		Years:     req.Years,
		AddOns:    domain.AddOnSelections(req.AddOns),
	})
	if err != nil {
		return c.handleError(ctx, err, "Validate promo failed")
	}

	resp := &ValidatePromoResponse{Promo: toPromoView(res.Promo)}
	if res.Price != nil {
		resp.Price = toPriceView(res.Price, c.presenter)
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (c *PricingController) ListPlanOptions(ctx echo.Context) error {
	options, err := c.planOptions.Execute(ctx.Request().Context(), &list_plan_options.Request{
		PackageID: strings.TrimSpace(ctx.Param("id")),
	})
	if err != nil {
		return c.handleError(ctx, err, "List plan options failed")
	}
	return ctx.JSON(http.StatusOK, toPlanOptionViews(options, c.presenter))
}

func (c *PricingController) ListAddOns(ctx echo.Context) error {
	items, err := c.addOns.Execute(ctx.Request().Context(), &list_add_ons.Request{
		PackageID: strings.TrimSpace(ctx.Param("id")),
	})
	if err != nil {
		return c.handleError(ctx, err, "List add-ons failed")
	}
	return ctx.JSON(http.StatusOK, toAddOnViews(items, c.presenter))
}

func (c *PricingController) ExportPriceList(ctx echo.Context) error {
	packageID := strings.TrimSpace(ctx.Param("id"))
	options, err := c.planOptions.Execute(ctx.Request().Context(), &list_plan_options.Request{PackageID: packageID})
	if err != nil {
		return c.handleError(ctx, err, "Export price list failed")
	}

	data, err := BuildPriceList(packageID, options, c.presenter)
	if err != nil {
		return c.handleError(ctx, err, "Export price list failed")
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "price-list-"+packageID+".xlsx"))
	return ctx.Blob(http.StatusOK, xlsxContentType, data)
}

func (c *PricingController) LockQuote(ctx echo.Context) error {
	req, err := newPricingRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	quote, err := c.lockQuote.Execute(ctx.Request().Context(), &lock_quote.Request{
		PackageID: req.PackageID,
		Months:    req.Months,
		Years:     req.Years,
		AddOns:    req.selections(),
		PromoCode: req.PromoCode,
	})
	if err != nil {
		return c.handleError(ctx, err, "Lock quote failed")
	}
	return ctx.JSON(http.StatusCreated, toQuoteView(quote, c.presenter))
}

func (c *PricingController) GetQuote(ctx echo.Context) error {
	quoteID := strings.TrimSpace(ctx.Param("id"))
	if quoteID == "" {
		return c.writeError(ctx, http.StatusBadRequest, errQuoteIDRequired.Error())
	}

	quote, err := c.getQuote.Execute(ctx.Request().Context(), &get_quote.Request{QuoteID: quoteID})
	if err != nil {
		return c.handleError(ctx, err, "Get quote failed")
	}
	return ctx.JSON(http.StatusOK, toQuoteView(quote, c.presenter))
}

func (c *PricingController) ConsumeQuote(ctx echo.Context) error {
	req, err := newConsumeQuoteRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	quote, err := c.consumeQuote.Execute(ctx.Request().Context(), &consume_quote.Request{
		QuoteID:    req.QuoteID,
		PaymentRef: req.PaymentRef,
	})
	if err != nil {
		return c.handleError(ctx, err, "Consume quote failed")
	}
	return ctx.JSON(http.StatusOK, toQuoteView(quote, c.presenter))
}

func (c *PricingController) DetectPaymentProvider(ctx echo.Context) error {
	detection, err := c.detectProvider.Execute(ctx.Request().Context())
	if err != nil {
		c.logger.WithError(err).Error("Detect payment provider failed")
		return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
	}
	return ctx.JSON(http.StatusOK, ProviderView(*detection))
}

func (c *PricingController) handleError(ctx echo.Context, err error, msg string) error {
	if code, ok := statusFor(err); ok {
		return c.writeError(ctx, code, err.Error())
	}
	c.logger.WithError(err).WithField("request_id", requestID(ctx)).Error(msg)
	return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
}

func (c *PricingController) writeError(ctx echo.Context, statusCode int, message string) error {
	return ctx.JSON(statusCode, &ErrorResponse{Error: message})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, domain.ErrEmptyPackageID):
		return http.StatusBadRequest, true
	case errors.Is(err, domain.ErrQuoteNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, domain.ErrQuoteExpired):
		return http.StatusGone, true
	case errors.Is(err, domain.ErrQuoteAlreadyConsumed), errors.Is(err, domain.ErrVersionConflict):
		return http.StatusConflict, true
	case errors.Is(err, domain.ErrConfigurationUnavailable), errors.Is(err, domain.ErrPromoNotApplicable):
		return http.StatusUnprocessableEntity, true
	}
	return 0, false
}

func requestID(ctx echo.Context) string {
	return ctx.Response().Header().Get(echo.HeaderXRequestID)
}
