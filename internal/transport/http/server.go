// Package http is the REST surface of the pricing service.
package http

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/light-bringer/checkout-pricing-service/internal/metrics"
)

// NewServer builds the echo instance with middleware and every route registered.
// m may be nil, in which case /metrics is not served.
func NewServer(pricing *PricingController, events *EventsHandler, m *metrics.Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: func() string {
			return fmt.Sprintf("rest-%s", uuid.New().String())
		},
	}))
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogError:     true,
		HandleError:  true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			entry := logrus.WithFields(logrus.Fields{
				"request_id": v.RequestID,
				"remote_ip":  v.RemoteIP,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
			})
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	if m != nil {
		e.Use(m.EchoMiddleware())
		e.GET("/metrics", echo.WrapHandler(m.Handler()))
	}

	e.GET("/health", pricing.Health)

	v1 := e.Group("/v1")
	v1.POST("/pricing/preview", pricing.PreviewPrice)
	v1.POST("/promos/validate", pricing.ValidatePromo)

	packages := v1.Group("/packages")
	packages.GET("/:id/plans", pricing.ListPlanOptions)
	packages.GET("/:id/add-ons", pricing.ListAddOns)
	packages.GET("/:id/price-list.xlsx", pricing.ExportPriceList)

	quotes := v1.Group("/quotes")
	quotes.POST("", pricing.LockQuote)
	quotes.GET("/:id", pricing.GetQuote)
	quotes.POST("/:id/consume", pricing.ConsumeQuote)

	v1.GET("/payment-providers", pricing.DetectPaymentProvider)
	v1.GET("/events", events.ListEvents)

	return e
}
