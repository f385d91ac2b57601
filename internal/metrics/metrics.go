// Package metrics exposes Prometheus instrumentation for pricing, transports and the outbox relay.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/domain"
)

const namespace = "checkout_pricing"

// Metrics holds every collector of the service.
type Metrics struct {
	gatherer prometheus.Gatherer

	priceComputations *prometheus.CounterVec
	promoResults      *prometheus.CounterVec
	quotesLocked      prometheus.Counter
	quotesConsumed    prometheus.Counter
	quoteTotalBase    prometheus.Histogram

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	grpcRequests *prometheus.CounterVec
	grpcDuration *prometheus.HistogramVec

	outboxEvents *prometheus.CounterVec
}

var _ contracts.Observer = (*Metrics)(nil)

// New registers the collectors on reg. Passing a fresh prometheus.NewRegistry() keeps
// tests isolated.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		priceComputations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "price_computations_total",
			Help:      "Order prices computed, by pricing mode and availability.",
		}, []string{"mode", "available", "reason"}),
		promoResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "promo_results_total",
			Help:      "Promo code evaluations by outcome.",
		}, []string{"outcome"}),
		quotesLocked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_locked_total",
			Help:      "Quotes locked.",
		}),
		quotesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_consumed_total",
			Help:      "Quotes consumed by a payment.",
		}),
		quoteTotalBase: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "quote_total_base",
			Help:      "Locked quote totals in the base currency.",
			Buckets:   []float64{10, 50, 100, 250, 500, 1000, 2500, 5000},
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		grpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "grpc_requests_total",
			Help:      "gRPC requests by method and status code.",
		}, []string{"method", "code"}),
		grpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "grpc_request_duration_seconds",
			Help:      "gRPC request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		outboxEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_events_total",
			Help:      "Outbox events handled by the relay, by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.priceComputations,
		m.promoResults,
		m.quotesLocked,
		m.quotesConsumed,
		m.quoteTotalBase,
		m.httpRequests,
		m.httpDuration,
		m.grpcRequests,
		m.grpcDuration,
		m.outboxEvents,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) ObservePrice(result *domain.OrderPricingResult) {
	if result == nil {
		return
	}
	m.priceComputations.WithLabelValues(string(result.Mode), strconv.FormatBool(result.Available), result.UnavailableReason).Inc()
}

func (m *Metrics) ObservePromo(result *domain.PromoResult) {
	if result == nil {
		return
	}
	outcome := "applied"
	if !result.OK {
		outcome = string(result.Reason)
	}
	m.promoResults.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveQuoteLocked(quote *domain.Quote) {
	m.quotesLocked.Inc()
	m.quoteTotalBase.Observe(quote.TotalBase().Float64())
}

func (m *Metrics) ObserveQuoteConsumed(*domain.Quote) {
	m.quotesConsumed.Inc()
}

// ObserveGRPC records one unary call.
func (m *Metrics) ObserveGRPC(method, code string, elapsed time.Duration) {
	m.grpcRequests.WithLabelValues(method, code).Inc()
	m.grpcDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// ObserveOutbox records relay results: "published", "retried", "failed" or "deferred".
func (m *Metrics) ObserveOutbox(result string, n int) {
	if n <= 0 {
		return
	}
	m.outboxEvents.WithLabelValues(result).Add(float64(n))
}

// EchoMiddleware records request counts and latency by route template.
func (m *Metrics) EchoMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else if status < http.StatusBadRequest {
					status = http.StatusInternalServerError
				}
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			m.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
