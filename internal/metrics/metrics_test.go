package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/domain"
	pricingtestutil "github.com/light-bringer/checkout-pricing-service/internal/testutil"
)

func TestMetrics_Observer(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObservePrice(&domain.OrderPricingResult{Mode: domain.ModeDurationTable, Available: true})
	m.ObservePrice(&domain.OrderPricingResult{Available: false, UnavailableReason: "configuration_unavailable"})
	m.ObservePrice(nil)
	m.ObservePromo(&domain.PromoResult{OK: true})
	m.ObservePromo(&domain.PromoResult{Reason: domain.PromoReasonExpired})
	m.ObservePromo(&domain.PromoResult{Reason: domain.PromoReasonExpired})

	quote := pricingtestutil.LockedQuote("q-1", pricingtestutil.ReferenceTime, time.Hour)
	m.ObserveQuoteLocked(quote)
	m.ObserveQuoteConsumed(quote)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.priceComputations.WithLabelValues("duration_table", "true", "")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.priceComputations.WithLabelValues("", "false", "configuration_unavailable")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.promoResults.WithLabelValues("applied")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.promoResults.WithLabelValues("Expired")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.quotesLocked))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.quotesConsumed))
	assert.Equal(t, 1, testutil.CollectAndCount(m.quoteTotalBase))
}

func TestMetrics_TransportAndOutbox(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveGRPC("/pricing.v1.PricingService/PreviewPrice", "OK", 5*time.Millisecond)
	m.ObserveOutbox("published", 3)
	m.ObserveOutbox("failed", 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.grpcRequests.WithLabelValues("/pricing.v1.PricingService/PreviewPrice", "OK")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.outboxEvents.WithLabelValues("published")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.outboxEvents))
}

func TestMetrics_EchoMiddleware(t *testing.T) {
	m := New(prometheus.NewRegistry())
	e := echo.New()
	e.Use(m.EchoMiddleware())
	e.GET("/v1/quotes/:id", func(c echo.Context) error {
		if c.Param("id") == "missing" {
			return echo.NewHTTPError(http.StatusNotFound, "quote not found")
		}
		return c.NoContent(http.StatusOK)
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	for _, id := range []string{"a", "b", "missing"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/quotes/"+id, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/v1/quotes/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/v1/quotes/:id", "404")))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "checkout_pricing_http_requests_total"))
}
