package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBookingCounters(t *testing.T) {
	m := New()

	m.BookingCreated("pending")
	m.BookingCreated("pending")
	m.BookingConfirmed("ath")
	m.BookingCancelled("payment_expired", 3)
	m.BookingCancelled("client", 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingCreated.WithLabelValues("pending")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingConfirmed.WithLabelValues("ath")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.bookingCancelled.WithLabelValues("payment_expired")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.bookingCancelled.WithLabelValues("client")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.BookingCreated("pending")
		m.BookingConfirmed("ath")
		m.BookingCancelled("client", 1)
	})
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.True(t, strings.Contains(body, `nail_salon_http_request_duration_seconds_count{method="GET",route="/ping",status="200"} 1`))
}
