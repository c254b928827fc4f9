package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "nail_salon"

// Metrics holds the booking counters on a private registry. A nil *Metrics is
// a no-op.
type Metrics struct {
	registry *prometheus.Registry

	bookingCreated   *prometheus.CounterVec
	bookingConfirmed *prometheus.CounterVec
	bookingCancelled *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		bookingCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "booking_created_total",
				Help:      "Count of bookings created by initial status.",
			},
			[]string{"status"},
		),
		bookingConfirmed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "booking_confirmed_total",
				Help:      "Count of bookings confirmed by payment method.",
			},
			[]string{"method"},
		),
		bookingCancelled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "booking_cancelled_total",
				Help:      "Count of bookings cancelled by reason.",
			},
			[]string{"reason"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route and status.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}

	m.registry.MustRegister(
		m.bookingCreated,
		m.bookingConfirmed,
		m.bookingCancelled,
		m.requestDuration,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *Metrics) BookingCreated(status string) {
	if m == nil {
		return
	}
	m.bookingCreated.WithLabelValues(status).Inc()
}

func (m *Metrics) BookingConfirmed(method string) {
	if m == nil {
		return
	}
	m.bookingConfirmed.WithLabelValues(method).Inc()
}

func (m *Metrics) BookingCancelled(reason string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.bookingCancelled.WithLabelValues(reason).Add(float64(n))
}

// Middleware records request latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
