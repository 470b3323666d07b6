package prometheus

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type PrometheusAdapter struct {
	requestsTotal      *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	bookingTransitions *prometheus.CounterVec
}

func NewPrometheusAdapter(reg prometheus.Registerer) *PrometheusAdapter {
	a := &PrometheusAdapter{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bike_rental_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bike_rental_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		bookingTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bike_rental_booking_transitions_total",
				Help: "Booking status transitions by target status",
			},
			[]string{"status"},
		),
	}

	reg.MustRegister(a.requestsTotal, a.requestDuration, a.bookingTransitions)
	return a
}

func (a *PrometheusAdapter) RecordMetrics(c *gin.Context, start time.Time) {
	path := c.FullPath()
	if path == "" {
		path = "unmatched"
	}
	status := strconv.Itoa(c.Writer.Status())

	a.requestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	a.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
}

func (a *PrometheusAdapter) RecordBookingTransition(status string) {
	a.bookingTransitions.WithLabelValues(status).Inc()
}
