package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Order lifecycle metrics
	OrderTransitionsTotal    *prometheus.CounterVec
	TransitionsRejectedTotal *prometheus.CounterVec
	PaymentsConfirmedTotal   *prometheus.CounterVec

	// Notification metrics
	NotificationsEmittedTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered.
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = "prefabworks"
	}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),
		OrderTransitionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "order",
				Name:      "transitions_total",
				Help:      "Total number of accepted order status transitions",
			},
			[]string{"from", "to"},
		),
		TransitionsRejectedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "order",
				Name:      "transitions_rejected_total",
				Help:      "Total number of rejected order or payment transitions",
			},
			[]string{"reason"},
		),
		PaymentsConfirmedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "payment",
				Name:      "confirmed_total",
				Help:      "Total number of confirmed payments",
			},
			[]string{"stage"},
		),
		NotificationsEmittedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "notification",
				Name:      "emitted_total",
				Help:      "Total number of notifications emitted",
			},
			[]string{"kind", "recipient"},
		),
	}
}

// RecordHTTPRequest records a completed HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordTransition records an accepted order status transition.
func (m *Metrics) RecordTransition(from, to string) {
	m.OrderTransitionsTotal.WithLabelValues(from, to).Inc()
}

// RecordRejection records a rejected transition by reason.
func (m *Metrics) RecordRejection(reason string) {
	m.TransitionsRejectedTotal.WithLabelValues(reason).Inc()
}

// RecordPayment records a confirmed payment. Full payments use stage "full".
func (m *Metrics) RecordPayment(stage string) {
	m.PaymentsConfirmedTotal.WithLabelValues(stage).Inc()
}

// RecordNotification records an emitted notification.
func (m *Metrics) RecordNotification(kind, recipient string) {
	m.NotificationsEmittedTotal.WithLabelValues(kind, recipient).Inc()
}
