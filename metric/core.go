package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Request outcome label values
const (
	StatusOK       = "ok"
	StatusError    = "error"
	StatusCanceled = "canceled"
)

// Metrics contains the core per-service request metrics
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlight        *prometheus.GaugeVec
	NotReadyTotal   *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all core metrics
func NewMetrics() *Metrics {
	return &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "conduit",
				Subsystem: "service",
				Name:      "requests_total",
				Help:      "Total number of requests dispatched, by outcome",
			},
			[]string{"service", "status"},
		),

		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "conduit",
				Subsystem: "service",
				Name:      "request_duration_seconds",
				Help:      "Time from dispatch to resolution",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"service"},
		),

		InFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "conduit",
				Subsystem: "service",
				Name:      "in_flight",
				Help:      "Requests currently in flight",
			},
			[]string{"service"},
		),

		NotReadyTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "conduit",
				Subsystem: "service",
				Name:      "not_ready_total",
				Help:      "Readiness polls that observed backpressure (Pending)",
			},
			[]string{"service"},
		),
	}
}

// collectors returns every core collector for bulk registration
func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.RequestsTotal,
		m.RequestDuration,
		m.InFlight,
		m.NotReadyTotal,
	}
}
