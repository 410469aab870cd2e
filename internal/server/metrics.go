package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeOK      = "ok"
	outcomeInvalid = "invalid"
	outcomeError   = "error"
)

type metrics struct {
	calculations *prometheus.CounterVec
	duration     prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "loan_prepay",
			Name:      "calculations_total",
			Help:      "Schedule comparisons requested, by amortization method and outcome.",
		}, []string{"method", "outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "loan_prepay",
			Name:      "calculation_duration_seconds",
			Help:      "Time spent validating and computing a schedule comparison.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
	reg.MustRegister(m.calculations, m.duration)
	return m
}

func (m *metrics) observe(method, outcome string, elapsed time.Duration) {
	if method == "" {
		method = "unknown"
	}
	m.calculations.WithLabelValues(method, outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}
