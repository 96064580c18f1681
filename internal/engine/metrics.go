package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts refinement work. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	// Runs by final status: "ok" or the RuntimeErrorCode.
	Runs *prometheus.CounterVec

	// Passes by outcome: "ok", "precision", "steps" or "error".
	Passes *prometheus.CounterVec

	// Refinement steps taken per pass.
	Steps prometheus.Histogram

	// Digits used by the pass that finished a successful run.
	FinalDigits prometheus.Histogram
}

// NewMetrics registers the refinement metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lazyreals_runs_total",
			Help: "Refinement runs by final status",
		}, []string{"status"}),

		Passes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lazyreals_passes_total",
			Help: "Refinement passes by outcome",
		}, []string{"outcome"}),

		Steps: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "lazyreals_pass_steps",
			Help:    "Refinement steps taken per pass",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),

		FinalDigits: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "lazyreals_final_digits",
			Help:    "Significant digits used by the last pass of a successful run",
			Buckets: prometheus.ExponentialBuckets(2, 2, 14),
		}),
	}
}

// ObservePass records one finished pass.
func (m *Metrics) ObservePass(outcome string, steps int) {
	if m != nil {
		m.Passes.WithLabelValues(outcome).Inc()
		m.Steps.Observe(float64(steps))
	}
}

// ObserveRun records one finished run. digits is ignored unless status is
// "ok".
func (m *Metrics) ObserveRun(status string, digits int) {
	if m != nil {
		m.Runs.WithLabelValues(status).Inc()
		if status == "ok" {
			m.FinalDigits.Observe(float64(digits))
		}
	}
}
