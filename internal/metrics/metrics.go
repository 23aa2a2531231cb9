// Package metrics exposes Prometheus instrumentation for analysis
// cycles.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cycle outcome labels.
const (
	OutcomeCompleted = "completed"
	OutcomeSkipped   = "skipped"
	OutcomeFailed    = "failed"
)

// Recorder records analysis-cycle metrics.
type Recorder struct {
	cycles   *prometheus.CounterVec
	duration prometheus.Histogram
}

// New creates a Recorder registered on reg (the default registerer
// when nil).
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Recorder{
		cycles: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macro_analysis_cycles_total",
				Help: "Total number of analysis cycles by outcome",
			},
			[]string{"outcome"},
		),
		duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "macro_analysis_cycle_duration_seconds",
				Help:    "Duration of completed analysis cycles in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// RecordCycle records one finished cycle with its outcome.
func (r *Recorder) RecordCycle(outcome string) {
	r.cycles.WithLabelValues(outcome).Inc()
}

// RecordDuration records how long a completed cycle took.
func (r *Recorder) RecordDuration(seconds float64) {
	r.duration.Observe(seconds)
}
