package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Task run outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the task run collectors.
type Metrics struct {
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the task collectors and registers them on reg when it is non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sitepipe",
			Name:      "task_runs_total",
			Help:      "Task runs, by task and outcome.",
		}, []string{"task", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sitepipe",
			Name:      "task_duration_seconds",
			Help:      "Task run duration.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"task"}),
	}
	if reg != nil {
		reg.MustRegister(m.runs, m.duration)
	}
	return m
}

// Observe records one finished run.
func (m *Metrics) Observe(task string, elapsed time.Duration, failed bool) {
	outcome := OutcomeSuccess
	if failed {
		outcome = OutcomeFailure
	}
	m.runs.WithLabelValues(task, outcome).Inc()
	m.duration.WithLabelValues(task).Observe(elapsed.Seconds())
}
