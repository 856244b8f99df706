package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"techup-blog/internal/pkg/config"
)

// WorkerMetrics provides Prometheus metrics for the reconciliation worker.
// It embeds ConfigMetrics for configuration monitoring.
//
// Worker-specific metrics:
//   - worker_reconcile_runs_total: Runs by status (success/failure)
//   - worker_reconcile_duration_seconds: Duration histogram of a run
//   - worker_reconcile_resolved_total: Provider accounts removed
//   - worker_reconcile_last_success_timestamp: Unix time of the last successful run
type WorkerMetrics struct {
	*config.ConfigMetrics

	RunsTotal            *prometheus.CounterVec
	RunDurationSeconds   prometheus.Histogram
	ResolvedTotal        prometheus.Counter
	LastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics creates and registers the worker metrics via promauto.
// Call it once per process.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		RunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_reconcile_runs_total",
			Help: "Total number of reconcile runs by status (success/failure)",
		}, []string{"status"}),

		RunDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_reconcile_duration_seconds",
			Help:    "Duration of reconcile runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120},
		}),

		ResolvedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_reconcile_resolved_total",
			Help: "Total number of orphaned provider accounts removed",
		}),

		LastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_reconcile_last_success_timestamp",
			Help: "Unix timestamp of the last successful reconcile run",
		}),
	}
}

// RecordRun increments the run counter for status ("success" or "failure").
func (m *WorkerMetrics) RecordRun(status string) {
	m.RunsTotal.WithLabelValues(status).Inc()
}

// RecordDuration observes a run duration in seconds.
func (m *WorkerMetrics) RecordDuration(seconds float64) {
	m.RunDurationSeconds.Observe(seconds)
}

// RecordResolved adds count removed accounts.
func (m *WorkerMetrics) RecordResolved(count int) {
	m.ResolvedTotal.Add(float64(count))
}

// RecordLastSuccess stamps the current time as the last successful run.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.LastSuccessTimestamp.SetToCurrentTime()
}
