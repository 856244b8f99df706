package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business metrics track account and content operations
var (
	// AccountEventsTotal counts account operations by event and result
	AccountEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_events_total",
			Help: "Total number of account operations by event and result",
		},
		[]string{"event", "result"},
	)

	// IdentityCleanupsTotal counts compensating provider deletes by result
	IdentityCleanupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "identity_cleanups_total",
			Help: "Total number of provider account cleanups",
		},
		[]string{"result"}, // compensated, queued, orphaned, reconciled, failed
	)

	// IdentityCleanupsPending tracks the unresolved identity cleanup backlog
	IdentityCleanupsPending = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "identity_cleanups_pending",
			Help: "Unresolved identity cleanups remaining after the last reconciliation run",
		},
	)

	// UploadsTotal counts image uploads by bucket and result
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uploads_total",
			Help: "Total number of image uploads",
		},
		[]string{"bucket", "result"},
	)

	// UploadSize measures uploaded image size in bytes
	UploadSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upload_size_bytes",
			Help:    "Uploaded image size in bytes",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		},
		[]string{"bucket"},
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBConnectionsActive tracks active database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

// Provider circuit breaker metrics
var (
	// CircuitState is 0 closed, 1 half-open, 2 open
	CircuitState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"circuit"},
	)

	// CircuitRejectionsTotal counts calls refused without reaching the provider
	CircuitRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_rejections_total",
			Help: "Calls rejected by an open or saturated circuit breaker",
		},
		[]string{"circuit"},
	)
)
