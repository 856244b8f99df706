package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// guardRequestsTotal counts guard decisions by guard and result.
	guardRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_guard_requests_total",
			Help: "Guarded requests by guard (user, admin) and result",
		},
		[]string{"guard", "result"}, // result: success | unauthorized | forbidden | role_missing | error
	)

	// guardDuration tracks time spent verifying credentials and roles.
	guardDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "auth_guard_duration_seconds",
			Help:    "Credential verification and role lookup duration by guard",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 2.5},
		},
		[]string{"guard"},
	)

	// forbiddenAttempts counts authenticated non-admin calls to admin routes.
	forbiddenAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_forbidden_attempts_total",
			Help: "Non-admin requests to admin routes by method",
		},
		[]string{"method"},
	)
)

// RecordGuardResult records one guard decision.
func RecordGuardResult(guard, result string) {
	guardRequestsTotal.WithLabelValues(guard, result).Inc()
}

// RecordGuardDuration records how long a guard took to decide.
func RecordGuardDuration(guard string, durationSeconds float64) {
	guardDuration.WithLabelValues(guard).Observe(durationSeconds)
}

// RecordForbiddenAttempt records a forbidden access attempt.
func RecordForbiddenAttempt(method string) {
	forbiddenAttempts.WithLabelValues(method).Inc()
}
