package metrics

import (
	"time"
)

// RecordAccountEvent records the outcome of an account operation.
// Event is one of "register", "login", "reset_password".
func RecordAccountEvent(event, result string) {
	AccountEventsTotal.WithLabelValues(event, result).Inc()
}

// RecordIdentityCleanup records the outcome of a compensating provider delete.
func RecordIdentityCleanup(result string) {
	IdentityCleanupsTotal.WithLabelValues(result).Inc()
}

// SetIdentityCleanupsPending records the unresolved cleanup backlog left after a reconciliation run.
func SetIdentityCleanupsPending(n int) {
	IdentityCleanupsPending.Set(float64(n))
}

// RecordUpload records an image upload attempt.
// Size is only observed for successful uploads.
func RecordUpload(bucket string, size int64, success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	UploadsTotal.WithLabelValues(bucket, result).Inc()
	if success && size > 0 {
		UploadSize.WithLabelValues(bucket).Observe(float64(size))
	}
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "list_posts", "count_posts").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}

// SetCircuitState publishes the state of the named breaker.
func SetCircuitState(circuit string, state int) {
	CircuitState.WithLabelValues(circuit).Set(float64(state))
}

// RecordCircuitRejection counts a call the named breaker refused.
func RecordCircuitRejection(circuit string) {
	CircuitRejectionsTotal.WithLabelValues(circuit).Inc()
}
