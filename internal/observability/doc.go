// Package observability groups the service's logging, Prometheus metrics and
// OpenTelemetry tracing.
//
// Subpackages:
//   - logging: slog logger construction and context propagation
//   - metrics: account, upload, cleanup and database metrics
//   - tracing: tracer access and HTTP tracing middleware
package observability
