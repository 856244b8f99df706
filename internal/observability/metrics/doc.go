// Package metrics provides the business and database Prometheus metrics of the blog.
//
// HTTP request metrics live with the HTTP middleware in internal/handler/http;
// this package covers what happens behind the handlers:
//   - Account events (register, login, password reset) by outcome
//   - Identity cleanups (compensating deletes of provider accounts)
//   - Image uploads by bucket and outcome
//   - Database query durations and connection pool statistics
//
// All metrics are registered with the Prometheus default registry and exposed
// via the /metrics endpoint.
//
// Example usage:
//
//	import "techup-blog/internal/observability/metrics"
//
//	func register(ctx context.Context) {
//	    // ...
//	    metrics.RecordAccountEvent("register", "success")
//	}
package metrics
