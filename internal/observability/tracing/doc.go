// Package tracing wires OpenTelemetry into the service.
//
// Setup installs the global TracerProvider and propagators; Middleware opens a
// server span per HTTP request and echoes the trace ID in X-Trace-Id. Outbound
// clients start their own client spans from GetTracer.
//
//	shutdown := tracing.Setup()
//	defer shutdown(context.Background())
//	handler := tracing.Middleware(mux)
package tracing
