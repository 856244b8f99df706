package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"techup-blog/internal/handler/http/pathutil"
	"techup-blog/internal/handler/http/responsewriter"
)

var sizeBuckets = prometheus.ExponentialBuckets(100, 10, 8)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	// 5ms to 10s covers cached reads as well as image uploads.
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"method", "path", "status"})

	httpRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being served",
	})

	httpRequestSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_size_bytes",
		Help:    "HTTP request size in bytes",
		Buckets: sizeBuckets,
	}, []string{"method", "path"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_response_size_bytes",
		Help:    "HTTP response size in bytes",
		Buckets: sizeBuckets,
	}, []string{"method", "path"})
)

// routeLabel prefers the pattern the router matched ("/posts/{id}"). Requests
// that never reached the router fall back to the normalized path.
func routeLabel(r *http.Request) string {
	if r.Pattern == "" {
		return pathutil.NormalizePath(r.URL.Path)
	}
	if _, path, ok := strings.Cut(r.Pattern, " "); ok {
		return path
	}
	return r.Pattern
}

// MetricsMiddleware records count, latency and body sizes per route.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpRequestsInFlight.Inc()
		start := time.Now()
		rw := responsewriter.Wrap(w)

		defer func() {
			httpRequestsInFlight.Dec()

			code := rw.StatusCode()
			p := recover()
			if p != nil {
				code = http.StatusInternalServerError
				defer panic(p)
			}

			route := routeLabel(r)
			status := strconv.Itoa(code)
			httpRequestsTotal.WithLabelValues(r.Method, route, status).Inc()
			httpRequestDuration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
			if r.ContentLength > 0 {
				httpRequestSize.WithLabelValues(r.Method, route).Observe(float64(r.ContentLength))
			}
			httpResponseSize.WithLabelValues(r.Method, route).Observe(float64(rw.BytesWritten()))
		}()

		next.ServeHTTP(rw, r)
	})
}

// MetricsHandler serves the Prometheus exposition format.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
