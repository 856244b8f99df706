package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddleware_PathNormalization(t *testing.T) {
	httpRequestsTotal.Reset()

	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	}))

	for _, p := range []string{"/posts/1", "/posts/22", "/posts/333?page=2", "/posts/admin/4", "/categories/5", "/health"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	tests := []struct {
		path string
		want float64
	}{
		{"/posts/:id", 3},
		{"/posts/admin/:id", 1},
		{"/categories/:id", 1},
		{"/health", 1},
	}
	for _, tt := range tests {
		got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, tt.path, "200"))
		if got != tt.want {
			t.Errorf("requests for %s = %v, want %v", tt.path, got, tt.want)
		}
	}
	if n := testutil.CollectAndCount(httpRequestsTotal); n != len(tests) {
		t.Errorf("label sets = %d, want %d", n, len(tests))
	}
}

func TestMetricsMiddleware_UsesMatchedRoute(t *testing.T) {
	httpRequestsTotal.Reset()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /posts/{id}", func(w http.ResponseWriter, r *http.Request) {})
	handler := MetricsMiddleware(mux)

	for _, p := range []string{"/posts/1", "/posts/abc"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/posts/{id}", "200")); got != 2 {
		t.Errorf("requests for /posts/{id} = %v, want 2", got)
	}
}

func TestMetricsMiddleware_StatusCodes(t *testing.T) {
	httpRequestsTotal.Reset()

	for _, code := range []int{http.StatusOK, http.StatusCreated, http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError} {
		handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/posts", nil))
	}

	for _, status := range []string{"200", "201", "400", "404", "500"} {
		if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodPost, "/posts", status)); got != 1 {
			t.Errorf("status %s counted %v times, want 1", status, got)
		}
	}
}

func TestMetricsMiddleware_Sizes(t *testing.T) {
	httpRequestSize.Reset()
	httpResponseSize.Reset()

	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		_, _ = w.Write([]byte(strings.Repeat("x", 300)))
	}))
	req := httptest.NewRequest(http.MethodPut, "/categories/3", strings.NewReader(`{"name":"Tech"}`))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if n := testutil.CollectAndCount(httpRequestSize); n != 1 {
		t.Errorf("request size series = %d, want 1", n)
	}
	if n := testutil.CollectAndCount(httpResponseSize); n != 1 {
		t.Errorf("response size series = %d, want 1", n)
	}
}

func TestMetricsMiddleware_InFlightReturnsToZero(t *testing.T) {
	httpRequestsInFlight.Set(0)

	var during float64
	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		during = testutil.ToFloat64(httpRequestsInFlight)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/posts", nil))

	if during != 1 {
		t.Errorf("in-flight during request = %v, want 1", during)
	}
	if after := testutil.ToFloat64(httpRequestsInFlight); after != 0 {
		t.Errorf("in-flight after request = %v, want 0", after)
	}
}

func TestMetricsHandler(t *testing.T) {
	MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/posts", nil))

	rr := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "http_requests_total") {
		t.Error("exposition is missing http_requests_total")
	}
}

func BenchmarkMetricsMiddleware(b *testing.B) {
	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/posts/123", nil)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
}

func TestMetricsMiddleware_CountsPanicAsServerError(t *testing.T) {
	httpRequestsTotal.Reset()

	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	func() {
		defer func() { _ = recover() }()
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/posts", nil))
	}()

	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/posts", "500")); got != 1 {
		t.Errorf("panicking request counted %v times as 500, want 1", got)
	}
}
