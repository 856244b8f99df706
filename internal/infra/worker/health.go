package worker

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"techup-blog/internal/handler/http/respond"
)

// RunReport summarises the latest reconcile run for the readiness probe.
type RunReport struct {
	FinishedAt time.Time `json:"finished_at"`
	Succeeded  bool      `json:"succeeded"`
	Pending    int       `json:"pending"`
	Resolved   int       `json:"resolved"`
	Failed     int       `json:"failed"`
}

type probeBody struct {
	Status  string     `json:"status"`
	LastRun *RunReport `json:"last_run,omitempty"`
}

// HealthServer exposes the worker's probes and metrics:
//
//	/health        liveness, always 200
//	/health/ready  200 once the scheduler runs, 503 before; includes the last run
//	/metrics       Prometheus scrape endpoint
type HealthServer struct {
	addr    string
	logger  *slog.Logger
	ready   atomic.Bool
	lastRun atomic.Pointer[RunReport]
}

// NewHealthServer returns a server for addr that starts not ready.
func NewHealthServer(addr string, logger *slog.Logger) *HealthServer {
	return &HealthServer{addr: addr, logger: logger}
}

// Handler returns the probe and metrics routes.
func (h *HealthServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		respond.JSON(w, http.StatusOK, probeBody{Status: "ok"})
	})
	mux.HandleFunc("GET /health/ready", h.handleReadiness)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

// Start serves until ctx is cancelled and then drains for up to 5 seconds.
// It returns http.ErrServerClosed after a clean shutdown.
func (h *HealthServer) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              h.addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("health server starting", slog.String("addr", h.addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			h.logger.Error("health server failed", slog.Any("error", err))
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		h.logger.Error("health server shutdown failed", slog.Any("error", err))
		return err
	}
	h.logger.Info("health server stopped")
	return http.ErrServerClosed
}

// SetReady sets the readiness reported by /health/ready.
func (h *HealthServer) SetReady(ready bool) {
	h.ready.Store(ready)
	h.logger.Info("worker readiness changed", slog.Bool("ready", ready))
}

// ReportRun records the outcome of a reconcile run.
func (h *HealthServer) ReportRun(r RunReport) {
	h.lastRun.Store(&r)
}

func (h *HealthServer) handleReadiness(w http.ResponseWriter, _ *http.Request) {
	body := probeBody{Status: "ok", LastRun: h.lastRun.Load()}
	if !h.ready.Load() {
		body.Status = "not ready"
		respond.JSON(w, http.StatusServiceUnavailable, body)
		return
	}
	respond.JSON(w, http.StatusOK, body)
}
