package middleware

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"

	"techup-blog/internal/handler/http/respond"
	"techup-blog/pkg/config"
)

const MsgTooManyRequests = "Too many requests, please try again later"

var rateLimitRejections = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_rate_limit_rejections_total",
		Help: "Requests rejected by the per-IP rate limiter",
	},
	[]string{"path"},
)

// RateLimitConfig configures IPRateLimiter.
type RateLimitConfig struct {
	RPS     float64
	Burst   int
	IdleTTL time.Duration
}

// LoadRateLimitConfig reads AUTH_RATE_LIMIT_RPS and AUTH_RATE_LIMIT_BURST.
func LoadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RPS:     config.GetEnvFloat("AUTH_RATE_LIMIT_RPS", 1),
		Burst:   config.GetEnvInt("AUTH_RATE_LIMIT_BURST", 5),
		IdleTTL: config.GetEnvDuration("AUTH_RATE_LIMIT_IDLE_TTL", 10*time.Minute),
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client IP.
type IPRateLimiter struct {
	cfg       RateLimitConfig
	extractor IPExtractor
	now       func() time.Time

	mu       sync.Mutex
	visitors map[string]*visitor
}

func NewIPRateLimiter(cfg RateLimitConfig, extractor IPExtractor) *IPRateLimiter {
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 10 * time.Minute
	}
	if extractor == nil {
		extractor = RemoteAddrExtractor{}
	}
	return &IPRateLimiter{
		cfg:       cfg,
		extractor: extractor,
		now:       time.Now,
		visitors:  make(map[string]*visitor),
	}
}

// Allow reserves a token for ip and returns the wait until the next token
// when the bucket is empty.
func (l *IPRateLimiter) Allow(ip string) (bool, time.Duration) {
	now := l.now()

	l.mu.Lock()
	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(l.cfg.RPS), l.cfg.Burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	l.mu.Unlock()

	r := v.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, time.Second
	}
	if d := r.DelayFrom(now); d > 0 {
		r.CancelAt(now)
		return false, d
	}
	return true, 0
}

// Middleware rejects requests over the limit with 429 and a Retry-After header.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, err := l.extractor.ExtractIP(r)
		if err != nil {
			slog.Warn("rate limiter: cannot resolve client ip",
				slog.String("remote_addr", r.RemoteAddr),
				slog.Any("error", err))
			ip = r.RemoteAddr
		}

		ok, wait := l.Allow(ip)
		if !ok {
			rateLimitRejections.WithLabelValues(r.URL.Path).Inc()
			slog.Warn("rate limit exceeded",
				slog.String("ip", ip),
				slog.String("path", r.URL.Path))
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			respond.Fail(w, http.StatusTooManyRequests, MsgTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Sweep drops buckets idle for longer than IdleTTL and returns how many remain.
func (l *IPRateLimiter) Sweep() int {
	cutoff := l.now().Add(-l.cfg.IdleTTL)
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, ip)
		}
	}
	return len(l.visitors)
}

// RunSweeper calls Sweep every interval until ctx is done.
// A non-positive interval disables sweeping.
func (l *IPRateLimiter) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		slog.Warn("rate limiter sweep disabled", slog.Duration("interval", interval))
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			remaining := l.Sweep()
			slog.Debug("rate limiter sweep", slog.Int("active_ips", remaining))
		}
	}
}
