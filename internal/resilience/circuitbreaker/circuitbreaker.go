// Package circuitbreaker guards calls to the identity and storage provider
// with a github.com/sony/gobreaker breaker, so an outage fails fast instead
// of tying up request goroutines.
package circuitbreaker

import (
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"techup-blog/internal/observability/metrics"
)

// Config shapes when a breaker trips and how it recovers.
type Config struct {
	Name string

	// MaxRequests is the number of probe calls let through while half-open.
	MaxRequests uint32
	// Interval clears the closed-state counts. Zero never clears them.
	Interval time.Duration
	// Timeout is the open period before the breaker goes half-open.
	Timeout time.Duration

	// The breaker trips once at least MinRequests calls were seen and the
	// failure ratio reaches FailureThreshold.
	FailureThreshold float64
	MinRequests      uint32

	// IsSuccessful decides whether an error counts against the circuit.
	// Nil means every non-nil error is a failure.
	IsSuccessful func(err error) bool
}

// ProviderConfig keeps the open period short so logins recover quickly once
// the provider is back.
func ProviderConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          15 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

func (c Config) settings() gobreaker.Settings {
	return gobreaker.Settings{
		Name:        c.Name,
		MaxRequests: c.MaxRequests,
		Interval:    c.Interval,
		Timeout:     c.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < c.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= c.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.SetCircuitState(name, int(to))
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
		IsSuccessful: c.IsSuccessful,
	}
}

// CircuitBreaker is a named breaker that exports its state as a gauge.
type CircuitBreaker struct {
	name string
	cb   *gobreaker.CircuitBreaker
}

// New builds a closed breaker.
func New(cfg Config) *CircuitBreaker {
	metrics.SetCircuitState(cfg.Name, int(gobreaker.StateClosed))
	return &CircuitBreaker{name: cfg.Name, cb: gobreaker.NewCircuitBreaker(cfg.settings())}
}

// Run calls fn through the breaker. While open it returns
// gobreaker.ErrOpenState (or ErrTooManyRequests when half-open probes are
// exhausted) without calling fn.
func Run[T any](b *CircuitBreaker, fn func() (T, error)) (T, error) {
	res, err := b.cb.Execute(func() (any, error) { return fn() })
	if err != nil {
		if IsRejection(err) {
			metrics.RecordCircuitRejection(b.name)
		}
		var zero T
		return zero, err
	}
	v, _ := res.(T)
	return v, nil
}

// IsRejection reports whether err came from the breaker rather than the call.
func IsRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func (b *CircuitBreaker) Name() string { return b.name }

func (b *CircuitBreaker) State() gobreaker.State { return b.cb.State() }

func (b *CircuitBreaker) IsOpen() bool { return b.cb.State() == gobreaker.StateOpen }
