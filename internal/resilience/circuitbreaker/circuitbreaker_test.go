package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techup-blog/internal/observability/metrics"
)

func testConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      2,
		Interval:         10 * time.Second,
		Timeout:          100 * time.Millisecond,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

var errBoom = errors.New("boom")

func fail() (int, error) { return 0, errBoom }

func TestNew_StartsClosed(t *testing.T) {
	cb := New(testConfig("cb-new"))

	assert.Equal(t, "cb-new", cb.Name())
	assert.Equal(t, gobreaker.StateClosed, cb.State())
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.CircuitState.WithLabelValues("cb-new")))
}

func TestRun_TripsOpenAndRejects(t *testing.T) {
	cb := New(testConfig("cb-trip"))

	for range 5 {
		_, err := Run(cb, fail)
		require.ErrorIs(t, err, errBoom)
	}
	require.True(t, cb.IsOpen())
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.CircuitState.WithLabelValues("cb-trip")))

	called := false
	_, err := Run(cb, func() (int, error) { called = true; return 1, nil })
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.True(t, IsRejection(err))
	assert.False(t, called)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CircuitRejectionsTotal.WithLabelValues("cb-trip")))
}

func TestRun_HalfOpenProbeCloses(t *testing.T) {
	cb := New(testConfig("cb-recover"))
	for range 6 {
		_, _ = Run(cb, fail)
	}
	require.True(t, cb.IsOpen())

	time.Sleep(150 * time.Millisecond)

	v, err := Run(cb, func() (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.False(t, cb.IsOpen())
}

func TestRun_IsSuccessfulKeepsClientErrorsFromTripping(t *testing.T) {
	rejected := errors.New("invalid token")
	cfg := testConfig("cb-client")
	cfg.IsSuccessful = func(err error) bool { return err == nil || errors.Is(err, rejected) }
	cb := New(cfg)

	for range 10 {
		_, err := Run(cb, func() (int, error) { return 0, rejected })
		assert.ErrorIs(t, err, rejected)
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestRun_ReturnsZeroValueOnError(t *testing.T) {
	cb := New(testConfig("cb-zero"))

	got, err := Run(cb, func() (int, error) { return 9, errBoom })
	assert.ErrorIs(t, err, errBoom)
	assert.Zero(t, got)

	got, err = Run(cb, func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestIsRejection(t *testing.T) {
	assert.True(t, IsRejection(gobreaker.ErrTooManyRequests))
	assert.False(t, IsRejection(errBoom))
	assert.False(t, IsRejection(nil))
}

func TestProviderConfig(t *testing.T) {
	cfg := ProviderConfig("supabase-auth")
	assert.Equal(t, "supabase-auth", cfg.Name)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, uint32(5), cfg.MinRequests)
}
