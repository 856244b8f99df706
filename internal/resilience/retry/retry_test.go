package retry

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:    attempts,
		InitialDelay:   5 * time.Millisecond,
		MaxDelay:       20 * time.Millisecond,
		Multiplier:     2,
		JitterFraction: 0.1,
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", fmt.Errorf("wrapped: %w", context.DeadlineExceeded), false},
		{"500", &HTTPError{StatusCode: 500}, true},
		{"503", &HTTPError{StatusCode: 503}, true},
		{"429", &HTTPError{StatusCode: 429}, true},
		{"408", &HTTPError{StatusCode: 408}, true},
		{"400", &HTTPError{StatusCode: 400}, false},
		{"404", &HTTPError{StatusCode: 404}, false},
		{"wrapped 502", fmt.Errorf("get user: %w", &HTTPError{StatusCode: 502}), true},
		{"refused", syscall.ECONNREFUSED, true},
		{"reset", fmt.Errorf("read: %w", syscall.ECONNRESET), true},
		{"plain", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestWithBackoff_RecoversFromTransientFailure(t *testing.T) {
	calls := 0
	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		calls++
		if calls < 3 {
			return &HTTPError{StatusCode: 503}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithBackoff_StopsOnPermanentError(t *testing.T) {
	calls := 0
	permanent := &HTTPError{StatusCode: 400, Message: "bad"}
	err := WithBackoff(context.Background(), fastConfig(5), func() error {
		calls++
		return permanent
	})
	assert.Same(t, permanent, err)
	assert.Equal(t, 1, calls)
}

func TestWithBackoff_Exhausted(t *testing.T) {
	calls := 0
	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		calls++
		return syscall.ECONNREFUSED
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExhausted)
	assert.ErrorIs(t, err, syscall.ECONNREFUSED)
	assert.Equal(t, 3, calls)
}

func TestWithBackoff_ZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	_ = WithBackoff(context.Background(), fastConfig(0), func() error {
		calls++
		return syscall.ECONNREFUSED
	})
	assert.Equal(t, 1, calls)
}

func TestWithBackoff_ContextCancelledDuringWait(t *testing.T) {
	cfg := fastConfig(5)
	cfg.InitialDelay = time.Second
	cfg.MaxDelay = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := WithBackoff(ctx, cfg, func() error {
		calls++
		cancel()
		return syscall.ECONNRESET
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestWithBackoff_CustomPredicate(t *testing.T) {
	flaky := errors.New("flaky")
	cfg := fastConfig(3)
	cfg.Retryable = func(err error) bool { return errors.Is(err, flaky) }

	calls := 0
	err := WithBackoff(context.Background(), cfg, func() error {
		calls++
		if calls == 1 {
			return flaky
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDo(t *testing.T) {
	calls := 0
	v, err := Do(context.Background(), fastConfig(2), func() (string, error) {
		calls++
		if calls == 1 {
			return "partial", &HTTPError{StatusCode: 502}
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)

	v, err = Do(context.Background(), fastConfig(2), func() (string, error) {
		return "ignored", errors.New("permanent")
	})
	require.Error(t, err)
	assert.Empty(t, v)
}

func TestConfigDelay(t *testing.T) {
	cfg := Config{InitialDelay: 100 * time.Millisecond, MaxDelay: 300 * time.Millisecond, Multiplier: 2}

	assert.Equal(t, 100*time.Millisecond, cfg.delay(1))
	assert.Equal(t, 200*time.Millisecond, cfg.delay(2))
	assert.Equal(t, 300*time.Millisecond, cfg.delay(3))
	assert.Equal(t, 300*time.Millisecond, cfg.delay(10))
}

func TestAddJitter(t *testing.T) {
	base := 100 * time.Millisecond
	for range 50 {
		d := addJitter(base, 0.2)
		assert.GreaterOrEqual(t, d, base)
		assert.LessOrEqual(t, d, base+20*time.Millisecond)
	}
	assert.Equal(t, base, addJitter(base, 0))
}

func TestHTTPError(t *testing.T) {
	assert.Equal(t, "HTTP 503: unavailable", (&HTTPError{StatusCode: 503, Message: "unavailable"}).Error())
}
