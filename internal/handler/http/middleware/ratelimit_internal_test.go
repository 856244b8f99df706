package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(rps float64, burst int) (*IPRateLimiter, *time.Time) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter(RateLimitConfig{RPS: rps, Burst: burst, IdleTTL: time.Minute}, nil)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestIPRateLimiter_Allow(t *testing.T) {
	l, now := newTestLimiter(1, 2)

	ok, _ := l.Allow("1.1.1.1")
	assert.True(t, ok)
	ok, _ = l.Allow("1.1.1.1")
	assert.True(t, ok)

	ok, wait := l.Allow("1.1.1.1")
	assert.False(t, ok)
	assert.Equal(t, time.Second, wait)

	// a rejected request does not consume the next token
	ok, wait = l.Allow("1.1.1.1")
	assert.False(t, ok)
	assert.Equal(t, time.Second, wait)

	ok, _ = l.Allow("2.2.2.2")
	assert.True(t, ok, "buckets are per ip")

	*now = now.Add(time.Second)
	ok, _ = l.Allow("1.1.1.1")
	assert.True(t, ok)
}

func TestIPRateLimiter_Sweep(t *testing.T) {
	l, now := newTestLimiter(1, 1)

	l.Allow("1.1.1.1")
	*now = now.Add(45 * time.Second)
	l.Allow("2.2.2.2")
	*now = now.Add(30 * time.Second)

	assert.Equal(t, 1, l.Sweep())
	_, kept := l.visitors["2.2.2.2"]
	assert.True(t, kept)
}

func TestNewIPRateLimiter_Defaults(t *testing.T) {
	l := NewIPRateLimiter(RateLimitConfig{RPS: 1}, nil)

	assert.Equal(t, 1, l.cfg.Burst)
	assert.Equal(t, 10*time.Minute, l.cfg.IdleTTL)
	assert.IsType(t, RemoteAddrExtractor{}, l.extractor)
}
