package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := newRateLimiter(rate.Limit(10), 5)
	r.now = func() time.Time { return now }
	r.lastSweep = now

	first := r.limiterFor("10.0.0.1")
	r.limiterFor("10.0.0.2")
	assert.Len(t, r.bucket, 2)

	// the same client keeps its bucket while active
	now = now.Add(limiterIdleTTL / 2)
	assert.Same(t, first, r.limiterFor("10.0.0.1"))

	// 10.0.0.2 has been idle for a full TTL when the next sweep runs
	now = now.Add(limiterIdleTTL / 2)
	r.limiterFor("10.0.0.3")

	assert.Len(t, r.bucket, 2)
	assert.Contains(t, r.bucket, "10.0.0.1")
	assert.Contains(t, r.bucket, "10.0.0.3")
	assert.NotContains(t, r.bucket, "10.0.0.2")
}

func TestRateLimiter_TTLCoversRefill(t *testing.T) {
	// 100 tokens at one per minute take longer than the default TTL to refill
	r := newRateLimiter(rate.Every(time.Minute), 100)
	assert.InDelta(t, float64(100*time.Minute), float64(r.idleTTL), float64(time.Millisecond))

	r = newRateLimiter(rate.Limit(50), 100)
	assert.Equal(t, limiterIdleTTL, r.idleTTL)
}
