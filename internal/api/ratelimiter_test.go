package api

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBurstIsPerHost(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{RequestsPerMinute: 1, BurstSize: 2})

	assert.True(t, rl.getLimiter("a.example").Allow())
	assert.True(t, rl.getLimiter("a.example").Allow())
	assert.False(t, rl.getLimiter("a.example").Allow())

	// Hosts do not share buckets.
	assert.True(t, rl.getLimiter("b.example").Allow())
}

func TestWaitRespectsContext(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{RequestsPerMinute: 1, BurstSize: 1})
	assert.NoError(t, rl.Wait(context.Background(), "h"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.Error(t, rl.Wait(ctx, "h"))
}

func TestLimitInfo(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{RequestsPerMinute: 60, BurstSize: 5})
	assert.Equal(t, "Rate limit: 60 requests/minute (burst: 5)", rl.GetLimitInfo())
}

func TestZeroConfigFallsBackToDefault(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{})
	assert.Equal(t, "Rate limit: 30 requests/minute (burst: 3)", rl.GetLimitInfo())
}
