// internal/api/rate_limiter.go
package api

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter paces outbound requests per host
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	config   RateLimitConfig
}

// RateLimitConfig holds configuration for a host's rate limits
type RateLimitConfig struct {
	RequestsPerMinute int
	BurstSize         int
}

// DefaultRateLimit is conservative: the rendering endpoint is a free public service
var DefaultRateLimit = RateLimitConfig{
	RequestsPerMinute: 30,
	BurstSize:         3,
}

// NewRateLimiter creates a rate limiter applying cfg to every host
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = DefaultRateLimit.RequestsPerMinute
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = DefaultRateLimit.BurstSize
	}

	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		config:   cfg,
	}
}

// Wait blocks until a request to host can be made according to rate limits
func (rl *RateLimiter) Wait(ctx context.Context, host string) error {
	return rl.getLimiter(host).Wait(ctx)
}

// getLimiter returns the rate limiter for a host, creating it if needed
func (rl *RateLimiter) getLimiter(host string) *rate.Limiter {
	rl.mu.RLock()
	limiter, exists := rl.limiters[host]
	rl.mu.RUnlock()

	if exists {
		return limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Check again in case another goroutine created it
	if limiter, exists = rl.limiters[host]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(perSecond(rl.config.RequestsPerMinute), rl.config.BurstSize)
	rl.limiters[host] = limiter

	return limiter
}

// GetLimitInfo describes the limit applied to each host
func (rl *RateLimiter) GetLimitInfo() string {
	return fmt.Sprintf("Rate limit: %d requests/minute (burst: %d)",
		rl.config.RequestsPerMinute, rl.config.BurstSize)
}

func perSecond(requestsPerMinute int) rate.Limit {
	return rate.Limit(float64(requestsPerMinute) / 60.0)
}
