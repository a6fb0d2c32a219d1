package ratelimit

import (
	"sync"

	"golang.org/x/time/rate"
)

// ClientLimiter keeps one token bucket per API client
type ClientLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	defaults RateLimitConfig
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

func DefaultConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 10,
		BurstSize:         20,
	}
}

func NewClientLimiter(config RateLimitConfig) *ClientLimiter {
	if config.RequestsPerSecond <= 0 {
		config.RequestsPerSecond = DefaultConfig().RequestsPerSecond
	}
	if config.BurstSize < 1 {
		config.BurstSize = 1
	}
	return &ClientLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: config,
	}
}

func (p *ClientLimiter) GetLimiter(client string) *rate.Limiter {
	p.mu.RLock()
	limiter, exists := p.limiters[client]
	p.mu.RUnlock()

	if exists {
		return limiter
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if limiter, exists = p.limiters[client]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(p.defaults.RequestsPerSecond), p.defaults.BurstSize)
	p.limiters[client] = limiter
	return limiter
}

// Allow takes a token from client's bucket without waiting
func (p *ClientLimiter) Allow(client string) bool {
	return p.GetLimiter(client).Allow()
}
