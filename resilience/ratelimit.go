package resilience

import (
	"context"
	"sync"
	"time"

	"github.com/verifykit/outbound/clock"
)

// RateLimiterConfig configures the fixed-window rate limiter.
type RateLimiterConfig struct {
	// MaxRequests is the number of requests allowed per window. Must be >= 1.
	// Default: 60
	MaxRequests int

	// Window is the fixed window duration. Must be > 0.
	// Default: 1 minute
	Window time.Duration

	// Clock is the time source. Default: clock.System().
	Clock clock.Clock
}

// RateLimiter counts requests within a fixed time window. The window rolls
// over lazily on the first Allow call after it elapses; there is no
// background timer. One instance guards one logical downstream resource and
// is shared by all callers of that resource.
type RateLimiter struct {
	config RateLimiterConfig

	mu          sync.Mutex
	windowStart time.Time
	count       uint
}

// NewRateLimiter creates a new fixed-window rate limiter.
func NewRateLimiter(config RateLimiterConfig) (*RateLimiter, error) {
	if config.MaxRequests < 0 || config.Window < 0 {
		return nil, ErrInvalidConfig
	}

	// Apply defaults
	if config.MaxRequests == 0 {
		config.MaxRequests = 60
	}
	if config.Window == 0 {
		config.Window = time.Minute
	}
	if config.Clock == nil {
		config.Clock = clock.System()
	}

	return &RateLimiter{
		config:      config,
		windowStart: config.Clock.Now(),
	}, nil
}

// Allow reports whether a request fits in the current window, consuming one
// slot when it does. The check is O(1), non-blocking, and purely advisory:
// a rejected caller is not queued or retried.
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.config.Clock.Now()
	if now.Sub(rl.windowStart) >= rl.config.Window {
		rl.windowStart = now
		rl.count = 0
	}

	if rl.count < uint(rl.config.MaxRequests) {
		rl.count++
		return true
	}
	return false
}

// Remaining returns how many requests are left in the current window.
func (rl *RateLimiter) Remaining() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.config.Clock.Now().Sub(rl.windowStart) >= rl.config.Window {
		return rl.config.MaxRequests
	}
	remaining := rl.config.MaxRequests - int(rl.count)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Execute runs the operation if the rate limit admits it, returning
// ErrRateLimited otherwise.
func (rl *RateLimiter) Execute(ctx context.Context, op func(context.Context) error) error {
	if !rl.Allow() {
		return ErrRateLimited
	}
	return op(ctx)
}
