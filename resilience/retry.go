package resilience

import (
	"context"
	"math"
	"time"
)

// RetryConfig configures the retry policy.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts, including the first.
	// Must be >= 1. Default: 3
	MaxAttempts int

	// BaseDelay is the delay before the first retry. Must be > 0.
	// Default: 500ms
	BaseDelay time.Duration

	// BackoffFactor is the exponential growth factor. Must be > 1.
	// Default: 2.0
	BackoffFactor float64

	// MaxDelay caps the computed delay. Default: 30s
	MaxDelay time.Duration

	// RetryIf classifies an error as retryable. Only transient transport
	// failures should be retried; gate rejections and request-level errors
	// must not be. Default: retry any non-nil error.
	RetryIf func(err error) bool
}

// RetryPolicy decides whether a failed attempt is retried and how long to
// wait before the next one.
type RetryPolicy struct {
	config RetryConfig
}

// NewRetryPolicy creates a new retry policy.
func NewRetryPolicy(config RetryConfig) (*RetryPolicy, error) {
	if config.MaxAttempts < 0 || config.BaseDelay < 0 || config.MaxDelay < 0 {
		return nil, ErrInvalidConfig
	}
	if config.BackoffFactor != 0 && config.BackoffFactor <= 1 {
		return nil, ErrInvalidConfig
	}

	// Apply defaults
	if config.MaxAttempts == 0 {
		config.MaxAttempts = 3
	}
	if config.BaseDelay == 0 {
		config.BaseDelay = 500 * time.Millisecond
	}
	if config.BackoffFactor == 0 {
		config.BackoffFactor = 2.0
	}
	if config.MaxDelay == 0 {
		config.MaxDelay = 30 * time.Second
	}
	if config.RetryIf == nil {
		config.RetryIf = func(err error) bool { return err != nil }
	}

	return &RetryPolicy{config: config}, nil
}

// ShouldRetry reports whether another attempt should follow the given failed
// attempt. attempt is 1-based: the first call is attempt 1.
func (p *RetryPolicy) ShouldRetry(attempt int, err error) bool {
	if err == nil {
		return false
	}
	if attempt >= p.config.MaxAttempts {
		return false
	}
	return p.config.RetryIf(err)
}

// DelayFor returns the backoff delay before retry number attempt, counted
// from 0: min(MaxDelay, BaseDelay * BackoffFactor^attempt).
func (p *RetryPolicy) DelayFor(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	delay := time.Duration(float64(p.config.BaseDelay) * math.Pow(p.config.BackoffFactor, float64(attempt)))
	if delay > p.config.MaxDelay || delay < 0 {
		delay = p.config.MaxDelay
	}
	return delay
}

// MaxAttempts returns the configured attempt cap.
func (p *RetryPolicy) MaxAttempts() int {
	return p.config.MaxAttempts
}

// Sleep waits out the backoff delay before retry number attempt, or returns
// ctx.Err() immediately when the caller's deadline expires or is cancelled.
func (p *RetryPolicy) Sleep(ctx context.Context, attempt int) error {
	delay := p.DelayFor(attempt)
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Execute runs op until it succeeds, fails with a non-retryable error, the
// attempt cap is reached, or the context ends during backoff. The last
// observed error is returned; attempts is how many invocations were made.
func (p *RetryPolicy) Execute(ctx context.Context, op func(ctx context.Context, attempt int) error) (attempts int, err error) {
	for attempt := 1; ; attempt++ {
		err = op(ctx, attempt)
		if err == nil {
			return attempt, nil
		}

		if !p.ShouldRetry(attempt, err) {
			return attempt, err
		}

		// Backoff for retry n is indexed from 0.
		if serr := p.Sleep(ctx, attempt-1); serr != nil {
			return attempt, serr
		}
	}
}
