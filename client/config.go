package client

import (
	"time"

	"github.com/verifykit/outbound/clock"
)

// Config is the full configuration surface for one downstream service.
// It is validated once at construction and immutable thereafter.
type Config struct {
	// Resource names the logical downstream service, e.g. "experian" or
	// "onfido". Required.
	Resource string

	// FailureThreshold is the consecutive failures before the circuit
	// opens. Default: 5
	FailureThreshold int

	// RecoveryTimeout is how long the circuit stays open before probing.
	// Default: 60s
	RecoveryTimeout time.Duration

	// SuccessThreshold is the successful probes needed to close the
	// circuit. Default: 3
	SuccessThreshold int

	// RateLimitMaxRequests is the fixed-window quota. Default: 60
	RateLimitMaxRequests int

	// RateLimitWindow is the fixed window duration. Default: 1m
	RateLimitWindow time.Duration

	// CacheMaxEntries bounds the response cache. Default: 1000
	CacheMaxEntries int

	// CacheDefaultTTL is the response cache TTL when a request does not
	// override it. Zero disables caching.
	CacheDefaultTTL time.Duration

	// CacheMaxTTL clamps per-request TTL overrides. Zero means no clamp.
	CacheMaxTTL time.Duration

	// RetryMaxAttempts caps transport invocations per call, including the
	// first. Default: 3
	RetryMaxAttempts int

	// RetryBaseDelay is the backoff before the first retry. Default: 500ms
	RetryBaseDelay time.Duration

	// RetryBackoffFactor is the exponential backoff multiplier.
	// Default: 2.0
	RetryBackoffFactor float64

	// RetryMaxDelay caps the backoff delay. Default: 30s
	RetryMaxDelay time.Duration

	// CallTimeout bounds each individual transport attempt. Zero means the
	// attempt is bounded only by the caller's context. Default: 30s
	CallTimeout time.Duration

	// HealthEndpoint is the endpoint used by CheckHealth.
	// Default: "health"
	HealthEndpoint string

	// Clock is the shared time source for the breaker, limiter, and cache.
	// Default: clock.System().
	Clock clock.Clock
}

// withDefaults returns a copy of the config with zero values filled in.
func (c Config) withDefaults() Config {
	if c.FailureThreshold == 0 {
		c.FailureThreshold = 5
	}
	if c.RecoveryTimeout == 0 {
		c.RecoveryTimeout = 60 * time.Second
	}
	if c.SuccessThreshold == 0 {
		c.SuccessThreshold = 3
	}
	if c.RateLimitMaxRequests == 0 {
		c.RateLimitMaxRequests = 60
	}
	if c.RateLimitWindow == 0 {
		c.RateLimitWindow = time.Minute
	}
	if c.CacheMaxEntries == 0 {
		c.CacheMaxEntries = 1000
	}
	if c.RetryMaxAttempts == 0 {
		c.RetryMaxAttempts = 3
	}
	if c.RetryBaseDelay == 0 {
		c.RetryBaseDelay = 500 * time.Millisecond
	}
	if c.RetryBackoffFactor == 0 {
		c.RetryBackoffFactor = 2.0
	}
	if c.RetryMaxDelay == 0 {
		c.RetryMaxDelay = 30 * time.Second
	}
	if c.CallTimeout == 0 {
		c.CallTimeout = 30 * time.Second
	}
	if c.HealthEndpoint == "" {
		c.HealthEndpoint = "health"
	}
	if c.Clock == nil {
		c.Clock = clock.System()
	}
	return c
}

// validate rejects explicitly out-of-range values. Zero values are legal;
// they receive defaults.
func (c Config) validate() error {
	if c.Resource == "" {
		return ErrMissingResource
	}
	if c.FailureThreshold < 0 || c.SuccessThreshold < 0 || c.RateLimitMaxRequests < 0 ||
		c.CacheMaxEntries < 0 || c.RetryMaxAttempts < 0 {
		return ErrInvalidConfig
	}
	if c.RecoveryTimeout < 0 || c.RateLimitWindow < 0 || c.CacheDefaultTTL < 0 ||
		c.CacheMaxTTL < 0 || c.RetryBaseDelay < 0 || c.RetryMaxDelay < 0 || c.CallTimeout < 0 {
		return ErrInvalidConfig
	}
	if c.RetryBackoffFactor != 0 && c.RetryBackoffFactor <= 1 {
		return ErrInvalidConfig
	}
	return nil
}
