package client

import (
	"time"

	"github.com/verifykit/outbound/cache"
	"github.com/verifykit/outbound/resilience"
)

// Stats is a point-in-time performance view of one client.
type Stats struct {
	// Resource is the downstream service name.
	Resource string

	// Calls is the total number of logical calls, including gate
	// rejections and cache hits.
	Calls uint64

	// Errors is the number of calls that did not succeed.
	Errors uint64

	// AvgElapsed is the mean wall time per call.
	AvgElapsed time.Duration

	// Breaker is the circuit breaker state and counters.
	Breaker resilience.Snapshot

	// RateRemaining is the unused quota in the current rate-limit window.
	RateRemaining int

	// Cache holds hit/miss/eviction counters when the in-memory cache is
	// in use; nil when caching is disabled or an external store is used.
	Cache *cache.Stats
}

// ErrorRate returns the fraction of calls that failed.
func (s Stats) ErrorRate() float64 {
	if s.Calls == 0 {
		return 0
	}
	return float64(s.Errors) / float64(s.Calls)
}

// Stats returns current performance counters for this client.
func (c *Client) Stats() Stats {
	c.mu.Lock()
	calls := c.calls
	errs := c.errs
	total := c.totalElapsed
	c.mu.Unlock()

	s := Stats{
		Resource:      c.config.Resource,
		Calls:         calls,
		Errors:        errs,
		Breaker:       c.breaker.GetState(),
		RateRemaining: c.limiter.Remaining(),
	}
	if calls > 0 {
		s.AvgElapsed = total / time.Duration(calls)
	}
	if mc, ok := c.cache.(*cache.MemoryCache); ok {
		cs := mc.Stats()
		s.Cache = &cs
	}
	return s
}

// BreakerState returns the breaker's current state.
func (c *Client) BreakerState() resilience.State {
	return c.breaker.GetState().State
}
