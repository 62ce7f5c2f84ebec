// Package clock abstracts the time source so that components which compare
// timestamps (circuit breaker recovery, rate-limit windows, cache expiry)
// can be tested deterministically.
package clock

import (
	"sync"
	"time"
)

// Clock provides the current time.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Monotonicity: Now must never go backwards within a process.
type Clock interface {
	// Now returns the current time. The returned time carries a monotonic
	// reading, so Sub-based comparisons are immune to wall-clock skew.
	Now() time.Time
}

// System returns a Clock backed by time.Now.
func System() Clock {
	return systemClock{}
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Fake is a manually advanced Clock for tests.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

// NewFake creates a Fake clock starting at t.
func NewFake(t time.Time) *Fake {
	return &Fake{now: t}
}

// Now returns the fake current time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the fake clock forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// Set moves the fake clock to t.
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}
