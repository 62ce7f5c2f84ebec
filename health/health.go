package health

import (
	"context"
	"time"
)

// Status grades the availability of a downstream provider.
type Status int

const (
	// StatusHealthy means the provider answered its health probe and the
	// circuit to it is closed.
	StatusHealthy Status = iota
	// StatusDegraded means the provider is reachable but recovering: the
	// circuit is half-open, or the probe succeeded only after retries.
	StatusDegraded
	// StatusUnhealthy means the probe failed or the circuit is open.
	StatusUnhealthy
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// Result is the outcome of one provider health probe.
type Result struct {
	// Resource is the provider the probe targeted.
	Resource string

	// Status grades the provider's availability.
	Status Status

	// Message is a short human-readable explanation.
	Message string

	// Details carries probe metadata: breaker state, attempts, status code.
	Details map[string]any

	// Elapsed is how long the probe took.
	Elapsed time.Duration

	// CheckedAt is when the probe ran.
	CheckedAt time.Time

	// Err is the probe failure, nil otherwise.
	Err error
}

// Checker is a downstream provider that can be probed.
type Checker interface {
	// Resource returns the provider name.
	Resource() string

	// CheckHealth probes the provider and grades the outcome.
	CheckHealth(ctx context.Context) Result
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc struct {
	resource string
	fn       func(context.Context) Result
}

// NewCheckerFunc wraps fn as a named Checker.
func NewCheckerFunc(resource string, fn func(context.Context) Result) *CheckerFunc {
	return &CheckerFunc{resource: resource, fn: fn}
}

// Resource returns the provider name.
func (f *CheckerFunc) Resource() string {
	return f.resource
}

// CheckHealth runs the wrapped probe.
func (f *CheckerFunc) CheckHealth(ctx context.Context) Result {
	return f.fn(ctx)
}
