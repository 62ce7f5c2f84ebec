package resilience

import (
	"context"
	"sync"
	"time"

	"github.com/verifykit/outbound/clock"
)

// State represents the circuit breaker state.
type State int

const (
	// StateClosed means the downstream service is considered healthy.
	StateClosed State = iota
	// StateOpen means the circuit is rejecting all requests.
	StateOpen
	// StateHalfOpen means the circuit is probing whether the service recovered.
	StateHalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures the circuit breaker.
// The config is treated as immutable after NewCircuitBreaker returns.
type CircuitBreakerConfig struct {
	// FailureThreshold is the number of consecutive failures in the closed
	// state before the circuit opens. Must be >= 1.
	// Default: 5
	FailureThreshold int

	// RecoveryTimeout is how long the circuit stays open before the next
	// call is allowed through as a recovery probe. Must be > 0.
	// Default: 60 seconds
	RecoveryTimeout time.Duration

	// SuccessThreshold is the number of successful probes in the half-open
	// state before the circuit closes. Must be >= 1.
	// Default: 3
	SuccessThreshold int

	// OnStateChange is called when the circuit state changes. The callback
	// runs while the breaker lock is held and must not call back into the
	// breaker.
	OnStateChange func(from, to State)

	// Clock is the time source. Default: clock.System().
	Clock clock.Clock
}

// CircuitBreaker guards a single downstream service. One instance is shared
// by all callers of that service and lives for the process lifetime.
type CircuitBreaker struct {
	config CircuitBreakerConfig

	mu              sync.Mutex
	state           State
	failureCount    uint
	successCount    uint
	lastFailureTime time.Time
	lastStateChange time.Time
}

// NewCircuitBreaker creates a new circuit breaker. Zero-valued config fields
// receive defaults; explicitly invalid values are rejected.
func NewCircuitBreaker(config CircuitBreakerConfig) (*CircuitBreaker, error) {
	if config.FailureThreshold < 0 || config.RecoveryTimeout < 0 || config.SuccessThreshold < 0 {
		return nil, ErrInvalidConfig
	}

	// Apply defaults
	if config.FailureThreshold == 0 {
		config.FailureThreshold = 5
	}
	if config.RecoveryTimeout == 0 {
		config.RecoveryTimeout = 60 * time.Second
	}
	if config.SuccessThreshold == 0 {
		config.SuccessThreshold = 3
	}
	if config.Clock == nil {
		config.Clock = clock.System()
	}

	return &CircuitBreaker{
		config:          config,
		state:           StateClosed,
		lastStateChange: config.Clock.Now(),
	}, nil
}

// CanExecute reports whether a call may proceed.
//
// In the closed state it always returns true. In the open state it returns
// false until RecoveryTimeout has elapsed since the last failure, at which
// point the circuit moves to half-open and the call proceeds as a probe.
// In the half-open state every call is admitted as a probe; concurrent
// probes are not limited.
func (cb *CircuitBreaker) CanExecute() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateOpen:
		if cb.config.Clock.Now().Sub(cb.lastFailureTime) >= cb.config.RecoveryTimeout {
			cb.transitionLocked(StateHalfOpen)
			return true
		}
		return false
	default:
		return true
	}
}

// RecordSuccess records a successful call outcome.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateHalfOpen:
		cb.successCount++
		if cb.successCount >= uint(cb.config.SuccessThreshold) {
			cb.transitionLocked(StateClosed)
		}
	case StateClosed:
		cb.failureCount = 0
	}
}

// RecordFailure records a failed call outcome.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount++
	cb.lastFailureTime = cb.config.Clock.Now()

	switch cb.state {
	case StateClosed:
		if cb.failureCount >= uint(cb.config.FailureThreshold) {
			cb.transitionLocked(StateOpen)
		}
	case StateHalfOpen:
		// A failed probe reopens the circuit immediately.
		cb.transitionLocked(StateOpen)
	}
}

// transitionLocked applies a state change and the counter resets that come
// with it. Entering closed zeroes the failure count; entering open or
// half-open zeroes the success count.
func (cb *CircuitBreaker) transitionLocked(to State) {
	from := cb.state
	cb.state = to
	cb.lastStateChange = cb.config.Clock.Now()

	switch to {
	case StateClosed:
		cb.failureCount = 0
		cb.successCount = 0
	case StateOpen, StateHalfOpen:
		cb.successCount = 0
	}

	if from != to && cb.config.OnStateChange != nil {
		cb.config.OnStateChange(from, to)
	}
}

// Snapshot is a point-in-time view of the breaker state and counters.
type Snapshot struct {
	State           State
	FailureCount    uint
	SuccessCount    uint
	LastFailureTime time.Time
	LastStateChange time.Time

	// UntilProbe is how long until an open circuit admits a probe call.
	// Zero when the circuit is not open.
	UntilProbe time.Duration
}

// GetState returns the current state and counters.
func (cb *CircuitBreaker) GetState() Snapshot {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	snap := Snapshot{
		State:           cb.state,
		FailureCount:    cb.failureCount,
		SuccessCount:    cb.successCount,
		LastFailureTime: cb.lastFailureTime,
		LastStateChange: cb.lastStateChange,
	}
	if cb.state == StateOpen {
		remaining := cb.config.RecoveryTimeout - cb.config.Clock.Now().Sub(cb.lastFailureTime)
		if remaining > 0 {
			snap.UntilProbe = remaining
		}
	}
	return snap
}

// Execute runs the operation through the circuit breaker. It returns
// ErrCircuitOpen without invoking op when the circuit rejects the call.
func (cb *CircuitBreaker) Execute(ctx context.Context, op func(context.Context) error) error {
	if !cb.CanExecute() {
		return ErrCircuitOpen
	}

	err := op(ctx)
	if err != nil {
		cb.RecordFailure()
	} else {
		cb.RecordSuccess()
	}
	return err
}
