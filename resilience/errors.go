package resilience

import "errors"

// Sentinel errors for resilience operations.
var (
	// ErrCircuitOpen is returned when the circuit breaker rejects a call.
	ErrCircuitOpen = errors.New("resilience: circuit breaker is open")

	// ErrRateLimited is returned when the fixed-window quota is exhausted.
	ErrRateLimited = errors.New("resilience: rate limit exceeded")

	// ErrInvalidConfig is returned by constructors for out-of-range config.
	ErrInvalidConfig = errors.New("resilience: invalid configuration")
)
