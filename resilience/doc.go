// Package resilience provides the failure-handling primitives that guard
// outbound calls to external verification services.
//
// Three primitives are provided, each owning its state behind an internal
// lock and safe for concurrent use:
//
//   - CircuitBreaker: a three-state (closed, open, half-open) health machine
//     that stops calls to a failing provider and periodically admits probe
//     calls to detect recovery.
//
//   - RateLimiter: a fixed-window request counter with lazy window rollover.
//
//   - RetryPolicy: classifies errors as retryable and computes capped
//     exponential backoff delays; backoff sleeps are cancellable through the
//     caller's context.
//
// One breaker and one limiter are created per logical downstream service and
// shared by all callers of that service. The primitives only report
// decisions; composing them around a call is the client package's job.
//
//	cb, err := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
//	    FailureThreshold: 3,
//	    RecoveryTimeout:  30 * time.Second,
//	    SuccessThreshold: 2,
//	})
//	if err != nil {
//	    return err
//	}
//
//	if !cb.CanExecute() {
//	    return resilience.ErrCircuitOpen
//	}
//	err = callProvider(ctx)
//	if err != nil {
//	    cb.RecordFailure()
//	} else {
//	    cb.RecordSuccess()
//	}
package resilience
