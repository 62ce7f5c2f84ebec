package resilience_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/verifykit/outbound/resilience"
)

func ExampleCircuitBreaker() {
	cb, err := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		FailureThreshold: 2,
		RecoveryTimeout:  30 * time.Second,
	})
	if err != nil {
		panic(err)
	}

	// Two consecutive failures open the circuit.
	cb.RecordFailure()
	cb.RecordFailure()

	fmt.Println(cb.GetState().State)
	fmt.Println(cb.CanExecute())
	// Output:
	// open
	// false
}

func ExampleRateLimiter() {
	rl, err := resilience.NewRateLimiter(resilience.RateLimiterConfig{
		MaxRequests: 2,
		Window:      time.Minute,
	})
	if err != nil {
		panic(err)
	}

	fmt.Println(rl.Allow())
	fmt.Println(rl.Allow())
	fmt.Println(rl.Allow())
	// Output:
	// true
	// true
	// false
}

func ExampleRetryPolicy_Execute() {
	var transient = errors.New("connection reset")

	policy, err := resilience.NewRetryPolicy(resilience.RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		RetryIf: func(err error) bool {
			return errors.Is(err, transient)
		},
	})
	if err != nil {
		panic(err)
	}

	calls := 0
	attempts, err := policy.Execute(context.Background(), func(ctx context.Context, attempt int) error {
		calls++
		if calls < 3 {
			return transient
		}
		return nil
	})

	fmt.Println(attempts, err)
	// Output: 3 <nil>
}
