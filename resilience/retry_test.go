package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestPolicy(t *testing.T, config RetryConfig) *RetryPolicy {
	t.Helper()

	p, err := NewRetryPolicy(config)
	if err != nil {
		t.Fatalf("NewRetryPolicy() error = %v", err)
	}
	return p
}

func TestNewRetryPolicy_Defaults(t *testing.T) {
	p := newTestPolicy(t, RetryConfig{})

	if p.config.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", p.config.MaxAttempts)
	}
	if p.config.BaseDelay != 500*time.Millisecond {
		t.Errorf("BaseDelay = %v, want 500ms", p.config.BaseDelay)
	}
	if p.config.BackoffFactor != 2.0 {
		t.Errorf("BackoffFactor = %v, want 2.0", p.config.BackoffFactor)
	}
	if p.config.MaxDelay != 30*time.Second {
		t.Errorf("MaxDelay = %v, want 30s", p.config.MaxDelay)
	}
}

func TestNewRetryPolicy_InvalidConfig(t *testing.T) {
	if _, err := NewRetryPolicy(RetryConfig{MaxAttempts: -1}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Negative MaxAttempts: error = %v, want ErrInvalidConfig", err)
	}
	if _, err := NewRetryPolicy(RetryConfig{BackoffFactor: 0.5}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("BackoffFactor <= 1: error = %v, want ErrInvalidConfig", err)
	}
}

func TestRetryPolicy_DelayFor(t *testing.T) {
	p := newTestPolicy(t, RetryConfig{
		BaseDelay:     100 * time.Millisecond,
		BackoffFactor: 2.0,
		MaxDelay:      time.Second,
	})

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{2, 400 * time.Millisecond},
		{3, 800 * time.Millisecond},
		{4, time.Second}, // capped
		{10, time.Second},
	}

	for _, tt := range tests {
		if got := p.DelayFor(tt.attempt); got != tt.want {
			t.Errorf("DelayFor(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestRetryPolicy_ShouldRetry(t *testing.T) {
	transient := errors.New("connection reset")
	permanent := errors.New("bad request")

	p := newTestPolicy(t, RetryConfig{
		MaxAttempts: 3,
		RetryIf:     func(err error) bool { return errors.Is(err, transient) },
	})

	if !p.ShouldRetry(1, transient) {
		t.Error("ShouldRetry(1, transient) = false, want true")
	}
	if p.ShouldRetry(1, permanent) {
		t.Error("ShouldRetry(1, permanent) = true, want false")
	}
	if p.ShouldRetry(3, transient) {
		t.Error("ShouldRetry(3, transient) at cap = true, want false")
	}
	if p.ShouldRetry(1, nil) {
		t.Error("ShouldRetry(1, nil) = true, want false")
	}
}

func TestRetryPolicy_Execute_TransientRetries(t *testing.T) {
	transient := errors.New("timeout")

	p := newTestPolicy(t, RetryConfig{
		MaxAttempts:   3,
		BaseDelay:     time.Millisecond,
		BackoffFactor: 2.0,
		RetryIf:       func(err error) bool { return errors.Is(err, transient) },
	})

	calls := 0
	attempts, err := p.Execute(context.Background(), func(ctx context.Context, attempt int) error {
		calls++
		return transient
	})

	if calls != 3 {
		t.Errorf("Operation invoked %d times, want 3", calls)
	}
	if attempts != 3 {
		t.Errorf("Execute() attempts = %d, want 3", attempts)
	}
	if !errors.Is(err, transient) {
		t.Errorf("Execute() error = %v, want last observed error", err)
	}
}

func TestRetryPolicy_Execute_PermanentStopsImmediately(t *testing.T) {
	transient := errors.New("timeout")
	permanent := errors.New("invalid payload")

	p := newTestPolicy(t, RetryConfig{
		MaxAttempts:   5,
		BaseDelay:     time.Millisecond,
		BackoffFactor: 2.0,
		RetryIf:       func(err error) bool { return errors.Is(err, transient) },
	})

	calls := 0
	attempts, err := p.Execute(context.Background(), func(ctx context.Context, attempt int) error {
		calls++
		return permanent
	})

	if calls != 1 {
		t.Errorf("Operation invoked %d times, want 1", calls)
	}
	if attempts != 1 {
		t.Errorf("Execute() attempts = %d, want 1", attempts)
	}
	if !errors.Is(err, permanent) {
		t.Errorf("Execute() error = %v, want %v", err, permanent)
	}
}

func TestRetryPolicy_Execute_SucceedsAfterRetry(t *testing.T) {
	transient := errors.New("503")

	p := newTestPolicy(t, RetryConfig{
		MaxAttempts:   4,
		BaseDelay:     time.Millisecond,
		BackoffFactor: 2.0,
	})

	calls := 0
	attempts, err := p.Execute(context.Background(), func(ctx context.Context, attempt int) error {
		calls++
		if calls < 3 {
			return transient
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if attempts != 3 {
		t.Errorf("Execute() attempts = %d, want 3", attempts)
	}
}

func TestRetryPolicy_Sleep_Cancellation(t *testing.T) {
	p := newTestPolicy(t, RetryConfig{
		BaseDelay:     time.Hour,
		BackoffFactor: 2.0,
		MaxDelay:      time.Hour,
	})

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- p.Sleep(ctx, 0)
	}()

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Sleep() error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Sleep did not abort promptly on cancellation")
	}
}

func TestRetryPolicy_Execute_DeadlineDuringBackoff(t *testing.T) {
	transient := errors.New("timeout")

	p := newTestPolicy(t, RetryConfig{
		MaxAttempts:   3,
		BaseDelay:     time.Hour,
		BackoffFactor: 2.0,
		MaxDelay:      time.Hour,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	calls := 0
	start := time.Now()
	_, err := p.Execute(ctx, func(ctx context.Context, attempt int) error {
		calls++
		return transient
	})

	if calls != 1 {
		t.Errorf("Operation invoked %d times, want 1 (deadline hit during backoff)", calls)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Execute() error = %v, want context.DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Execute() took %v, want prompt abort without waiting out backoff", elapsed)
	}
}
