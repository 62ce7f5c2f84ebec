package client

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/verifykit/outbound/cache"
	"github.com/verifykit/outbound/clock"
	"github.com/verifykit/outbound/resilience"
)

// Client orchestrates outbound calls to one downstream service, applying the
// circuit breaker, response cache, rate limiter, and retry policy in that
// order. One Client is shared by all callers of the service and lives for
// the process lifetime; it is safe for concurrent use.
type Client struct {
	config    Config
	transport Transport

	breaker  *resilience.CircuitBreaker
	limiter  *resilience.RateLimiter
	retry    *resilience.RetryPolicy
	cache    cache.Cache
	keyer    cache.Keyer
	policy   cache.Policy
	recorder Recorder
	clock    clock.Clock

	onStateChange func(from, to resilience.State)

	mu           sync.Mutex
	calls        uint64
	errs         uint64
	totalElapsed time.Duration
}

// Option customizes a Client beyond what Config covers.
type Option func(*Client)

// WithRecorder sets the metrics/audit sink. Default: NopRecorder.
func WithRecorder(r Recorder) Option {
	return func(c *Client) {
		if r != nil {
			c.recorder = r
		}
	}
}

// WithCache replaces the default in-memory response cache.
func WithCache(store cache.Cache) Option {
	return func(c *Client) {
		if store != nil {
			c.cache = store
		}
	}
}

// WithKeyer replaces the default request keyer.
func WithKeyer(k cache.Keyer) Option {
	return func(c *Client) {
		if k != nil {
			c.keyer = k
		}
	}
}

// WithStateChangeHook registers a callback for circuit breaker transitions,
// for audit logging of open/close events.
func WithStateChangeHook(hook func(from, to resilience.State)) Option {
	return func(c *Client) {
		c.onStateChange = hook
	}
}

// New creates a Client for one downstream service. Zero-valued config fields
// receive defaults; explicitly invalid values are rejected.
func New(config Config, transport Transport, opts ...Option) (*Client, error) {
	if transport == nil {
		return nil, ErrNilTransport
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	config = config.withDefaults()

	c := &Client{
		config:    config,
		transport: transport,
		recorder:  NopRecorder{},
		keyer:     cache.NewRequestKeyer(),
		clock:     config.Clock,
	}
	for _, opt := range opts {
		opt(c)
	}

	breaker, err := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		FailureThreshold: config.FailureThreshold,
		RecoveryTimeout:  config.RecoveryTimeout,
		SuccessThreshold: config.SuccessThreshold,
		OnStateChange:    c.onStateChange,
		Clock:            config.Clock,
	})
	if err != nil {
		return nil, err
	}
	c.breaker = breaker

	limiter, err := resilience.NewRateLimiter(resilience.RateLimiterConfig{
		MaxRequests: config.RateLimitMaxRequests,
		Window:      config.RateLimitWindow,
		Clock:       config.Clock,
	})
	if err != nil {
		return nil, err
	}
	c.limiter = limiter

	retry, err := resilience.NewRetryPolicy(resilience.RetryConfig{
		MaxAttempts:   config.RetryMaxAttempts,
		BaseDelay:     config.RetryBaseDelay,
		BackoffFactor: config.RetryBackoffFactor,
		MaxDelay:      config.RetryMaxDelay,
		RetryIf:       IsTransient,
	})
	if err != nil {
		return nil, err
	}
	c.retry = retry

	if config.CacheDefaultTTL > 0 {
		c.policy = cache.Policy{DefaultTTL: config.CacheDefaultTTL, MaxTTL: config.CacheMaxTTL}
	} else {
		c.policy = cache.NoCachePolicy()
	}
	if c.cache == nil && c.policy.ShouldCache() {
		store, err := cache.NewMemoryCache(cache.MemoryCacheConfig{
			MaxEntries: config.CacheMaxEntries,
			Clock:      config.Clock,
		})
		if err != nil {
			return nil, err
		}
		c.cache = store
	}

	return c, nil
}

// Resource returns the logical downstream service name.
func (c *Client) Resource() string {
	return c.config.Resource
}

// Call performs one logical outbound call. The returned Response is never
// nil; err mirrors Response.Err so callers can use either convention.
//
// Flow: the circuit breaker gates first, then the cache is consulted, then
// the rate limiter, then the transport runs under the retry policy. Gate
// rejections and cache hits never touch breaker or rate-limiter counters;
// a terminal transport outcome records exactly one breaker success or
// failure.
func (c *Client) Call(ctx context.Context, req Request) (*Response, error) {
	start := c.clock.Now()

	if !c.breaker.CanExecute() {
		resp := &Response{ErrorKind: KindCircuitOpen, Err: resilience.ErrCircuitOpen}
		return c.finish(ctx, req, resp, start)
	}

	cacheKey := c.cacheKey(req)
	if cacheKey != "" {
		if data, ok := c.cache.Get(ctx, cacheKey); ok {
			resp := &Response{
				Success:    true,
				Data:       data,
				StatusCode: http.StatusOK,
				Cached:     true,
			}
			return c.finish(ctx, req, resp, start)
		}
	}

	if !c.limiter.Allow() {
		resp := &Response{ErrorKind: KindRateLimited, Err: resilience.ErrRateLimited}
		return c.finish(ctx, req, resp, start)
	}

	var result *Result
	attempts, err := c.retry.Execute(ctx, func(ctx context.Context, _ int) error {
		res, aerr := c.attempt(ctx, req)
		if aerr != nil {
			return aerr
		}
		result = res
		return nil
	})

	resp := &Response{Attempts: attempts}
	if err != nil {
		c.breaker.RecordFailure()
		resp.ErrorKind = classify(err)
		resp.Err = err
		var te *TransportError
		if errors.As(err, &te) {
			resp.StatusCode = te.StatusCode
		}
		return c.finish(ctx, req, resp, start)
	}

	c.breaker.RecordSuccess()
	resp.Success = true
	resp.Data = result.Body
	resp.StatusCode = result.StatusCode
	if cacheKey != "" {
		// Best effort: a full or failing cache never fails the call.
		_ = c.cache.Set(ctx, cacheKey, result.Body, c.policy.EffectiveTTL(req.CacheTTL))
	}
	return c.finish(ctx, req, resp, start)
}

// cacheKey returns the deterministic key for req, or "" when this request
// is not cacheable or its payload cannot be keyed.
func (c *Client) cacheKey(req Request) string {
	if req.NoCache || c.cache == nil || !c.policy.ShouldCache() {
		return ""
	}
	key, err := c.keyer.Key(req.Method, req.Endpoint, req.Payload)
	if err != nil {
		return ""
	}
	return key
}

// attempt runs one transport invocation under the per-attempt timeout and
// classifies the outcome.
func (c *Client) attempt(parent context.Context, req Request) (*Result, error) {
	ctx := parent
	if c.config.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(parent, c.config.CallTimeout)
		defer cancel()
	}

	result, err := c.transport.Send(ctx, req)
	if err != nil {
		// The caller's own deadline or cancellation is not the provider's
		// fault; a per-attempt timeout is and stays retryable.
		if parent.Err() != nil {
			return nil, &TransportError{Kind: KindCancelled, Err: err}
		}
		return nil, &TransportError{Kind: KindTransient, Err: err}
	}

	switch {
	case result.StatusCode >= 500:
		return nil, &TransportError{Kind: KindTransient, StatusCode: result.StatusCode}
	case result.StatusCode >= 400:
		return nil, &TransportError{Kind: KindPermanent, StatusCode: result.StatusCode}
	}
	return result, nil
}

// classify maps a terminal error to its ErrorKind. Bare context errors come
// from a cancelled backoff sleep.
func classify(err error) ErrorKind {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Kind
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindCancelled
	}
	return KindTransient
}

// finish stamps elapsed time, updates the rolling stats, emits the single
// terminal call event, and returns the response.
func (c *Client) finish(ctx context.Context, req Request, resp *Response, start time.Time) (*Response, error) {
	resp.Elapsed = c.clock.Now().Sub(start)

	c.mu.Lock()
	c.calls++
	if !resp.Success {
		c.errs++
	}
	c.totalElapsed += resp.Elapsed
	c.mu.Unlock()

	c.recorder.RecordCall(ctx, CallEvent{
		Resource:   c.config.Resource,
		Method:     req.Method,
		Endpoint:   req.Endpoint,
		Success:    resp.Success,
		Cached:     resp.Cached,
		StatusCode: resp.StatusCode,
		ErrorKind:  resp.ErrorKind,
		Attempts:   resp.Attempts,
		Elapsed:    resp.Elapsed,
	})

	return resp, resp.Err
}
