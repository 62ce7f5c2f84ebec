package client

import (
	"context"
	"time"
)

// Request is a fully-formed outbound request descriptor. An adapter layer
// owns vendor specifics: authentication headers, payload shaping, and base
// URLs are its responsibility, not this package's.
type Request struct {
	// Method is the HTTP-equivalent method, e.g. "POST".
	Method string

	// Endpoint identifies the remote operation, e.g.
	// "https://api.example.com/identity/verify".
	Endpoint string

	// Headers are additional request headers, already complete.
	Headers map[string]string

	// Payload is the request body. It must serialize deterministically to
	// JSON; it also feeds the cache key.
	Payload any

	// CacheTTL overrides the cache policy's default TTL for this request.
	// Zero means use the default.
	CacheTTL time.Duration

	// NoCache disables cache lookup and store for this request.
	NoCache bool
}

// Result is what the transport produced for one attempt.
type Result struct {
	StatusCode int
	Body       []byte
	Headers    map[string]string
}

// Transport performs the actual I/O for one attempt.
//
// Contract:
// - Context: Send must honor ctx cancellation and deadline.
// - Errors: Send returns a non-nil error only for transport-level failures
//   (connection, timeout). A response with an error status code is returned
//   as a Result with err == nil; classification is the caller's job.
// - Concurrency: implementations must be safe for concurrent use.
type Transport interface {
	Send(ctx context.Context, req Request) (*Result, error)
}

// CallEvent describes the terminal outcome of one logical call. Exactly one
// event is emitted per call, not per retry attempt.
type CallEvent struct {
	Resource   string
	Method     string
	Endpoint   string
	Success    bool
	Cached     bool
	StatusCode int
	ErrorKind  ErrorKind
	Attempts   int
	Elapsed    time.Duration
}

// Recorder receives call outcomes for metrics and audit. Implementations
// must be safe for concurrent use and must not block the calling goroutine
// for long.
type Recorder interface {
	RecordCall(ctx context.Context, ev CallEvent)
}

// NopRecorder is a Recorder that discards all events.
type NopRecorder struct{}

// RecordCall discards the event.
func (NopRecorder) RecordCall(context.Context, CallEvent) {}
