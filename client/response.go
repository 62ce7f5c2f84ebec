package client

import "time"

// ErrorKind classifies why a call failed. It lets callers distinguish
// "service is unavailable" from "service rejected the request" without
// inspecting error strings.
type ErrorKind int

const (
	// KindNone means the call succeeded.
	KindNone ErrorKind = iota
	// KindCircuitOpen means the circuit breaker rejected the call before
	// any transport attempt.
	KindCircuitOpen
	// KindRateLimited means the fixed-window quota rejected the call before
	// any transport attempt.
	KindRateLimited
	// KindTransient means the terminal failure was a retryable transport
	// error: timeout, connection failure, or a 5xx response.
	KindTransient
	// KindPermanent means the service rejected the request itself: a 4xx
	// response or a malformed request. Never retried.
	KindPermanent
	// KindCancelled means the caller's deadline expired or the call was
	// cancelled mid-flight.
	KindCancelled
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindCircuitOpen:
		return "circuit_open"
	case KindRateLimited:
		return "rate_limited"
	case KindTransient:
		return "transient"
	case KindPermanent:
		return "permanent"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Response is the uniform result of a single logical call, whichever gate or
// stage produced it. It is immutable once returned and not retained by the
// client.
type Response struct {
	// Success reports whether the call produced a usable provider response.
	Success bool

	// Data is the opaque response body. Nil on failure.
	Data []byte

	// StatusCode is the HTTP-equivalent status of the final transport
	// attempt. Zero when no transport attempt was made.
	StatusCode int

	// ErrorKind classifies the failure. KindNone on success.
	ErrorKind ErrorKind

	// Err is the terminal error. Nil on success.
	Err error

	// Elapsed is the total wall time of the call including retries and
	// backoff.
	Elapsed time.Duration

	// Cached reports whether the response was served from the cache.
	Cached bool

	// Attempts is the number of transport invocations made. Zero for gate
	// rejections and cache hits.
	Attempts int
}
