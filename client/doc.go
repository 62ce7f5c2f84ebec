// Package client orchestrates resilient outbound calls to identity
// providers: KYC services, credit bureaus, reputation services.
//
// A Client wraps one provider's transport with a circuit breaker, response
// cache, rate limiter, and retry policy. Every call flows through the gates
// in that order and resolves to a uniform Response whose ErrorKind tells
// the caller whether the provider was unavailable, over quota, or rejected
// the request itself. A Manager groups the per-provider clients and offers
// aggregate health and stats views.
//
// Basic usage:
//
//	c, err := client.New(client.Config{
//		Resource:        "experian",
//		CacheDefaultTTL: time.Hour,
//	}, transport)
//	if err != nil {
//		return err
//	}
//
//	resp, err := c.Call(ctx, client.Request{
//		Method:   "POST",
//		Endpoint: "https://api.experian.example/credit/check",
//		Payload:  map[string]any{"reference": ref},
//	})
//	if resp.ErrorKind == client.KindCircuitOpen {
//		// provider is down, serve the degraded path
//	}
package client
