package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/verifykit/outbound/health"
	"github.com/verifykit/outbound/resilience"
)

// CheckHealth probes the provider's health endpoint and grades the outcome.
// The probe bypasses the response cache so it always observes the live
// service; it still passes through the breaker and rate limiter like any
// other call. Client implements health.Checker.
func (c *Client) CheckHealth(ctx context.Context) health.Result {
	resp, _ := c.Call(ctx, Request{
		Method:   http.MethodGet,
		Endpoint: c.config.HealthEndpoint,
		NoCache:  true,
	})

	state := c.breaker.GetState().State
	result := health.Result{
		Resource: c.config.Resource,
		Elapsed:  resp.Elapsed,
		Details: map[string]any{
			"breaker_state": state.String(),
			"status_code":   resp.StatusCode,
			"attempts":      resp.Attempts,
		},
	}

	switch {
	case !resp.Success:
		result.Status = health.StatusUnhealthy
		result.Message = fmt.Sprintf("probe failed: %s", resp.ErrorKind)
		result.Err = resp.Err
	case state == resilience.StateHalfOpen, resp.Attempts > 1:
		// Reachable but recovering: mid-probe-cycle, or succeeded only
		// after retries.
		result.Status = health.StatusDegraded
		result.Message = "recovering"
	default:
		result.Status = health.StatusHealthy
		result.Message = "ok"
	}
	return result
}
