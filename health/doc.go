// Package health probes downstream identity providers and grades their
// availability.
//
// A Checker wraps one provider's health probe; Monitor fans probes out
// concurrently, bounds the sweep with a deadline, and folds the per-provider
// results into an overall status. Grading is three-valued: healthy, degraded
// (reachable but recovering), unhealthy.
package health
