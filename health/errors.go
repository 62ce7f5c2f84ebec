package health

import "errors"

var (
	// ErrProbeTimeout indicates a provider probe exceeded the monitor's
	// deadline.
	ErrProbeTimeout = errors.New("health: probe timed out")

	// ErrUnknownResource indicates no checker is registered under the
	// requested provider name.
	ErrUnknownResource = errors.New("health: unknown resource")
)
