package health

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// MonitorConfig configures the provider health monitor.
type MonitorConfig struct {
	// Timeout bounds one full CheckAll sweep. Default: 10 seconds
	Timeout time.Duration

	// MaxConcurrent caps how many probes run at once. Zero means all
	// probes run in parallel.
	MaxConcurrent int
}

// Monitor probes a set of downstream providers and grades overall
// availability. It is safe for concurrent use.
type Monitor struct {
	config MonitorConfig

	mu       sync.RWMutex
	checkers map[string]Checker
	order    []string // registration order
}

// NewMonitor creates a provider health monitor.
func NewMonitor(config MonitorConfig) *Monitor {
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	return &Monitor{
		config:   config,
		checkers: make(map[string]Checker),
	}
}

// Register adds a provider checker, replacing any previous one under the
// same resource name.
func (m *Monitor) Register(c Checker) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := c.Resource()
	if _, exists := m.checkers[name]; !exists {
		m.order = append(m.order, name)
	}
	m.checkers[name] = c
}

// Deregister removes a provider checker.
func (m *Monitor) Deregister(resource string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.checkers[resource]; !exists {
		return
	}
	delete(m.checkers, resource)
	for i, n := range m.order {
		if n == resource {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Resources returns registered provider names in registration order.
func (m *Monitor) Resources() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, len(m.order))
	copy(names, m.order)
	return names
}

// Check probes one provider by name.
func (m *Monitor) Check(ctx context.Context, resource string) (Result, error) {
	m.mu.RLock()
	checker, ok := m.checkers[resource]
	m.mu.RUnlock()

	if !ok {
		return Result{}, ErrUnknownResource
	}
	return m.probe(ctx, checker), nil
}

// CheckAll probes every registered provider concurrently and returns one
// Result per resource. A probe that outlives the sweep deadline is reported
// unhealthy with ErrProbeTimeout rather than blocking the sweep.
func (m *Monitor) CheckAll(ctx context.Context) map[string]Result {
	m.mu.RLock()
	checkers := make([]Checker, 0, len(m.order))
	for _, name := range m.order {
		checkers = append(checkers, m.checkers[name])
	}
	m.mu.RUnlock()

	results := make(map[string]Result, len(checkers))
	if len(checkers) == 0 {
		return results
	}

	ctx, cancel := context.WithTimeout(ctx, m.config.Timeout)
	defer cancel()

	var rmu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	if m.config.MaxConcurrent > 0 {
		g.SetLimit(m.config.MaxConcurrent)
	}
	for _, checker := range checkers {
		g.Go(func() error {
			result := m.probe(ctx, checker)
			rmu.Lock()
			results[checker.Resource()] = result
			rmu.Unlock()
			return nil
		})
	}
	// Probes never return errors; outcomes land in their Results.
	_ = g.Wait()

	return results
}

// Overall folds per-provider results into one status: unhealthy if any
// provider is unhealthy, degraded if any is degraded, healthy otherwise.
func Overall(results map[string]Result) Status {
	worst := StatusHealthy
	for _, result := range results {
		if result.Status > worst {
			worst = result.Status
		}
	}
	return worst
}

// probe runs one check, decoupled from the checker so a stuck probe cannot
// wedge the sweep past its deadline.
func (m *Monitor) probe(ctx context.Context, checker Checker) Result {
	start := time.Now()
	resultCh := make(chan Result, 1)

	go func() {
		result := checker.CheckHealth(ctx)
		result.Elapsed = time.Since(start)
		if result.CheckedAt.IsZero() {
			result.CheckedAt = start
		}
		if result.Resource == "" {
			result.Resource = checker.Resource()
		}
		resultCh <- result
	}()

	select {
	case result := <-resultCh:
		return result
	case <-ctx.Done():
		return Result{
			Resource:  checker.Resource(),
			Status:    StatusUnhealthy,
			Message:   "probe timed out",
			Err:       ErrProbeTimeout,
			Elapsed:   time.Since(start),
			CheckedAt: start,
		}
	}
}
