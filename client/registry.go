package client

import (
	"context"
	"sync"

	"github.com/verifykit/outbound/health"
)

// Manager holds the per-provider clients for a process and offers aggregate
// operations across them. It is safe for concurrent use.
type Manager struct {
	monitor *health.Monitor

	mu      sync.RWMutex
	clients map[string]*Client
	order   []string // registration order
}

// NewManager creates an empty client manager.
func NewManager(monitorConfig health.MonitorConfig) *Manager {
	return &Manager{
		monitor: health.NewMonitor(monitorConfig),
		clients: make(map[string]*Client),
	}
}

// Add registers a client under its resource name, replacing any previous
// client for the same provider.
func (m *Manager) Add(c *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := c.Resource()
	if _, exists := m.clients[name]; !exists {
		m.order = append(m.order, name)
	}
	m.clients[name] = c
	m.monitor.Register(c)
}

// Remove deregisters the client for a provider.
func (m *Manager) Remove(resource string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.clients[resource]; !exists {
		return
	}
	delete(m.clients, resource)
	for i, n := range m.order {
		if n == resource {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.monitor.Deregister(resource)
}

// Get returns the client for a provider, or false when none is registered.
func (m *Manager) Get(resource string) (*Client, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.clients[resource]
	return c, ok
}

// Names returns registered provider names in registration order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, len(m.order))
	copy(names, m.order)
	return names
}

// CheckAll probes every registered provider concurrently and returns one
// result per resource.
func (m *Manager) CheckAll(ctx context.Context) map[string]health.Result {
	return m.monitor.CheckAll(ctx)
}

// StatsAll returns current performance counters for every registered client.
func (m *Manager) StatsAll() map[string]Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := make(map[string]Stats, len(m.clients))
	for name, c := range m.clients {
		stats[name] = c.Stats()
	}
	return stats
}
