// Package metrics provides a small Prometheus-backed manager for the counters foundation components emit.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var errOddLabels = errors.New("labels must be given as name/value pairs")

// Logger is the logging surface of the manager. Failures to record a metric are logged, not returned,
// so that callers do not have to check an error on every increment.
type Logger interface {
	Warnf(format string, args ...any)
}

// Manager registers counters on a Prometheus registry and increments them by name.
type Manager struct {
	mu       sync.RWMutex
	registry *prometheus.Registry
	counters map[string]*prometheus.CounterVec
	logger   Logger
}

// NewManager creates a manager with its own registry.
func NewManager(logger Logger) *Manager {
	return &Manager{
		registry: prometheus.NewRegistry(),
		counters: make(map[string]*prometheus.CounterVec),
		logger:   logger,
	}
}

// Registry returns the registry the counters live on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// NewCounter registers a counter with the given label names.
func (m *Manager) NewCounter(name, desc string, labelNames ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: desc}, labelNames)
	if err := m.registry.Register(c); err != nil {
		return fmt.Errorf("registering counter %s: %w", name, err)
	}

	m.counters[name] = c

	return nil
}

// IncrementCounter adds one to the counter. labels are name/value pairs.
func (m *Manager) IncrementCounter(_ context.Context, name string, labels ...string) {
	m.mu.RLock()
	c, ok := m.counters[name]
	m.mu.RUnlock()

	if !ok {
		m.logger.Warnf("metric %s is not registered", name)
		return
	}

	l, err := toLabels(labels)
	if err != nil {
		m.logger.Warnf("metric %s: %v", name, err)
		return
	}

	counter, err := c.GetMetricWith(l)
	if err != nil {
		m.logger.Warnf("metric %s: %v", name, err)
		return
	}

	counter.Inc()
}

// WriteToTextfile writes every registered metric to path in the text exposition format, for
// pick-up by a node exporter textfile collector.
func (m *Manager) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func toLabels(pairs []string) (prometheus.Labels, error) {
	if len(pairs)%2 != 0 {
		return nil, errOddLabels
	}

	l := make(prometheus.Labels, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		l[pairs[i]] = pairs[i+1]
	}

	return l, nil
}
