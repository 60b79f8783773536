package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Memory is a session kept in process memory.
type Memory struct {
	id     string
	mu     sync.RWMutex
	values map[string]any
}

// NewMemory creates an empty session. An empty id is replaced by a random one.
func NewMemory(id string) *Memory {
	if id == "" {
		id = uuid.NewString()
	}

	return &Memory{id: id, values: make(map[string]any)}
}

func (m *Memory) ID() string {
	return m.id
}

func (m *Memory) Get(name string, def any) any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if v, ok := m.values[name]; ok {
		return v
	}

	return def
}

func (m *Memory) Set(name string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[name] = value
}

func (m *Memory) Has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.values[name]

	return ok
}

func (m *Memory) All() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make(map[string]any, len(m.values))
	for k, v := range m.values {
		all[k] = v
	}

	return all
}

// Remove deletes name and returns the value it held, or nil.
func (m *Memory) Remove(name string) any {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := m.values[name]
	delete(m.values, name)

	return v
}

func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values = make(map[string]any)
}

// Save is a no-op: the values already live in memory.
func (*Memory) Save(context.Context) error {
	return nil
}

func (m *Memory) replace(values map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values = values
}
