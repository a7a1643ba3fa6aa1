package settings

import (
	"context"
	"sync"
)

// Memory is an in-process Store. It is the only backend with a write
// surface, which exists for tests and for applications that manage their
// own settings lifecycle.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates a memory store seeded with the given values.
func NewMemory(values map[string]string) *Memory {
	m := &Memory{values: make(map[string]string, len(values))}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

// Set stores a value.
func (m *Memory) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Delete removes a key.
func (m *Memory) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}

// Close implements Store.
func (m *Memory) Close() error {
	return nil
}
