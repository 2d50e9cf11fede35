package store

import (
	"context"
	"sync"
)

// MemoryKV is an in-memory KV implementation for tests and dry runs.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte

	// FailSaves makes every Save return FailErr, for exercising
	// persistence-failure paths.
	FailSaves bool
	FailErr   error
}

// NewMemoryKV returns an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Load(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *MemoryKV) Save(_ context.Context, key string, value []byte) error {
	if m.FailSaves {
		return m.FailErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

func (m *MemoryKV) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
