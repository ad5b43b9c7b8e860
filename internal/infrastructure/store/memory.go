// internal/infrastructure/store/memory.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore is an in-process Store used in tests and single-node
// development. It keeps the same JSON round-trip semantics as the
// Redis store so decode behavior matches production.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemory creates an empty in-memory store
func NewMemory() *MemoryStore {
	return &MemoryStore{
		values: make(map[string][]byte),
	}
}

// Load retrieves and decodes a value by key
func (m *MemoryStore) Load(ctx context.Context, key string, dest interface{}) (bool, error) {
	m.mu.RLock()
	raw, ok := m.values[key]
	m.mu.RUnlock()

	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("%w: key %q: %v", ErrCorrupt, key, err)
	}

	return true, nil
}

// Save serializes and stores a value
func (m *MemoryStore) Save(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize value for key %q: %w", key, err)
	}

	m.mu.Lock()
	m.values[key] = raw
	m.mu.Unlock()

	return nil
}

// Delete removes a key; deleting an absent key is not an error
func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.values, key)
	m.mu.Unlock()
	return nil
}

// SaveRaw stores bytes without serialization. Tests use it to simulate
// corrupt persisted state.
func (m *MemoryStore) SaveRaw(key string, raw []byte) {
	m.mu.Lock()
	m.values[key] = raw
	m.mu.Unlock()
}

// Has reports whether a key currently exists
func (m *MemoryStore) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.values[key]
	return ok
}
