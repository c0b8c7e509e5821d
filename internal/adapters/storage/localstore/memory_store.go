package localstore

import (
	"context"
	"sync"
)

// MemoryStore keeps entries in process memory. Entries do not survive a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]map[string]string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]map[string]string)}
}

// GetItems implements Store.
func (m *MemoryStore) GetItems(_ context.Context, browserID string, keys ...string) (map[string]string, error) {
	if browserID == "" {
		return nil, ErrEmptyBrowserID
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(keys))
	items := m.entries[browserID]
	for _, k := range keys {
		if v, ok := items[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

// SetItems implements Store.
func (m *MemoryStore) SetItems(_ context.Context, browserID string, items map[string]string) error {
	if browserID == "" {
		return ErrEmptyBrowserID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.entries[browserID]
	if !ok {
		existing = make(map[string]string, len(items))
		m.entries[browserID] = existing
	}
	for k, v := range items {
		existing[k] = v
	}
	return nil
}

// RemoveItems implements Store.
func (m *MemoryStore) RemoveItems(_ context.Context, browserID string, keys ...string) error {
	if browserID == "" {
		return ErrEmptyBrowserID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	items, ok := m.entries[browserID]
	if !ok {
		return nil
	}
	for _, k := range keys {
		delete(items, k)
	}
	if len(items) == 0 {
		delete(m.entries, browserID)
	}
	return nil
}

// Touch implements Store. Memory entries never expire.
func (m *MemoryStore) Touch(_ context.Context, browserID string) error {
	if browserID == "" {
		return ErrEmptyBrowserID
	}
	return nil
}
