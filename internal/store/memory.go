package store

import (
	"context"
	"sync"
)

// MemoryStore keeps collections in process memory. Used by tests and as the
// fallback when no DATABASE_URL is configured. Same last-writer-wins
// contract as the durable implementation.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (m *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(doc))
	copy(out, doc)
	return out, nil
}

func (m *MemoryStore) Save(_ context.Context, key string, doc []byte) error {
	in := make([]byte, len(doc))
	copy(in, doc)
	m.mu.Lock()
	m.docs[key] = in
	m.mu.Unlock()
	return nil
}
