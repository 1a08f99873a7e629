package session

import (
	"context"
	"sync"
)

// Store is a per-session string key/value store. Values persist until
// removed or the whole session is cleared; there is no expiry below the
// session TTL and no encryption.
type Store interface {
	Set(ctx context.Context, sid, key, value string) error
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, sid, key string) (string, bool, error)
	Remove(ctx context.Context, sid, key string) error
	// Clear drops every key of the session.
	Clear(ctx context.Context, sid string) error
}

type memoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]string // sid -> key -> value
}

// NewMemoryStore returns a process-local Store. Used in tests and as the
// zero-dependency default.
func NewMemoryStore() Store {
	return &memoryStore{data: map[string]map[string]string{}}
}

func (m *memoryStore) Set(_ context.Context, sid, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kv, ok := m.data[sid]
	if !ok {
		kv = map[string]string{}
		m.data[sid] = kv
	}
	kv[key] = value
	return nil
}

func (m *memoryStore) Get(_ context.Context, sid, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[sid][key]
	return v, ok, nil
}

func (m *memoryStore) Remove(_ context.Context, sid, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data[sid], key)
	return nil
}

func (m *memoryStore) Clear(_ context.Context, sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, sid)
	return nil
}
