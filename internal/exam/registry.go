package exam

import "sync"

// Registry keeps at most one live attempt per session. Starting a new
// attempt silently replaces the old one; a response still in flight for the
// replaced attempt then fails its stale check and is dropped.
type Registry struct {
	mu       sync.RWMutex
	attempts map[string]*Attempt
}

func NewRegistry() *Registry {
	return &Registry{attempts: map[string]*Attempt{}}
}

func (r *Registry) Start(sid string, a *Attempt) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts[sid] = a
}

func (r *Registry) Get(sid string) (*Attempt, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.attempts[sid]
	return a, ok
}

func (r *Registry) Drop(sid string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.attempts, sid)
}
