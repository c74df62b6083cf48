package fetch

import "sync"

// Guard rejects a mutation while an earlier one for the same key is still in
// flight. Keys are caller-chosen, typically one per bet or message being
// edited, so unrelated mutations never block each other.
type Guard struct {
	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewGuard creates an empty guard
func NewGuard() *Guard {
	return &Guard{inflight: make(map[string]struct{})}
}

// TryAcquire claims the key. It returns false when the key is already held,
// in which case the caller drops the duplicate mutation.
func (g *Guard) TryAcquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, held := g.inflight[key]; held {
		return false
	}
	g.inflight[key] = struct{}{}
	return true
}

// Release frees the key. Releasing an unheld key is a no-op.
func (g *Guard) Release(key string) {
	g.mu.Lock()
	delete(g.inflight, key)
	g.mu.Unlock()
}
