package cart

import "sync"

// Manager hands out per-session carts. Each cart keeps the single-owner
// guarantee of the original design by serializing all access through With:
// two requests for the same session never mutate the cart concurrently,
// while different sessions proceed independently.
type Manager struct {
	mu    sync.Mutex
	carts map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	cart *Cart
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{carts: make(map[string]*entry)}
}

// With runs fn with exclusive ownership of the session's cart, creating the
// cart on first use. fn must not retain the *Cart after returning.
func (m *Manager) With(sessionID string, fn func(*Cart)) {
	e := m.entryFor(sessionID)
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.cart)
}

// Drop discards the session's cart entirely (the in-memory cart is lost on
// session end; there is no persistence layer behind it).
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionID)
}

func (m *Manager) entryFor(sessionID string) *entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.carts[sessionID]
	if !ok {
		e = &entry{cart: New()}
		m.carts[sessionID] = e
	}
	return e
}
