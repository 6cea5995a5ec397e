package live

import "sync"

// TenantSession owns every live subscription established for one resolved
// tenant. Switching tenants means closing the old session before opening a
// new one, so listeners never leak across a sign-out/sign-in and a stale
// tenant's events are never delivered after the switch.
type TenantSession struct {
	BusinessID string

	hub      *Hub
	mu       sync.Mutex
	cleanups []func()
	closed   bool
}

func NewTenantSession(hub *Hub, businessID string) *TenantSession {
	return &TenantSession{
		BusinessID: businessID,
		hub:        hub,
	}
}

// Subscribe opens a subscription on one of the session tenant's topics. The
// subscription is owned by the session and torn down on Close. Returns nil
// if the session is already closed.
func (s *TenantSession) Subscribe(topic string) chan Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	ch, cleanup := s.hub.Subscribe(s.BusinessID, topic)
	s.cleanups = append(s.cleanups, cleanup)
	return ch
}

// Close tears down every subscription the session owns. Safe to call more
// than once.
func (s *TenantSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	for _, cleanup := range s.cleanups {
		cleanup()
	}
	s.cleanups = nil
}
