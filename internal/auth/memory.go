package auth

import (
	"context"
	"sync"

	"github.com/shophub/storefront/internal/core/domain"
)

var _ SessionProvider = (*MemoryProvider)(nil)

// MemoryProvider is an in-memory SessionProvider for development and tests.
type MemoryProvider struct {
	Broadcaster

	mu       sync.RWMutex
	sessions map[string]domain.User // token → user
}

// NewMemoryProvider returns a provider with no sessions.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{sessions: make(map[string]domain.User)}
}

// SignIn registers a session token for user and notifies subscribers.
func (p *MemoryProvider) SignIn(token string, user domain.User) {
	p.mu.Lock()
	p.sessions[token] = user
	p.mu.Unlock()
	p.Notify(&user)
}

func (p *MemoryProvider) Current(ctx context.Context) (*domain.User, error) {
	token := TokenFromContext(ctx)
	if token == "" {
		return nil, nil
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	user, ok := p.sessions[token]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (p *MemoryProvider) SignOut(ctx context.Context) error {
	token := TokenFromContext(ctx)
	p.mu.Lock()
	delete(p.sessions, token)
	p.mu.Unlock()
	p.Notify(nil)
	return nil
}
