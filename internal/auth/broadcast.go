package auth

import (
	"sync"

	"github.com/shophub/storefront/internal/core/domain"
)

// Broadcaster fans session-change notifications out to subscribers. Embedded
// by the concrete providers so they share one subscription mechanism.
type Broadcaster struct {
	mu   sync.Mutex
	next int
	subs map[int]func(*domain.User)
}

// Subscribe registers fn for session changes and returns its cancel func.
func (b *Broadcaster) Subscribe(fn func(*domain.User)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == nil {
		b.subs = make(map[int]func(*domain.User))
	}
	id := b.next
	b.next++
	b.subs[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// Notify delivers a session change to every subscriber. user is nil on
// sign-out.
func (b *Broadcaster) Notify(user *domain.User) {
	b.mu.Lock()
	fns := make([]func(*domain.User), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(user)
	}
}
