package catalog

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shophub/storefront/internal/core/domain"
)

// DebounceWindow is how long a keystroke burst must go quiet before a
// suggestion lookup is issued.
const DebounceWindow = 300 * time.Millisecond

// suggestLimit caps how many suggestions one lookup returns.
const suggestLimit = 10

// Searcher is the slice of the catalog the suggester needs.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]domain.Product, error)
}

// Suggester debounces search input: a pending lookup is superseded whenever a
// new keystroke arrives inside the window, so only the last keystroke in a
// burst issues a remote query. Each input takes a monotonically increasing
// token and a lookup delivers its results only while its token is still the
// latest; a superseded query that resolves late is discarded instead of
// applied over newer input.
type Suggester struct {
	search Searcher
	window time.Duration
	apply  func([]domain.Product)

	mu     sync.Mutex
	timer  *time.Timer
	seq    uint64
	closed bool
}

// NewSuggester wires a suggester that delivers results through apply.
// apply runs on the lookup goroutine and must not call back into the
// Suggester.
func NewSuggester(search Searcher, window time.Duration, apply func([]domain.Product)) *Suggester {
	if window <= 0 {
		window = DebounceWindow
	}
	return &Suggester{search: search, window: window, apply: apply}
}

// Input feeds one keystroke's worth of query text. Queries of fewer than two
// significant characters clear the suggestions immediately instead of hitting
// the store.
func (s *Suggester) Input(ctx context.Context, query string) {
	query = strings.TrimSpace(query)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.seq++
	token := s.seq
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	if len(query) < 2 {
		s.mu.Unlock()
		s.apply(nil)
		return
	}

	s.timer = time.AfterFunc(s.window, func() {
		s.lookup(ctx, token, query)
	})
	s.mu.Unlock()
}

// Close stops any pending lookup and prevents further delivery. Idempotent.
func (s *Suggester) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Suggester) lookup(ctx context.Context, token uint64, query string) {
	products, err := s.search.Search(ctx, query, suggestLimit)
	if err != nil {
		slog.WarnContext(ctx, "suggestion lookup failed", "query", query, "error", err)
		return
	}

	s.mu.Lock()
	stale := s.closed || token != s.seq
	s.mu.Unlock()
	if stale {
		return
	}
	s.apply(products)
}
