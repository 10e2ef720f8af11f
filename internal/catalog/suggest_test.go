package catalog

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shophub/storefront/internal/core/domain"
)

// scriptedSearcher records queries and can park a lookup until released.
type scriptedSearcher struct {
	mu      sync.Mutex
	queries []string
	park    map[string]chan struct{} // query → release signal
}

func (s *scriptedSearcher) Search(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	s.mu.Lock()
	s.queries = append(s.queries, query)
	release := s.park[query]
	s.mu.Unlock()

	if release != nil {
		<-release
	}
	return []domain.Product{{ID: query, Name: query}}, nil
}

func (s *scriptedSearcher) seen() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.queries))
	copy(out, s.queries)
	return out
}

type applied struct {
	mu      sync.Mutex
	batches [][]domain.Product
}

func (a *applied) apply(products []domain.Product) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.batches = append(a.batches, products)
}

func (a *applied) all() [][]domain.Product {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([][]domain.Product, len(a.batches))
	copy(out, a.batches)
	return out
}

func TestOnlyLastKeystrokeInBurstIssuesQuery(t *testing.T) {
	searcher := &scriptedSearcher{}
	sink := &applied{}
	s := NewSuggester(searcher, 100*time.Millisecond, sink.apply)
	defer s.Close()

	ctx := context.Background()
	s.Input(ctx, "de")
	s.Input(ctx, "des")
	s.Input(ctx, "desk")

	require.Eventually(t, func() bool {
		return len(sink.all()) == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"desk"}, searcher.seen())
	batches := sink.all()
	require.Len(t, batches[0], 1)
	assert.Equal(t, "desk", batches[0][0].ID)
}

func TestShortQueryClearsWithoutRemoteCall(t *testing.T) {
	searcher := &scriptedSearcher{}
	sink := &applied{}
	s := NewSuggester(searcher, 10*time.Millisecond, sink.apply)
	defer s.Close()

	s.Input(context.Background(), "d")

	batches := sink.all()
	require.Len(t, batches, 1)
	assert.Nil(t, batches[0])
	assert.Empty(t, searcher.seen())
}

func TestLateResultFromSupersededQueryIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	searcher := &scriptedSearcher{park: map[string]chan struct{}{"slow": release}}
	sink := &applied{}
	s := NewSuggester(searcher, 5*time.Millisecond, sink.apply)
	defer s.Close()

	ctx := context.Background()
	s.Input(ctx, "slow")

	// Wait for the slow lookup to be in flight before superseding it.
	require.Eventually(t, func() bool {
		return len(searcher.seen()) == 1
	}, time.Second, time.Millisecond)

	s.Input(ctx, "fast")
	require.Eventually(t, func() bool {
		return len(sink.all()) == 1
	}, time.Second, time.Millisecond)

	// Let the superseded lookup resolve late: its result must not land.
	close(release)
	time.Sleep(50 * time.Millisecond)

	batches := sink.all()
	require.Len(t, batches, 1)
	require.Len(t, batches[0], 1)
	assert.Equal(t, "fast", batches[0][0].ID)
}

func TestCloseStopsPendingLookup(t *testing.T) {
	searcher := &scriptedSearcher{}
	sink := &applied{}
	s := NewSuggester(searcher, 20*time.Millisecond, sink.apply)

	s.Input(context.Background(), "desk")
	s.Close()

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, searcher.seen())
	assert.Empty(t, sink.all())

	// Input after Close is ignored.
	s.Input(context.Background(), "desk again")
	time.Sleep(40 * time.Millisecond)
	assert.Empty(t, searcher.seen())
}
