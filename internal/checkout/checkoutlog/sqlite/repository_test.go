package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shophub/storefront/internal/checkout/checkoutlog"
)

func openRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "checkout.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSaveAndLatestRoundtrip(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, state := range []checkoutlog.State{
		checkoutlog.StateValidating,
		checkoutlog.StateAwaitingOrder,
		checkoutlog.StateAwaitingRedirect,
		checkoutlog.StateCompleted,
	} {
		entry := &checkoutlog.Entry{
			AttemptID: "attempt-1",
			OrderID:   "order-1",
			State:     state,
			UpdatedAt: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, repo.Save(ctx, entry))
	}

	latest, err := repo.Latest(ctx, "attempt-1")
	require.NoError(t, err)
	assert.Equal(t, checkoutlog.StateCompleted, latest.State)
	assert.Equal(t, "order-1", latest.OrderID)
	assert.Equal(t, base.Add(3*time.Second), latest.UpdatedAt.UTC())
}

func TestLatestKeepsFailureText(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	entry := &checkoutlog.Entry{
		AttemptID: "attempt-2",
		State:     checkoutlog.StateFailed,
		Failure:   "payment init failed: upstream down",
		TraceID:   "0af7651916cd43dd8448eb211c80319c",
		SpanID:    "b7ad6b7169203331",
		UpdatedAt: time.Now(),
	}
	require.NoError(t, repo.Save(ctx, entry))

	latest, err := repo.Latest(ctx, "attempt-2")
	require.NoError(t, err)
	assert.Equal(t, checkoutlog.StateFailed, latest.State)
	assert.Equal(t, entry.Failure, latest.Failure)
	assert.Equal(t, entry.TraceID, latest.TraceID)
	assert.Equal(t, entry.SpanID, latest.SpanID)
}

func TestLatestUnknownAttemptIsAnError(t *testing.T) {
	repo := openRepo(t)

	_, err := repo.Latest(context.Background(), "missing")

	assert.Error(t, err)
}

func TestTransitionsForSameSecondBreakTiesByInsertionOrder(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for _, state := range []checkoutlog.State{
		checkoutlog.StateValidating,
		checkoutlog.StateFailed,
	} {
		require.NoError(t, repo.Save(ctx, &checkoutlog.Entry{
			AttemptID: "attempt-3",
			State:     state,
			UpdatedAt: ts,
		}))
	}

	latest, err := repo.Latest(ctx, "attempt-3")
	require.NoError(t, err)
	assert.Equal(t, checkoutlog.StateFailed, latest.State)
}
