package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shophub/storefront/internal/core/domain"
	"github.com/shophub/storefront/internal/store/memory"
)

func seedProducts(t *testing.T) *memory.Store {
	t.Helper()
	records := memory.New()
	for _, p := range []domain.Product{
		{ID: "p1", Name: "Walnut Desk", Price: decimal.RequireFromString("199.00"), Stock: 4},
		{ID: "p2", Name: "Desk Lamp", Price: decimal.RequireFromString("39.50"), Stock: 12},
		{ID: "p3", Name: "Office Chair", Price: decimal.RequireFromString("149.99"), Stock: 0},
	} {
		require.NoError(t, records.Seed("products", p))
	}
	return records
}

func TestProductByID(t *testing.T) {
	svc := NewService(seedProducts(t), nil)

	p, err := svc.Product(context.Background(), "p2")

	require.NoError(t, err)
	assert.Equal(t, "Desk Lamp", p.Name)
	assert.Equal(t, "39.50", p.Price.StringFixed(2))
}

func TestProductNotFound(t *testing.T) {
	svc := NewService(seedProducts(t), nil)

	_, err := svc.Product(context.Background(), "nope")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchMatchesCaseInsensitiveSubstring(t *testing.T) {
	svc := NewService(seedProducts(t), nil)

	got, err := svc.Search(context.Background(), "desk", 10)

	require.NoError(t, err)
	require.Len(t, got, 2)
	names := []string{got[0].Name, got[1].Name}
	assert.Contains(t, names, "Walnut Desk")
	assert.Contains(t, names, "Desk Lamp")
}

func TestSearchHonoursLimit(t *testing.T) {
	svc := NewService(seedProducts(t), nil)

	got, err := svc.Search(context.Background(), "desk", 1)

	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestListOrdersByName(t *testing.T) {
	svc := NewService(seedProducts(t), nil)

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Desk Lamp", got[0].Name)
	assert.Equal(t, "Office Chair", got[1].Name)
	assert.Equal(t, "Walnut Desk", got[2].Name)
}

func TestReviewsNewestFirst(t *testing.T) {
	records := seedProducts(t)
	svc := NewService(records, nil)

	for _, r := range []domain.Review{
		{ProductID: "p1", UserID: "u1", Rating: 4, Comment: "solid"},
		{ProductID: "p1", UserID: "u2", Rating: 5, Comment: "love it"},
		{ProductID: "p2", UserID: "u1", Rating: 3, Comment: "fine"},
	} {
		_, err := svc.AddReview(context.Background(), r)
		require.NoError(t, err)
	}

	got, err := svc.Reviews(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, "p1", r.ProductID)
	}
	assert.False(t, got[0].CreatedAt.Before(got[1].CreatedAt))
}

func TestAddReviewValidatesRating(t *testing.T) {
	svc := NewService(seedProducts(t), nil)

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.AddReview(context.Background(), domain.Review{
			ProductID: "p1",
			UserID:    "u1",
			Rating:    rating,
		})
		assert.Error(t, err)
	}
}

func TestAddReviewRequiresUser(t *testing.T) {
	svc := NewService(seedProducts(t), nil)

	_, err := svc.AddReview(context.Background(), domain.Review{ProductID: "p1", Rating: 5})

	assert.Error(t, err)
}

func TestAddReviewAssignsServerFields(t *testing.T) {
	svc := NewService(seedProducts(t), nil)

	stored, err := svc.AddReview(context.Background(), domain.Review{
		ProductID: "p1",
		UserID:    "u1",
		Rating:    5,
		Comment:   "great",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	assert.False(t, stored.CreatedAt.IsZero())
}
