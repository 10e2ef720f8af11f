// Package orders reads back persisted orders for tracking and maps their
// status onto display affordances.
package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/shophub/storefront/internal/core/domain"
	"github.com/shophub/storefront/internal/store"
)

// ErrFetch wraps read failures; ErrNotFound means no order matched.
var (
	ErrFetch    = errors.New("orders: fetch failed")
	ErrNotFound = errors.New("orders: not found")
)

// Service is the order read side. Orders are created by checkout and mutated
// only by the external fulfillment system; from here they are read-only.
type Service struct {
	records store.Store
}

// NewService builds the order reader.
func NewService(records store.Store) *Service {
	return &Service{records: records}
}

// Order fetches a single order by id.
func (s *Service) Order(ctx context.Context, id string) (*domain.Order, error) {
	var orders []domain.Order
	q := store.NewQuery("orders").Eq("id", id).Limit(1)
	if err := s.records.Select(ctx, q, &orders); err != nil {
		return nil, fmt.Errorf("%w: order %s: %v", ErrFetch, id, err)
	}
	if len(orders) == 0 {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, id)
	}
	return &orders[0], nil
}

// ForUser lists a user's orders, newest first.
func (s *Service) ForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	var orders []domain.Order
	q := store.NewQuery("orders").Eq("user_id", userID).Order("created_at", true)
	if err := s.records.Select(ctx, q, &orders); err != nil {
		return nil, fmt.Errorf("%w: orders for user %s: %v", ErrFetch, userID, err)
	}
	return orders, nil
}
