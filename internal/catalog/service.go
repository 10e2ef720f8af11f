// Package catalog reads products and reviews from the remote record store,
// with a read-through cache in front of single-product lookups.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shophub/storefront/internal/core/domain"
	"github.com/shophub/storefront/internal/pkg/cache"
	"github.com/shophub/storefront/internal/store"
)

// ErrFetch wraps every read failure against the remote store. Callers treat
// it as transient: surface a notification and return to idle.
var ErrFetch = errors.New("catalog: fetch failed")

// ErrNotFound is returned when a lookup matched no record.
var ErrNotFound = errors.New("catalog: not found")

// productTTL bounds how stale a cached product can get. Products are
// immutable from the storefront's side, so a short TTL only covers upstream
// edits.
const productTTL = 5 * time.Minute

// Service is the catalog client.
type Service struct {
	records store.Store
	cache   cache.Cache // nil-safe: lookups go straight to the store if nil
}

// NewService builds the catalog client. cache may be nil.
func NewService(records store.Store, c cache.Cache) *Service {
	return &Service{records: records, cache: c}
}

// Product fetches a single product by id, consulting the cache first.
func (s *Service) Product(ctx context.Context, id string) (*domain.Product, error) {
	if p := s.cached(ctx, id); p != nil {
		return p, nil
	}

	var products []domain.Product
	q := store.NewQuery("products").Eq("id", id).Limit(1)
	if err := s.records.Select(ctx, q, &products); err != nil {
		return nil, fmt.Errorf("%w: product %s: %v", ErrFetch, id, err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
	}

	s.store(ctx, &products[0])
	return &products[0], nil
}

// List returns the whole catalog, ordered by name.
func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	q := store.NewQuery("products").Order("name", false)
	if err := s.records.Select(ctx, q, &products); err != nil {
		return nil, fmt.Errorf("%w: products: %v", ErrFetch, err)
	}
	return products, nil
}

// Search returns up to limit products whose name contains q,
// case-insensitively.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	var products []domain.Product
	q := store.NewQuery("products").ILike("name", query).Limit(limit)
	if err := s.records.Select(ctx, q, &products); err != nil {
		return nil, fmt.Errorf("%w: search %q: %v", ErrFetch, query, err)
	}
	return products, nil
}

// Reviews returns a product's reviews, newest first.
func (s *Service) Reviews(ctx context.Context, productID string) ([]domain.Review, error) {
	var reviews []domain.Review
	q := store.NewQuery("reviews").Eq("product_id", productID).Order("created_at", true)
	if err := s.records.Select(ctx, q, &reviews); err != nil {
		return nil, fmt.Errorf("%w: reviews for %s: %v", ErrFetch, productID, err)
	}
	return reviews, nil
}

// AddReview persists a review for the signed-in user. Rating must be 1..5.
func (s *Service) AddReview(ctx context.Context, review domain.Review) (*domain.Review, error) {
	if review.UserID == "" {
		return nil, errors.New("catalog: review requires a signed-in user")
	}
	if !domain.ValidRating(review.Rating) {
		return nil, fmt.Errorf("catalog: rating %d out of range", review.Rating)
	}

	var stored domain.Review
	if err := s.records.Insert(ctx, "reviews", review, &stored); err != nil {
		return nil, fmt.Errorf("catalog: insert review for %s: %w", review.ProductID, err)
	}
	return &stored, nil
}

func (s *Service) cached(ctx context.Context, id string) *domain.Product {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, s.cache.Key("product", id))
	if err != nil || raw == "" {
		return nil
	}
	var p domain.Product
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil
	}
	return &p
}

func (s *Service) store(ctx context.Context, p *domain.Product) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.Key("product", p.ID), string(raw), productTTL); err != nil {
		slog.WarnContext(ctx, "product cache write failed", "product_id", p.ID, "error", err)
	}
}
