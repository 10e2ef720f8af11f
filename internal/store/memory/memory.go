// Package memory provides an in-memory store.Store for local development and
// tests. Records are held as JSON documents so the adapter stays agnostic of
// the domain types that pass through it, the same way the hosted backend is.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shophub/storefront/internal/store"
)

// Ensure the port is satisfied at compile time.
var _ store.Store = (*Store)(nil)

// Store keeps every table as an ordered slice of JSON objects.
// Safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	tables map[string][]map[string]any
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{tables: make(map[string][]map[string]any)}
}

// Seed inserts a record without going through Insert's id/created_at
// assignment, for fixtures that carry their own ids.
func (s *Store) Seed(table string, record any) error {
	doc, err := toDoc(record)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table] = append(s.tables[table], doc)
	return nil
}

func (s *Store) Select(ctx context.Context, q store.Query, dest any) error {
	s.mu.RLock()
	rows := s.tables[q.Table]
	matched := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		if matches(row, q.Filters) {
			matched = append(matched, row)
		}
	}
	s.mu.RUnlock()

	if q.OrderBy != "" {
		col, desc := q.OrderBy, q.Descending
		sort.SliceStable(matched, func(i, j int) bool {
			a := fmt.Sprint(matched[i][col])
			b := fmt.Sprint(matched[j][col])
			if desc {
				return a > b
			}
			return a < b
		})
	}
	if q.Max > 0 && len(matched) > q.Max {
		matched = matched[:q.Max]
	}

	raw, err := json.Marshal(matched)
	if err != nil {
		return fmt.Errorf("memory: encode result set: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("memory: decode result set: %w", err)
	}
	return nil
}

func (s *Store) Insert(ctx context.Context, table string, record, dest any) error {
	doc, err := toDoc(record)
	if err != nil {
		return err
	}

	// Server-assigned fields, mirroring what the hosted backend fills in.
	if id, ok := doc["id"].(string); !ok || id == "" {
		doc["id"] = uuid.NewString()
	}
	if created, ok := doc["created_at"].(string); !ok || created == "" || created == zeroTime {
		doc["created_at"] = time.Now().UTC().Format(time.RFC3339Nano)
	}

	s.mu.Lock()
	s.tables[table] = append(s.tables[table], doc)
	s.mu.Unlock()

	if dest == nil {
		return nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("memory: encode inserted record: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("memory: decode inserted record: %w", err)
	}
	return nil
}

// zeroTime is how encoding/json renders a zero time.Time.
const zeroTime = "0001-01-01T00:00:00Z"

func toDoc(record any) (map[string]any, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("memory: encode record: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("memory: record is not an object: %w", err)
	}
	return doc, nil
}

func matches(row map[string]any, filters []store.Filter) bool {
	for _, f := range filters {
		val := fmt.Sprint(row[f.Column])
		switch f.Op {
		case store.OpEq:
			if val != f.Value {
				return false
			}
		case store.OpILike:
			if !strings.Contains(strings.ToLower(val), strings.ToLower(f.Value)) {
				return false
			}
		default:
			return false
		}
	}
	return true
}
