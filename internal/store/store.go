// Package store defines the port for the remote record store: table-oriented
// retrieval and insertion with a small predicate vocabulary (equality,
// case-insensitive substring, ordering, limit).
//
// The storefront consumes three tables through this port: products (read),
// reviews (read/insert) and orders (read/insert). The query engine behind it
// is a collaborator, not something this repository implements. Adapters live
// in the postgrest (hosted backend) and memory (dev/tests) subpackages.
package store

import "context"

// Op is a filter operator.
type Op string

const (
	// OpEq matches records whose column equals the value exactly.
	OpEq Op = "eq"
	// OpILike matches records whose column contains the value,
	// case-insensitively.
	OpILike Op = "ilike"
)

// Filter is a single column predicate.
type Filter struct {
	Column string
	Op     Op
	Value  string
}

// Query describes one retrieval against a table. Build it fluently:
//
//	store.NewQuery("reviews").Eq("product_id", id).Order("created_at", true).Limit(20)
type Query struct {
	Table      string
	Filters    []Filter
	OrderBy    string
	Descending bool
	Max        int
}

// NewQuery starts a query against the given table.
func NewQuery(table string) Query {
	return Query{Table: table}
}

// Eq adds an equality predicate.
func (q Query) Eq(column, value string) Query {
	q.Filters = append(q.Filters, Filter{Column: column, Op: OpEq, Value: value})
	return q
}

// ILike adds a case-insensitive substring predicate.
func (q Query) ILike(column, value string) Query {
	q.Filters = append(q.Filters, Filter{Column: column, Op: OpILike, Value: value})
	return q
}

// Order sorts the result set by column, descending when desc is true.
func (q Query) Order(column string, desc bool) Query {
	q.OrderBy = column
	q.Descending = desc
	return q
}

// Limit caps the number of returned records. Zero means no cap.
func (q Query) Limit(n int) Query {
	q.Max = n
	return q
}

// Store is the record-retrieval port.
//
// Select decodes the matching records into dest, which must be a pointer to a
// slice. Insert persists record and, when dest is non-nil, decodes the stored
// representation (including server-assigned fields such as id and created_at)
// back into it.
type Store interface {
	Select(ctx context.Context, q Query, dest any) error
	Insert(ctx context.Context, table string, record, dest any) error
}
