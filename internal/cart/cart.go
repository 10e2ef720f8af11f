// Package cart owns the only mutable domain state in the storefront: the
// shopper's line items, plus the pure pricing functions derived from them.
package cart

import "github.com/shophub/storefront/internal/core/domain"

// Cart is an ordered collection of line items. Insertion order is display
// order, and there is at most one item per product id. A Cart is not
// synchronized; it has a single owner (see Manager).
type Cart struct {
	items []domain.CartItem
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add puts one unit of p into the cart: an existing line item for the same
// product has its quantity incremented, otherwise a new line item with
// quantity 1 is appended. Add never fails.
func (c *Cart) Add(p domain.Product) {
	for i := range c.items {
		if c.items[i].ID == p.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, domain.CartItem{Product: p, Quantity: 1})
}

// UpdateQuantity replaces the quantity of the line item with the given
// product id. Quantities below 1 are rejected as a no-op: decrementing to
// zero does not remove the item; removal is always explicit via Remove.
// An unknown id is also a no-op.
func (c *Cart) UpdateQuantity(id string, quantity int) {
	if quantity < 1 {
		return
	}
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// Remove deletes the line item with the given product id, preserving the
// order of the remaining items. Unknown id is a no-op.
func (c *Cart) Remove(id string) {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Clear drops every line item in a single replacement.
func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy of the line items in display order.
func (c *Cart) Items() []domain.CartItem {
	out := make([]domain.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of distinct line items.
func (c *Cart) Len() int {
	return len(c.items)
}

// Empty reports whether the cart has no line items.
func (c *Cart) Empty() bool {
	return len(c.items) == 0
}
