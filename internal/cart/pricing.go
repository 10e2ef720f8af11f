package cart

import (
	"github.com/shopspring/decimal"

	"github.com/shophub/storefront/internal/core/domain"
)

// Quote is the priced view of a cart for a shipping destination.
// All three amounts keep full decimal precision; rounding to two places
// happens only at the display boundary.
type Quote struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// Subtotal computes Σ price×quantity over the line items, recomputed fresh
// on every call.
func Subtotal(items []domain.CartItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum
}

// PriceQuote derives subtotal, shipping and total for the given destination
// country using rates.
func PriceQuote(items []domain.CartItem, rates RateTable, country string) Quote {
	subtotal := Subtotal(items)
	shipping := rates.For(country)
	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal.Add(shipping),
	}
}
