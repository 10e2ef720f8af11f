package domain

// CartItem is a line item: a product plus the quantity the shopper selected.
// Quantity is always >= 1; updates that would take it below 1 are ignored,
// and only an explicit removal drops the line.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}
