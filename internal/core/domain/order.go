package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfillment lifecycle of an order. The storefront only
// ever writes StatusPending; every later transition belongs to the external
// fulfillment system.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
)

// Order is persisted at checkout with status pending and read back for
// tracking. Read-only from the storefront's perspective after creation.
type Order struct {
	ID                string          `json:"id,omitempty"`
	UserID            string          `json:"user_id"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	ShippingAddress   ShippingAddress `json:"shipping_address"`
	Status            OrderStatus     `json:"status"`
	TrackingNumber    string          `json:"tracking_number,omitempty"`
	EstimatedDelivery *time.Time      `json:"estimated_delivery,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}
