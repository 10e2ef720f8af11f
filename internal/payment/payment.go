// Package payment wraps the payment collaborator: the backend endpoint that
// mints a hosted-checkout session for an order, and the redirect flow that
// sends the shopper to the processor's page.
package payment

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/shophub/storefront/internal/core/domain"
)

// SessionRequest is the payload for the backend checkout endpoint.
type SessionRequest struct {
	OrderID         string                 `json:"orderId"`
	Items           []domain.CartItem      `json:"items"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	ShippingCost    decimal.Decimal        `json:"shippingCost"`
}

// Gateway is the port to the payment collaborator.
type Gateway interface {
	// CreateSession asks the backend endpoint for a payment session and
	// returns its identifier.
	CreateSession(ctx context.Context, req SessionRequest) (string, error)

	// RedirectURL resolves the hosted-checkout redirect for a session. It
	// either succeeds with the URL the shopper must be sent to, or fails
	// with a structured *Error.
	RedirectURL(ctx context.Context, sessionID string) (string, error)
}

// Error is the structured failure shape the collaborator reports.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return "payment: " + e.Code + ": " + e.Message
}
