// Package checkout runs the single-attempt checkout state machine:
//
//	Idle → Validating → AwaitingOrderCreation → AwaitingPaymentRedirect → Completed
//
// with a failure edge from every active state back to Idle carrying one of
// the errors in errors.go. The cart is cleared only on reaching Completed;
// every failure leaves it untouched. No retries happen here, the shopper
// re-triggers the action.
package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/shophub/storefront/internal/cart"
	"github.com/shophub/storefront/internal/checkout/checkoutlog"
	"github.com/shophub/storefront/internal/core/domain"
	"github.com/shophub/storefront/internal/payment"
	"github.com/shophub/storefront/internal/store"
)

// Result is what a completed checkout hands back to the HTTP layer: the
// persisted order and the hosted-checkout URL to send the shopper to.
type Result struct {
	Order       *domain.Order
	RedirectURL string
}

// Carts is the slice of the cart manager the orchestrator needs: exclusive
// access to one session's cart for the duration of fn.
type Carts interface {
	With(sessionID string, fn func(*cart.Cart))
}

// Orchestrator coordinates one checkout attempt against the record store and
// the payment collaborator.
type Orchestrator struct {
	records store.Store
	gateway payment.Gateway
	rates   cart.RateTable
	carts   Carts
	log     checkoutlog.Repository // nil-safe: transitions are not persisted if nil

	// inflight is the loading flag: while a session has an attempt running,
	// further attempts for that session are rejected instead of queued.
	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewOrchestrator wires the orchestrator. log may be nil.
func NewOrchestrator(records store.Store, gateway payment.Gateway, rates cart.RateTable, carts Carts, log checkoutlog.Repository) *Orchestrator {
	return &Orchestrator{
		records:  records,
		gateway:  gateway,
		rates:    rates,
		carts:    carts,
		log:      log,
		inflight: make(map[string]struct{}),
	}
}

// Checkout runs the state machine for one attempt.
//
// The in-flight gate is taken first, before the cart is even looked at, so a
// re-entered attempt for the same session fails fast with ErrInProgress
// instead of queueing behind the running one. The cart lock is then held only
// for the item snapshot and, on success, the clear; never across remote calls.
//
// Preconditions, checked in order before anything is mutated: a signed-in
// user must be present, and every shipping field must be non-empty after
// trimming. Then a pending order is persisted, a payment session is created,
// and the redirect is resolved. Only when the redirect resolves does the
// cart get cleared, in one atomic replacement.
//
// A payment failure after order creation deliberately leaves the pending
// order orphaned: that partial state is accepted policy, not remediated here.
func (o *Orchestrator) Checkout(
	ctx context.Context,
	sessionID string,
	user *domain.User,
	addr domain.ShippingAddress,
) (*Result, error) {
	if !o.begin(sessionID) {
		return nil, ErrInProgress
	}
	defer o.end(sessionID)

	attemptID := uuid.NewString()
	o.record(ctx, attemptID, "", checkoutlog.StateValidating, nil)

	if user == nil {
		return nil, o.fail(ctx, attemptID, "", ErrUnauthenticated)
	}
	if !addr.Complete() {
		return nil, o.fail(ctx, attemptID, "", ErrInvalidAddress)
	}

	var items []domain.CartItem
	o.carts.With(sessionID, func(c *cart.Cart) {
		items = c.Items()
	})
	quote := cart.PriceQuote(items, o.rates, addr.Country)

	o.record(ctx, attemptID, "", checkoutlog.StateAwaitingOrder, nil)

	pending := domain.Order{
		UserID:          user.ID,
		TotalAmount:     quote.Total,
		ShippingAddress: addr,
		Status:          domain.StatusPending,
	}
	var order domain.Order
	if err := o.records.Insert(ctx, "orders", pending, &order); err != nil {
		return nil, o.fail(ctx, attemptID, "", fmt.Errorf("%w: %v", ErrOrderPersist, err))
	}

	o.record(ctx, attemptID, order.ID, checkoutlog.StateAwaitingRedirect, nil)

	sessionToken, err := o.gateway.CreateSession(ctx, payment.SessionRequest{
		OrderID:         order.ID,
		Items:           items,
		ShippingAddress: addr,
		ShippingCost:    quote.Shipping,
	})
	if err != nil {
		// The order stays pending. An orphaned pending order is the
		// documented outcome of this edge, not a bug to roll back.
		return nil, o.fail(ctx, attemptID, order.ID, fmt.Errorf("%w: %v", ErrPaymentInit, err))
	}

	redirectURL, err := o.gateway.RedirectURL(ctx, sessionToken)
	if err != nil {
		return nil, o.fail(ctx, attemptID, order.ID, fmt.Errorf("%w: %v", ErrPaymentInit, err))
	}

	o.carts.With(sessionID, func(c *cart.Cart) {
		c.Clear()
	})
	o.record(ctx, attemptID, order.ID, checkoutlog.StateCompleted, nil)

	return &Result{Order: &order, RedirectURL: redirectURL}, nil
}

// Busy reports whether the session currently has an attempt in flight.
func (o *Orchestrator) Busy(sessionID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.inflight[sessionID]
	return ok
}

func (o *Orchestrator) begin(sessionID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.inflight[sessionID]; ok {
		return false
	}
	o.inflight[sessionID] = struct{}{}
	return true
}

func (o *Orchestrator) end(sessionID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.inflight, sessionID)
}

// fail logs the failure edge and returns err unchanged so the caller can
// surface it. The cart is never touched on a failure edge.
func (o *Orchestrator) fail(ctx context.Context, attemptID, orderID string, err error) error {
	slog.ErrorContext(ctx, "checkout attempt failed",
		"attempt_id", attemptID,
		"order_id", orderID,
		"error", err,
	)
	o.record(ctx, attemptID, orderID, checkoutlog.StateFailed, err)
	return err
}

func (o *Orchestrator) record(ctx context.Context, attemptID, orderID string, state checkoutlog.State, cause error) {
	if o.log == nil {
		return
	}
	failure := ""
	if cause != nil {
		failure = cause.Error()
	}
	entry := checkoutlog.NewEntry(ctx, attemptID, orderID, state, failure)
	if err := o.log.Save(ctx, entry); err != nil {
		slog.WarnContext(ctx, "could not persist checkout log entry",
			"attempt_id", attemptID,
			"state", state,
			"error", err,
		)
	}
}
