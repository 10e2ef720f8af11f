// Package checkoutlog defines the durable audit trail of checkout attempts.
//
// Every state transition of an attempt is appended as an immutable row, so
// the log answers "where did this checkout get to" after the fact, including
// the accepted partial-failure case where an order was persisted but the
// payment session never materialised. Rows carry the OTel trace_id of the
// attempt so a log row can be joined with the full distributed trace.
package checkoutlog

import "time"

// State is the lifecycle state of a checkout attempt at the time a row was
// written.
type State string

const (
	StateValidating       State = "VALIDATING"
	StateAwaitingOrder    State = "AWAITING_ORDER_CREATION"
	StateAwaitingRedirect State = "AWAITING_PAYMENT_REDIRECT"
	StateCompleted        State = "COMPLETED"
	StateFailed           State = "FAILED"
)

// Entry is one row in the checkout log.
type Entry struct {
	// AttemptID identifies a single checkout attempt.
	AttemptID string

	// OrderID is the persisted order's id, once one exists. Empty for rows
	// written before order creation succeeded.
	OrderID string

	// State is the attempt's lifecycle state.
	State State

	// Failure holds the error that sent the attempt back to idle, empty on
	// non-failure rows.
	Failure string

	// TraceID and SpanID are the W3C identifiers of the OTel span active
	// when the row was written. Empty when no span was recording.
	TraceID string
	SpanID  string

	// UpdatedAt is the wall-clock time of this transition.
	UpdatedAt time.Time
}
