package checkout

import "errors"

// The checkout failure taxonomy. Every failure edge of the state machine
// carries exactly one of these, wrapped with detail; callers route on them
// with errors.Is. None are fatal; the attempt always returns to idle.
var (
	// ErrUnauthenticated: no signed-in user at the moment checkout was
	// triggered. Nothing is mutated and no remote call is made.
	ErrUnauthenticated = errors.New("checkout: no signed-in user")

	// ErrInvalidAddress: a shipping field was blank after trimming.
	ErrInvalidAddress = errors.New("checkout: shipping address incomplete")

	// ErrOrderPersist: the remote store rejected the pending order. The
	// attempt aborts before any payment action.
	ErrOrderPersist = errors.New("checkout: could not persist order")

	// ErrPaymentInit: the payment session or redirect could not be
	// established. The already-created order stays pending; there is no
	// compensating delete.
	ErrPaymentInit = errors.New("checkout: payment initialisation failed")

	// ErrInProgress: a checkout for this session is already running.
	ErrInProgress = errors.New("checkout: already in progress")
)
