package checkoutlog

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// NewEntry builds a log entry with trace identifiers extracted from the
// active span in ctx. When ctx carries no valid span (unit tests, tracing
// disabled) both identifiers stay empty.
func NewEntry(ctx context.Context, attemptID, orderID string, state State, failure string) *Entry {
	entry := &Entry{
		AttemptID: attemptID,
		OrderID:   orderID,
		State:     state,
		Failure:   failure,
		UpdatedAt: time.Now().UTC(),
	}

	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		entry.TraceID = sc.TraceID().String()
		entry.SpanID = sc.SpanID().String()
	}
	return entry
}
