package checkoutlog

import "context"

// Repository is the port for persisting checkout log entries. The
// orchestrator depends on this abstraction, not on SQLite directly, so tests
// can swap in an in-memory recorder.
type Repository interface {
	// Save appends a new log entry. The log is append-only; rows are never
	// updated.
	Save(ctx context.Context, entry *Entry) error
}
