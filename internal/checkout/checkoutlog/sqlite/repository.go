// Package sqlite provides a SQLite-backed implementation of
// checkoutlog.Repository.
//
// WAL mode is enabled on Open so readers never block the writer: the
// checkout path appends rows while an operator query may be reading.
// The pure-Go modernc.org/sqlite driver keeps the build CGO-free.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shophub/storefront/internal/checkout/checkoutlog"

	_ "modernc.org/sqlite"
)

// schema is the DDL applied once on startup. The table is append-only: each
// row is an immutable transition in a checkout attempt's lifecycle.
const schema = `
CREATE TABLE IF NOT EXISTS checkout_logs (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Identifies a single checkout attempt. Not UNIQUE: one row per transition.
    attempt_id  TEXT NOT NULL,

    -- Persisted order id, '' until order creation succeeded.
    order_id    TEXT NOT NULL DEFAULT '',

    -- Lifecycle state at the time this row was written.
    state       TEXT NOT NULL,

    -- Error text for FAILED rows, '' otherwise.
    failure     TEXT NOT NULL DEFAULT '',

    -- W3C trace/span ids of the active OTel span, for joining with traces.
    trace_id    TEXT NOT NULL DEFAULT '',
    span_id     TEXT NOT NULL DEFAULT '',

    -- RFC3339 stored as TEXT, the SQLite idiom.
    updated_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_checkout_logs_attempt ON checkout_logs(attempt_id, updated_at);
CREATE INDEX IF NOT EXISTS idx_checkout_logs_order   ON checkout_logs(order_id);
`

// Repository is the SQLite implementation of checkoutlog.Repository.
type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string) (*Repository, error) {
	// _pragma query parameters configure connection state for the pure-Go
	// driver. busy_timeout waits for locks instead of failing immediately.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return &Repository{db: db}, nil
}

// Close releases the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Save appends a checkout log row. Safe to call concurrently.
func (r *Repository) Save(ctx context.Context, entry *checkoutlog.Entry) error {
	const q = `
		INSERT INTO checkout_logs
			(attempt_id, order_id, state, failure, trace_id, span_id, updated_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.AttemptID,
		entry.OrderID,
		string(entry.State),
		entry.Failure,
		entry.TraceID,
		entry.SpanID,
		entry.UpdatedAt.UTC().Format("2006-01-02T15:04:05.999999999Z"),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save checkout log for %q: %w", entry.AttemptID, err)
	}
	return nil
}

// Latest returns the most recent entry for a checkout attempt. Useful for a
// support query: "where did this checkout stop".
func (r *Repository) Latest(ctx context.Context, attemptID string) (*checkoutlog.Entry, error) {
	const q = `
		SELECT attempt_id, order_id, state, failure, trace_id, span_id, updated_at
		FROM   checkout_logs
		WHERE  attempt_id = ?
		ORDER  BY updated_at DESC, id DESC
		LIMIT  1`

	row := r.db.QueryRowContext(ctx, q, attemptID)

	var entry checkoutlog.Entry
	var updatedAt string
	err := row.Scan(
		&entry.AttemptID,
		&entry.OrderID,
		&entry.State,
		&entry.Failure,
		&entry.TraceID,
		&entry.SpanID,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("sqlite: checkout attempt %q not found", attemptID)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: latest entry for %q: %w", attemptID, err)
	}

	entry.UpdatedAt, err = parseStoredTime(updatedAt)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// parseStoredTime turns an updated_at TEXT column back into a time.Time.
func parseStoredTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: parse time %q: %w", s, err)
	}
	return t, nil
}
