// Package ledger is the durable idempotency record: one row per source object
// id with its terminal outcome. Claim is a conditional write so the
// check-then-record sequence stays atomic under concurrent workers.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"meeting-insights-go/internal/types"
)

// statusPending marks an object claimed by an in-flight worker. It is
// internal to the store; only terminal statuses surface as LedgerEntry.
const statusPending = "pending"

// staleClaimAge is how long a pending claim may sit before a later run may
// take it over. A worker that crashes mid-run leaves its row pending; without
// reclaim that object would be skipped forever.
const staleClaimAge = time.Hour

// Store is the SQLite-backed ledger.
type Store struct {
	db *sql.DB
}

// Open creates or opens the ledger database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open ledger database: %w", err)
	}

	const schema = `
CREATE TABLE IF NOT EXISTS ledger (
	object_id  TEXT PRIMARY KEY,
	status     TEXT NOT NULL,
	error      TEXT NOT NULL DEFAULT '',
	name       TEXT NOT NULL DEFAULT '',
	updated_at INTEGER NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create ledger schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// IsProcessed reports whether the object already carries a Processed entry.
func (s *Store) IsProcessed(ctx context.Context, objectID string) (bool, error) {
	var status string
	err := s.db.QueryRowContext(ctx,
		`SELECT status FROM ledger WHERE object_id = ?`, objectID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query ledger for %s: %w", objectID, err)
	}
	return status == string(types.StatusProcessed), nil
}

// Claim atomically takes ownership of an object for this run. It succeeds for
// unseen objects, for objects whose previous run failed, and for pending
// claims older than staleClaimAge (a crashed worker); Processed and live
// in-flight objects are never claimed. Exactly one of several racing workers
// observes true.
func (s *Store) Claim(ctx context.Context, objectID, name string) (bool, error) {
	now := time.Now().UTC().Unix()
	res, err := s.db.ExecContext(ctx, `
INSERT INTO ledger (object_id, status, error, name, updated_at)
VALUES (?, ?, '', ?, ?)
ON CONFLICT(object_id) DO UPDATE
	SET status = excluded.status, updated_at = excluded.updated_at
	WHERE ledger.status = ?
	   OR (ledger.status = ? AND ledger.updated_at <= ?)`,
		objectID, statusPending, name, now,
		string(types.StatusFailed), statusPending, now-int64(staleClaimAge/time.Second))
	if err != nil {
		return false, fmt.Errorf("claim %s: %w", objectID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("claim %s: %w", objectID, err)
	}
	return n > 0, nil
}

// RecordOutcome writes the terminal outcome for an object. Idempotent:
// rewriting a terminal outcome is a last-write-wins overwrite.
func (s *Store) RecordOutcome(ctx context.Context, objectID string, status types.Status, errText, name string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO ledger (object_id, status, error, name, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(object_id) DO UPDATE
	SET status = excluded.status, error = excluded.error,
	    name = excluded.name, updated_at = excluded.updated_at`,
		objectID, string(status), errText, name, time.Now().UTC().Unix())
	if err != nil {
		return fmt.Errorf("record outcome for %s: %w", objectID, err)
	}
	return nil
}

// Entry returns the ledger row for an object, if any.
func (s *Store) Entry(ctx context.Context, objectID string) (types.LedgerEntry, bool, error) {
	var e types.LedgerEntry
	var status string
	var updated int64
	err := s.db.QueryRowContext(ctx,
		`SELECT object_id, status, error, name, updated_at FROM ledger WHERE object_id = ?`,
		objectID).Scan(&e.ObjectID, &status, &e.Error, &e.Name, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return types.LedgerEntry{}, false, nil
	}
	if err != nil {
		return types.LedgerEntry{}, false, fmt.Errorf("read ledger entry %s: %w", objectID, err)
	}
	e.Status = types.Status(status)
	e.UpdatedAt = time.Unix(updated, 0).UTC()
	return e, true, nil
}
