package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLDB is the database interface used by all stores.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Compile-time check that *sql.DB satisfies SQLDB.
var _ SQLDB = (*sql.DB)(nil)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Events cascade on venue deletion in the persisted model; the
	// application-level deletion guard refuses the delete before the
	// cascade could ever fire.
	schema := `
	CREATE TABLE IF NOT EXISTS venue (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		road_name TEXT NOT NULL,
		postcode TEXT NOT NULL,
		capacity INTEGER NOT NULL,
		latitude REAL NOT NULL DEFAULT 0,
		longitude REAL NOT NULL DEFAULT 0,
		address_changed INTEGER NOT NULL DEFAULT 1
	);

	CREATE TABLE IF NOT EXISTS event (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL,
		time TEXT NOT NULL DEFAULT '',
		venue_id TEXT NOT NULL,
		FOREIGN KEY (venue_id) REFERENCES venue(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_event_venue ON event(venue_id);
	CREATE INDEX IF NOT EXISTS idx_event_date ON event(date);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
