package event

import (
	"context"
	"database/sql"
	"time"

	"showspace/internal/adapters/storage"
	domain "showspace/internal/domain/event"
)

const eventColumns = "id, name, description, date, time, venue_id"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
// PRE: db is a valid, open database connection with the schema applied
// POST: store is ready for use
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save inserts or updates an event.
// PRE: e is a valid Event (Validate() returns nil); e.VenueID references an
// existing venue
// POST: event is persisted
func (s *SQLiteStore) Save(ctx context.Context, e domain.Event) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO event (`+eventColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name=excluded.name, description=excluded.description,
		   date=excluded.date, time=excluded.time, venue_id=excluded.venue_id`,
		e.ID, e.Name, e.Description, e.Date.Format("2006-01-02"), e.Time, e.VenueID,
	)
	return err
}

// GetByID retrieves an event by ID.
// PRE: id is non-empty
// POST: returns the event or sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Event, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM event WHERE id = ?`, id)
	return scanEvent(row)
}

// List returns all events ordered by date then time-of-day ascending.
// Classification into upcoming/past happens in the domain layer over this
// materialized list.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM event ORDER BY date ASC, time ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListByVenueID returns the events referencing the given venue, ordered by
// date ascending.
func (s *SQLiteStore) ListByVenueID(ctx context.Context, venueID string) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM event WHERE venue_id = ? ORDER BY date ASC, time ASC`, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ExistsByID reports whether an event with the given ID exists.
func (s *SQLiteStore) ExistsByID(ctx context.Context, id string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM event WHERE id = ?`, id).Scan(&n)
	return n > 0, err
}

// ExistsByVenueID reports whether any event, past or future, references the
// venue. This is the single predicate behind the venue deletion guard.
func (s *SQLiteStore) ExistsByVenueID(ctx context.Context, venueID string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM event WHERE venue_id = ?`, venueID).Scan(&n)
	return n > 0, err
}

// Count returns the number of events.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM event`).Scan(&n)
	return n, err
}

// Delete removes an event by ID.
// PRE: id is non-empty
// POST: event row is removed if it existed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM event WHERE id = ?`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (domain.Event, error) {
	var e domain.Event
	var dateStr string
	err := row.Scan(&e.ID, &e.Name, &e.Description, &dateStr, &e.Time, &e.VenueID)
	if err != nil {
		return e, err
	}
	e.Date, _ = time.Parse("2006-01-02", dateStr)
	return e, nil
}

func scanEvents(rows *sql.Rows) ([]domain.Event, error) {
	var events []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
