package venue

import (
	"context"
	"database/sql"

	"showspace/internal/adapters/storage"
	domain "showspace/internal/domain/venue"
)

const venueColumns = "id, name, road_name, postcode, capacity, latitude, longitude, address_changed"

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

// Save inserts or updates a venue.
// PRE: v is a valid Venue (Validate() returns nil)
// POST: venue is persisted with its coordinate and flag state
func (s *SQLiteStore) Save(ctx context.Context, v domain.Venue) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO venue (`+venueColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name=excluded.name, road_name=excluded.road_name, postcode=excluded.postcode,
		   capacity=excluded.capacity, latitude=excluded.latitude, longitude=excluded.longitude,
		   address_changed=excluded.address_changed`,
		v.ID, v.Name, v.RoadName, v.Postcode, v.Capacity,
		v.Latitude, v.Longitude, boolToInt(v.AddressChanged),
	)
	return err
}

// GetByID retrieves a venue by ID.
// PRE: id is non-empty
// POST: returns the venue or sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Venue, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+venueColumns+` FROM venue WHERE id = ?`, id)
	return scanVenue(row)
}

// List returns all venues ordered by name ascending.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Venue, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+venueColumns+` FROM venue ORDER BY name COLLATE NOCASE ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanVenues(rows)
}

// SearchByName returns venues whose name contains the query,
// case-insensitively, ordered by name ascending.
// PRE: query is non-empty
// POST: returns matching venues; empty slice when nothing matches
func (s *SQLiteStore) SearchByName(ctx context.Context, query string) ([]domain.Venue, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+venueColumns+` FROM venue
		 WHERE name LIKE '%' || ? || '%' COLLATE NOCASE
		 ORDER BY name COLLATE NOCASE ASC`, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanVenues(rows)
}

// ExistsByID reports whether a venue with the given ID exists.
func (s *SQLiteStore) ExistsByID(ctx context.Context, id string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM venue WHERE id = ?`, id).Scan(&n)
	return n > 0, err
}

// Count returns the number of venues.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM venue`).Scan(&n)
	return n, err
}

// Delete removes a venue by ID. Associated events cascade at the database
// level; callers are expected to have run the deletion guard first.
// PRE: id is non-empty
// POST: venue row is removed if it existed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM venue WHERE id = ?`, id)
	return err
}

// TopByEventCount returns up to limit venues ordered by how many events
// reference them, most first. Venues with no events rank last.
func (s *SQLiteStore) TopByEventCount(ctx context.Context, limit int) ([]domain.Venue, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT v.id, v.name, v.road_name, v.postcode, v.capacity, v.latitude, v.longitude, v.address_changed
		 FROM venue v
		 LEFT JOIN event e ON e.venue_id = v.id
		 GROUP BY v.id
		 ORDER BY COUNT(e.id) DESC, v.name COLLATE NOCASE ASC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanVenues(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVenue(row rowScanner) (domain.Venue, error) {
	var v domain.Venue
	var changed int
	err := row.Scan(&v.ID, &v.Name, &v.RoadName, &v.Postcode, &v.Capacity,
		&v.Latitude, &v.Longitude, &changed)
	if err != nil {
		return v, err
	}
	v.AddressChanged = changed != 0
	return v, nil
}

func scanVenues(rows *sql.Rows) ([]domain.Venue, error) {
	var venues []domain.Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
