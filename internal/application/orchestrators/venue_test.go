package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"showspace/internal/adapters/geocode"
	"showspace/internal/domain/venue"
)

// mockVenueStore implements VenueStoreForOrchestrator and SeedVenueStore.
type mockVenueStore struct {
	venues map[string]venue.Venue
}

func newMockVenueStore() *mockVenueStore {
	return &mockVenueStore{venues: make(map[string]venue.Venue)}
}

func (m *mockVenueStore) Save(_ context.Context, v venue.Venue) error {
	m.venues[v.ID] = v
	return nil
}

func (m *mockVenueStore) GetByID(_ context.Context, id string) (venue.Venue, error) {
	v, ok := m.venues[id]
	if !ok {
		return venue.Venue{}, sql.ErrNoRows
	}
	return v, nil
}

func (m *mockVenueStore) Delete(_ context.Context, id string) error {
	delete(m.venues, id)
	return nil
}

func (m *mockVenueStore) Count(_ context.Context) (int, error) {
	return len(m.venues), nil
}

func (m *mockVenueStore) ExistsByID(_ context.Context, id string) (bool, error) {
	_, ok := m.venues[id]
	return ok, nil
}

// fakeGeocoder counts calls and either resolves a fixed coordinate pair or
// fails.
type fakeGeocoder struct {
	calls     int
	lastQuery string
	fail      bool
	coords    geocode.Coordinates
}

func (g *fakeGeocoder) Resolve(_ context.Context, address string) (geocode.Coordinates, error) {
	g.calls++
	g.lastQuery = address
	if g.fail {
		return geocode.Coordinates{}, geocode.ErrNoResult
	}
	return g.coords, nil
}

var idCounter int

func nextID() string {
	idCounter++
	return fmt.Sprintf("test-id-%03d", idCounter)
}

// --- ExecuteCreateVenue tests ---

// TestExecuteCreateVenue_ResolvesCoordinates tests that creation geocodes
// the concatenated address and clears the flag on success.
func TestExecuteCreateVenue_ResolvesCoordinates(t *testing.T) {
	store := newMockVenueStore()
	geo := &fakeGeocoder{coords: geocode.Coordinates{Latitude: 53.48, Longitude: -2.24}}

	v, err := ExecuteCreateVenue(context.Background(), CreateVenueInput{
		Name:     "Kilburn 2.25",
		RoadName: "23 Manchester Road",
		Postcode: "E14 3BD",
		Capacity: 120,
	}, CreateVenueDeps{VenueStore: store, Geocoder: geo, GenerateID: nextID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if geo.lastQuery != "23 Manchester Road, E14 3BD, UK" {
		t.Errorf("unexpected geocode query %q", geo.lastQuery)
	}
	if v.Latitude != 53.48 || v.Longitude != -2.24 {
		t.Errorf("coordinates not stored: %+v", v)
	}
	if v.AddressChanged {
		t.Error("flag should be cleared after successful resolution")
	}
	if saved := store.venues[v.ID]; saved != v {
		t.Errorf("persisted venue differs: %+v", saved)
	}
}

// TestExecuteCreateVenue_GeocodeFailure tests that a failed lookup leaves
// sentinel coordinates, keeps the flag set, and does not fail the save.
func TestExecuteCreateVenue_GeocodeFailure(t *testing.T) {
	store := newMockVenueStore()
	geo := &fakeGeocoder{fail: true}

	v, err := ExecuteCreateVenue(context.Background(), CreateVenueInput{
		Name:     "Megalab",
		RoadName: "Highland Road",
		Postcode: "S43 2EZ",
		Capacity: 500,
	}, CreateVenueDeps{VenueStore: store, Geocoder: geo, GenerateID: nextID})
	if err != nil {
		t.Fatalf("geocoding failure must not fail the save: %v", err)
	}
	if v.Latitude != 0 || v.Longitude != 0 {
		t.Errorf("expected sentinel coordinates, got %+v", v)
	}
	if !v.AddressChanged {
		t.Error("flag must stay set after a failed lookup so the next save retries")
	}
}

// TestExecuteCreateVenue_Invalid tests that validation failures reach the
// caller before any geocoding happens.
func TestExecuteCreateVenue_Invalid(t *testing.T) {
	store := newMockVenueStore()
	geo := &fakeGeocoder{}

	_, err := ExecuteCreateVenue(context.Background(), CreateVenueInput{
		Name:     "",
		RoadName: "Highland Road",
		Postcode: "S43 2EZ",
		Capacity: 500,
	}, CreateVenueDeps{VenueStore: store, Geocoder: geo, GenerateID: nextID})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if geo.calls != 0 {
		t.Error("invalid venue must not trigger a geocoding call")
	}
	if len(store.venues) != 0 {
		t.Error("invalid venue must not be persisted")
	}
}

// --- ExecuteEditVenue tests ---

func seedResolvedVenue(store *mockVenueStore) venue.Venue {
	v := venue.Venue{
		ID:             "v1",
		Name:           "Kilburn 2.25",
		RoadName:       "23 Manchester Road",
		Postcode:       "M1 1AA",
		Capacity:       120,
		Latitude:       53.48,
		Longitude:      -2.24,
		AddressChanged: false,
	}
	store.venues[v.ID] = v
	return v
}

// TestExecuteEditVenue_UnchangedAddressSkipsGeocode tests that a
// case/whitespace-only address edit does not set the flag or call the
// provider.
func TestExecuteEditVenue_UnchangedAddressSkipsGeocode(t *testing.T) {
	store := newMockVenueStore()
	seedResolvedVenue(store)
	geo := &fakeGeocoder{coords: geocode.Coordinates{Latitude: 1, Longitude: 1}}

	v, err := ExecuteEditVenue(context.Background(), EditVenueInput{
		VenueID:  "v1",
		Name:     "Kilburn 2.25 (renamed)",
		RoadName: "23 MANCHESTER ROAD",
		Postcode: "m1 1aa",
		Capacity: 150,
	}, EditVenueDeps{VenueStore: store, Geocoder: geo})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if geo.calls != 0 {
		t.Error("unchanged address must not trigger a geocoding call")
	}
	if v.AddressChanged {
		t.Error("flag must not be set for a case/whitespace-only edit")
	}
	if v.Latitude != 53.48 || v.Longitude != -2.24 {
		t.Errorf("coordinates must be untouched, got %+v", v)
	}
	if v.Capacity != 150 || v.Name != "Kilburn 2.25 (renamed)" {
		t.Errorf("non-address fields must still update: %+v", v)
	}
}

// TestExecuteEditVenue_ChangedPostcodeTriggersGeocode tests the
// Resolved -> Unresolved -> Resolved transition on a real address change.
func TestExecuteEditVenue_ChangedPostcodeTriggersGeocode(t *testing.T) {
	store := newMockVenueStore()
	seedResolvedVenue(store)
	geo := &fakeGeocoder{coords: geocode.Coordinates{Latitude: 51.5, Longitude: -0.12}}

	v, err := ExecuteEditVenue(context.Background(), EditVenueInput{
		VenueID:  "v1",
		Name:     "Kilburn 2.25",
		RoadName: "23 Manchester Road",
		Postcode: "M2 2BB",
		Capacity: 120,
	}, EditVenueDeps{VenueStore: store, Geocoder: geo})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if geo.calls != 1 {
		t.Errorf("expected exactly one geocoding call, got %d", geo.calls)
	}
	if geo.lastQuery != "23 Manchester Road, M2 2BB, UK" {
		t.Errorf("unexpected geocode query %q", geo.lastQuery)
	}
	if v.AddressChanged {
		t.Error("flag should be cleared after successful resolution")
	}
	if v.Latitude != 51.5 || v.Longitude != -0.12 {
		t.Errorf("new coordinates not stored: %+v", v)
	}
}

// TestExecuteEditVenue_RetryAfterFailure tests that an unresolved venue
// retries geocoding on every save until it succeeds, even when the address
// has not changed again.
func TestExecuteEditVenue_RetryAfterFailure(t *testing.T) {
	store := newMockVenueStore()
	seedResolvedVenue(store)
	geo := &fakeGeocoder{fail: true}
	deps := EditVenueDeps{VenueStore: store, Geocoder: geo}

	input := EditVenueInput{
		VenueID:  "v1",
		Name:     "Kilburn 2.25",
		RoadName: "23 Manchester Road",
		Postcode: "M2 2BB",
		Capacity: 120,
	}

	// First save: address changed, lookup fails.
	v, err := ExecuteEditVenue(context.Background(), input, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.AddressChanged || v.Latitude != 0 || v.Longitude != 0 {
		t.Fatalf("expected unresolved venue with sentinel coordinates, got %+v", v)
	}

	// Second save with identical fields: still retries because the venue is
	// unresolved.
	v, err = ExecuteEditVenue(context.Background(), input, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if geo.calls != 2 {
		t.Errorf("expected a retry on the second save, got %d calls", geo.calls)
	}

	// Third save: the provider recovers and the venue resolves.
	geo.fail = false
	geo.coords = geocode.Coordinates{Latitude: 51.5, Longitude: -0.12}
	v, err = ExecuteEditVenue(context.Background(), input, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.AddressChanged || v.Latitude != 51.5 {
		t.Errorf("expected resolved venue, got %+v", v)
	}
}

// TestExecuteEditVenue_NotFound tests the missing-venue path.
func TestExecuteEditVenue_NotFound(t *testing.T) {
	store := newMockVenueStore()
	_, err := ExecuteEditVenue(context.Background(), EditVenueInput{
		VenueID:  "missing",
		Name:     "n",
		RoadName: "r",
		Postcode: "M1 1AA",
		Capacity: 1,
	}, EditVenueDeps{VenueStore: store, Geocoder: &fakeGeocoder{}})
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

// --- ExecuteDeleteVenue tests ---

// mockEventExistence implements EventExistenceStore.
type mockEventExistence struct {
	venuesWithEvents map[string]bool
}

func (m *mockEventExistence) ExistsByVenueID(_ context.Context, venueID string) (bool, error) {
	return m.venuesWithEvents[venueID], nil
}

// TestExecuteDeleteVenue_Guard tests that any associated event blocks
// deletion and that the refusal leaves state unchanged.
func TestExecuteDeleteVenue_Guard(t *testing.T) {
	store := newMockVenueStore()
	seedResolvedVenue(store)
	events := &mockEventExistence{venuesWithEvents: map[string]bool{"v1": true}}
	deps := DeleteVenueDeps{VenueStore: store, EventStore: events}

	err := ExecuteDeleteVenue(context.Background(), DeleteVenueInput{VenueID: "v1"}, deps)
	if !errors.Is(err, venue.ErrHasEvents) {
		t.Fatalf("expected ErrHasEvents, got %v", err)
	}
	if _, ok := store.venues["v1"]; !ok {
		t.Fatal("refused deletion must leave the venue in place")
	}

	// The check is pure: asking again without mutation gives the same
	// answer.
	err = ExecuteDeleteVenue(context.Background(), DeleteVenueInput{VenueID: "v1"}, deps)
	if !errors.Is(err, venue.ErrHasEvents) {
		t.Errorf("expected identical refusal on repeat, got %v", err)
	}

	// With the association gone, deletion proceeds.
	events.venuesWithEvents["v1"] = false
	if err := ExecuteDeleteVenue(context.Background(), DeleteVenueInput{VenueID: "v1"}, deps); err != nil {
		t.Fatalf("expected deletion to succeed, got %v", err)
	}
	if _, ok := store.venues["v1"]; ok {
		t.Error("venue should be deleted")
	}
}

// TestExecuteDeleteVenue_NotFound tests deleting a missing venue.
func TestExecuteDeleteVenue_NotFound(t *testing.T) {
	store := newMockVenueStore()
	events := &mockEventExistence{venuesWithEvents: map[string]bool{}}

	err := ExecuteDeleteVenue(context.Background(), DeleteVenueInput{VenueID: "missing"},
		DeleteVenueDeps{VenueStore: store, EventStore: events})
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}
