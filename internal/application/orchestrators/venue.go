package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"showspace/internal/adapters/geocode"
	"showspace/internal/domain/venue"
)

// VenueStoreForOrchestrator defines the store interface needed by venue
// orchestrators.
type VenueStoreForOrchestrator interface {
	Save(ctx context.Context, v venue.Venue) error
	GetByID(ctx context.Context, id string) (venue.Venue, error)
	Delete(ctx context.Context, id string) error
}

// EventExistenceStore is the single predicate behind the deletion guard.
type EventExistenceStore interface {
	ExistsByVenueID(ctx context.Context, venueID string) (bool, error)
}

// resolveCoordinates applies the address-change gate to a venue about to be
// persisted. When the flag is set it geocodes "{roadName}, {postcode}, UK";
// on success it stores the coordinates and clears the flag, on failure it
// keeps sentinel coordinates and leaves the flag set so the next save
// retries. Runs before Save so the coordinate fields land in the same write
// as the rest of the venue.
func resolveCoordinates(ctx context.Context, v *venue.Venue, geocoder geocode.Geocoder) {
	if !v.AddressChanged {
		return
	}
	address := fmt.Sprintf("%s, %s, UK", v.RoadName, v.Postcode)
	coords, err := geocoder.Resolve(ctx, address)
	if err != nil {
		// Best effort: location data is not critical to the venue. Keep
		// the flag set so a later save retries the lookup.
		slog.Warn("venue_geocode_failed", "address", address, "error", err)
		v.Latitude, v.Longitude = 0, 0
		return
	}
	v.Latitude = coords.Latitude
	v.Longitude = coords.Longitude
	v.AddressChanged = false
}

// --- Create Venue ---

// CreateVenueInput carries input for the create venue orchestrator.
type CreateVenueInput struct {
	Name     string
	RoadName string
	Postcode string
	Capacity int
}

// CreateVenueDeps holds dependencies for CreateVenue.
type CreateVenueDeps struct {
	VenueStore VenueStoreForOrchestrator
	Geocoder   geocode.Geocoder
	GenerateID func() string
}

// ExecuteCreateVenue creates a new venue. New venues start with the
// address-changed flag set, so creation always attempts a geocoding lookup.
// PRE: input fields satisfy venue validation rules
// POST: venue persisted with resolved coordinates, or sentinel coordinates
// and the flag still set when the lookup failed
func ExecuteCreateVenue(ctx context.Context, input CreateVenueInput, deps CreateVenueDeps) (venue.Venue, error) {
	v := venue.Venue{
		ID:             deps.GenerateID(),
		Name:           input.Name,
		RoadName:       input.RoadName,
		Postcode:       input.Postcode,
		Capacity:       input.Capacity,
		AddressChanged: true,
	}

	if err := v.Validate(); err != nil {
		return venue.Venue{}, err
	}

	resolveCoordinates(ctx, &v, deps.Geocoder)

	if err := deps.VenueStore.Save(ctx, v); err != nil {
		return venue.Venue{}, err
	}

	slog.Info("venue_event", "event", "venue_created", "venue_id", v.ID, "name", v.Name, "resolved", !v.AddressChanged)
	return v, nil
}

// --- Edit Venue ---

// EditVenueInput carries input for the edit venue orchestrator. Fields
// replace the stored values wholesale; there is no partial patching.
type EditVenueInput struct {
	VenueID  string
	Name     string
	RoadName string
	Postcode string
	Capacity int
}

// EditVenueDeps holds dependencies for EditVenue.
type EditVenueDeps struct {
	VenueStore VenueStoreForOrchestrator
	Geocoder   geocode.Geocoder
}

// ExecuteEditVenue updates a venue, setting the address-changed flag when
// roadName or postcode differ from the stored values (trimmed,
// case-insensitive). A changed address, or an earlier unresolved lookup,
// triggers geocoding on this save; an unchanged resolved address skips the
// provider call entirely.
// PRE: VenueID must reference an existing venue
// POST: venue persisted with coordinates consistent with the gate's rules
func ExecuteEditVenue(ctx context.Context, input EditVenueInput, deps EditVenueDeps) (venue.Venue, error) {
	if input.VenueID == "" {
		return venue.Venue{}, errors.New("venue ID is required")
	}

	v, err := deps.VenueStore.GetByID(ctx, input.VenueID)
	if err != nil {
		return venue.Venue{}, err
	}

	if v.AddressDiffers(input.RoadName, input.Postcode) {
		v.AddressChanged = true
	}
	// An unchanged address leaves the flag as it was: a venue whose last
	// lookup failed stays unresolved and retries below.

	v.Name = input.Name
	v.RoadName = input.RoadName
	v.Postcode = input.Postcode
	v.Capacity = input.Capacity

	if err := v.Validate(); err != nil {
		return venue.Venue{}, err
	}

	resolveCoordinates(ctx, &v, deps.Geocoder)

	if err := deps.VenueStore.Save(ctx, v); err != nil {
		return venue.Venue{}, err
	}

	slog.Info("venue_event", "event", "venue_edited", "venue_id", v.ID, "name", v.Name, "resolved", !v.AddressChanged)
	return v, nil
}

// --- Delete Venue ---

// DeleteVenueInput carries input for the delete venue orchestrator.
type DeleteVenueInput struct {
	VenueID string
}

// DeleteVenueDeps holds dependencies for DeleteVenue.
type DeleteVenueDeps struct {
	VenueStore VenueStoreForOrchestrator
	EventStore EventExistenceStore
}

// ExecuteDeleteVenue deletes a venue unless any event, past or future,
// still references it. The guard is unconditional on event dates.
// PRE: VenueID must be non-empty
// POST: venue removed, or venue.ErrHasEvents with state unchanged
func ExecuteDeleteVenue(ctx context.Context, input DeleteVenueInput, deps DeleteVenueDeps) error {
	if input.VenueID == "" {
		return errors.New("venue ID is required")
	}

	if _, err := deps.VenueStore.GetByID(ctx, input.VenueID); err != nil {
		return err
	}

	hasEvents, err := deps.EventStore.ExistsByVenueID(ctx, input.VenueID)
	if err != nil {
		return err
	}
	if hasEvents {
		return venue.ErrHasEvents
	}

	if err := deps.VenueStore.Delete(ctx, input.VenueID); err != nil {
		return err
	}

	slog.Info("venue_event", "event", "venue_deleted", "venue_id", input.VenueID)
	return nil
}
