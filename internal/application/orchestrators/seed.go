package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"showspace/internal/adapters/geocode"
	"showspace/internal/domain/event"
)

// SeedVenueStore extends the orchestrator venue store with the count used
// for the already-populated check.
type SeedVenueStore interface {
	VenueStoreForOrchestrator
	Count(ctx context.Context) (int, error)
}

// SeedEventStore persists seed events and exposes the count used for the
// already-populated check.
type SeedEventStore interface {
	Save(ctx context.Context, e event.Event) error
	Count(ctx context.Context) (int, error)
}

// SeedDeps holds dependencies for the initial data loader.
type SeedDeps struct {
	VenueStore SeedVenueStore
	EventStore SeedEventStore
	Geocoder   geocode.Geocoder
	GenerateID func() string
}

type seedEvent struct {
	name string
	date string
	time string
}

// ExecuteSeedInitialData loads the starter venues and events into an empty
// database. A database with any venue or event rows is left untouched, so
// the seed is idempotent across restarts.
// PRE: stores are backed by an initialized schema
// POST: either the starter data exists or the database was already populated
func ExecuteSeedInitialData(ctx context.Context, deps SeedDeps) error {
	venueCount, err := deps.VenueStore.Count(ctx)
	if err != nil {
		return err
	}
	eventCount, err := deps.EventStore.Count(ctx)
	if err != nil {
		return err
	}
	if venueCount > 0 || eventCount > 0 {
		slog.Info("seed_skipped", "venues", venueCount, "events", eventCount)
		return nil
	}

	createDeps := CreateVenueDeps{
		VenueStore: deps.VenueStore,
		Geocoder:   deps.Geocoder,
		GenerateID: deps.GenerateID,
	}

	venues := []CreateVenueInput{
		{Name: "Kilburn 2.25", RoadName: "23 Manchester Road", Postcode: "E14 3BD", Capacity: 120},
		{Name: "Megalab", RoadName: "Highland Road", Postcode: "S43 2EZ", Capacity: 500},
		{Name: "Online", RoadName: "19 Acacia Avenue", Postcode: "WA15 8QY", Capacity: 100000},
	}

	venueIDs := make([]string, 0, len(venues))
	for _, input := range venues {
		v, err := ExecuteCreateVenue(ctx, input, createDeps)
		if err != nil {
			return err
		}
		venueIDs = append(venueIDs, v.ID)
	}

	// Seed events bypass the create orchestrator: the starter data includes
	// past events so the upcoming/past partition has something on each side.
	seeds := []struct {
		venue  int
		events []seedEvent
	}{
		{0, []seedEvent{
			{"Group H06 1", "2025-02-14", "11:00"},
			{"Group H06 2", "2025-02-16", "11:30"},
			{"Group H06 3", "2025-02-20", "15:00"},
		}},
		{1, []seedEvent{
			{"Launch Night", "2026-09-18", "19:00"},
			{"Launch Night Encore", "2026-10-02", "19:00"},
		}},
		{2, []seedEvent{
			{"Winter Showcase", "2026-12-05", ""},
		}},
	}

	for _, group := range seeds {
		for _, se := range group.events {
			date, err := time.Parse("2006-01-02", se.date)
			if err != nil {
				return err
			}
			e := event.Event{
				ID:      deps.GenerateID(),
				Name:    se.name,
				Date:    date,
				Time:    se.time,
				VenueID: venueIDs[group.venue],
			}
			if err := deps.EventStore.Save(ctx, e); err != nil {
				return err
			}
		}
	}

	slog.Info("seed_loaded", "venues", len(venues), "events", 6)
	return nil
}
