package projections

import (
	"context"
	"time"

	domainEvent "showspace/internal/domain/event"
	domainVenue "showspace/internal/domain/venue"
)

// GetVenueDetailsQuery carries query parameters.
type GetVenueDetailsQuery struct {
	VenueID string
	Today   time.Time
}

// GetVenueDetailsResult carries the query result.
type GetVenueDetailsResult struct {
	Venue          domainVenue.Venue
	UpcomingEvents []domainEvent.Event
	HasCoordinates bool
}

// GetVenueDetailsDeps holds dependencies for GetVenueDetails.
type GetVenueDetailsDeps struct {
	VenueStore VenueStore
	EventStore EventStore
}

// QueryGetVenueDetails retrieves a venue with its upcoming events.
// PRE: VenueID references an existing venue
// POST: UpcomingEvents holds the venue's events dated today or later,
// soonest first; past events for the venue are omitted
func QueryGetVenueDetails(ctx context.Context, query GetVenueDetailsQuery, deps GetVenueDetailsDeps) (GetVenueDetailsResult, error) {
	v, err := deps.VenueStore.GetByID(ctx, query.VenueID)
	if err != nil {
		return GetVenueDetailsResult{}, err
	}

	events, err := deps.EventStore.ListByVenueID(ctx, query.VenueID)
	if err != nil {
		return GetVenueDetailsResult{}, err
	}

	return GetVenueDetailsResult{
		Venue:          v,
		UpcomingEvents: domainEvent.Upcoming(events, query.Today),
		HasCoordinates: v.HasCoordinates(),
	}, nil
}
