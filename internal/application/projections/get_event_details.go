package projections

import (
	"context"

	domainEvent "showspace/internal/domain/event"
	domainVenue "showspace/internal/domain/venue"
)

// GetEventDetailsQuery carries query parameters.
type GetEventDetailsQuery struct {
	EventID string
}

// GetEventDetailsResult carries the query result.
type GetEventDetailsResult struct {
	Event domainEvent.Event
	Venue domainVenue.Venue
}

// GetEventDetailsDeps holds dependencies for GetEventDetails.
type GetEventDetailsDeps struct {
	EventStore EventStore
	VenueStore VenueStore
}

// QueryGetEventDetails retrieves an event together with its venue.
// PRE: EventID references an existing event
// POST: Venue is the event's venue; a dangling venue reference surfaces as
// an error rather than a partial result
func QueryGetEventDetails(ctx context.Context, query GetEventDetailsQuery, deps GetEventDetailsDeps) (GetEventDetailsResult, error) {
	e, err := deps.EventStore.GetByID(ctx, query.EventID)
	if err != nil {
		return GetEventDetailsResult{}, err
	}

	v, err := deps.VenueStore.GetByID(ctx, e.VenueID)
	if err != nil {
		return GetEventDetailsResult{}, err
	}

	return GetEventDetailsResult{Event: e, Venue: v}, nil
}
