package projections

import (
	"context"
	"time"

	domainEvent "showspace/internal/domain/event"
)

// GetNextEventsQuery carries query parameters. VenueID is optional; when set
// the result is scoped to that venue.
type GetNextEventsQuery struct {
	Today   time.Time
	Limit   int
	VenueID string
}

// GetNextEventsResult carries the query result.
type GetNextEventsResult struct {
	Events []EventListItem
}

// GetNextEventsDeps holds dependencies for GetNextEvents.
type GetNextEventsDeps struct {
	EventStore EventStore
	VenueStore VenueStore
}

// QueryGetNextEvents retrieves the next events strictly after today, soonest
// first. An event dated exactly today is excluded; it is current, not next.
func QueryGetNextEvents(ctx context.Context, query GetNextEventsQuery, deps GetNextEventsDeps) (GetNextEventsResult, error) {
	events, err := deps.EventStore.List(ctx)
	if err != nil {
		return GetNextEventsResult{}, err
	}

	var next []domainEvent.Event
	if query.VenueID != "" {
		next = domainEvent.NextForVenue(events, query.VenueID, query.Today, query.Limit)
	} else {
		next = domainEvent.Next(events, query.Today, query.Limit)
	}

	venueNames, err := venueNameMap(ctx, deps.VenueStore)
	if err != nil {
		return GetNextEventsResult{}, err
	}

	return GetNextEventsResult{Events: toListItems(next, venueNames)}, nil
}
