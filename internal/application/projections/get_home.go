package projections

import (
	"context"
	"time"

	domainEvent "showspace/internal/domain/event"
	domainVenue "showspace/internal/domain/venue"
)

// HomeFeaturedCount is how many future events the home page features.
const HomeFeaturedCount = 3

// HomeTopVenueCount is how many venues the home page highlights.
const HomeTopVenueCount = 3

// GetHomeQuery carries query parameters.
type GetHomeQuery struct {
	Today time.Time
}

// GetHomeResult carries the query result.
type GetHomeResult struct {
	FeaturedEvents []EventListItem
	TopVenues      []domainVenue.Venue
}

// GetHomeDeps holds dependencies for GetHome.
type GetHomeDeps struct {
	EventStore EventStore
	VenueStore VenueStore
}

// QueryGetHome retrieves the home page data: the next few strictly-future
// events and the venues hosting the most events.
func QueryGetHome(ctx context.Context, query GetHomeQuery, deps GetHomeDeps) (GetHomeResult, error) {
	events, err := deps.EventStore.List(ctx)
	if err != nil {
		return GetHomeResult{}, err
	}

	featured := domainEvent.Next(events, query.Today, HomeFeaturedCount)

	venueNames, err := venueNameMap(ctx, deps.VenueStore)
	if err != nil {
		return GetHomeResult{}, err
	}

	topVenues, err := deps.VenueStore.TopByEventCount(ctx, HomeTopVenueCount)
	if err != nil {
		return GetHomeResult{}, err
	}

	return GetHomeResult{
		FeaturedEvents: toListItems(featured, venueNames),
		TopVenues:      topVenues,
	}, nil
}
