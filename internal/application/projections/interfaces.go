package projections

import (
	"context"

	"showspace/internal/adapters/social"
	domainEvent "showspace/internal/domain/event"
	domainVenue "showspace/internal/domain/venue"
)

// VenueStore interface for venue queries.
type VenueStore interface {
	GetByID(ctx context.Context, id string) (domainVenue.Venue, error)
	List(ctx context.Context) ([]domainVenue.Venue, error)
	SearchByName(ctx context.Context, query string) ([]domainVenue.Venue, error)
	TopByEventCount(ctx context.Context, limit int) ([]domainVenue.Venue, error)
}

// EventStore interface for event queries.
type EventStore interface {
	GetByID(ctx context.Context, id string) (domainEvent.Event, error)
	List(ctx context.Context) ([]domainEvent.Event, error)
	ListByVenueID(ctx context.Context, venueID string) ([]domainEvent.Event, error)
}

// Feed interface for reading recent tagged posts from the social provider.
type Feed interface {
	RecentTaggedPosts(ctx context.Context, tag string, limit int) ([]social.Post, error)
}
