package projections

import (
	"context"
	"log/slog"
	"time"

	"showspace/internal/adapters/social"
	domainEvent "showspace/internal/domain/event"
)

// FeedLimit caps the number of recent tagged posts shown on the event list.
const FeedLimit = 10

// GetEventListQuery carries query parameters. An empty Search returns every
// event.
type GetEventListQuery struct {
	Search string
	Today  time.Time
}

// EventListItem represents an event with its venue name for display.
type EventListItem struct {
	ID          string
	Name        string
	Description string
	Date        time.Time
	Time        string
	VenueID     string
	VenueName   string
}

// GetEventListResult carries the query result. Upcoming and Past partition
// the (possibly searched) events; All is the same set in listing order.
type GetEventListResult struct {
	All      []EventListItem
	Upcoming []EventListItem
	Past     []EventListItem
	Search   string
	Feed     []social.Post
}

// GetEventListDeps holds dependencies for GetEventList. Feed is optional;
// nil skips the social feed section.
type GetEventListDeps struct {
	EventStore EventStore
	VenueStore VenueStore
	Feed       Feed
	FeedTag    string
}

// QueryGetEventList retrieves the event list with its upcoming/past split.
// PRE: Today carries the reference date
// POST: Upcoming holds events dated today or later (soonest first), Past
// holds earlier events (most recent first); both are restricted to the
// search matches
func QueryGetEventList(ctx context.Context, query GetEventListQuery, deps GetEventListDeps) (GetEventListResult, error) {
	events, err := deps.EventStore.List(ctx)
	if err != nil {
		return GetEventListResult{}, err
	}

	matched := domainEvent.FilterByName(events, query.Search)
	upcoming := domainEvent.Intersect(domainEvent.Upcoming(events, query.Today), matched)
	past := domainEvent.Intersect(domainEvent.Past(events, query.Today), matched)

	venueNames, err := venueNameMap(ctx, deps.VenueStore)
	if err != nil {
		return GetEventListResult{}, err
	}

	result := GetEventListResult{
		All:      toListItems(matched, venueNames),
		Upcoming: toListItems(upcoming, venueNames),
		Past:     toListItems(past, venueNames),
		Search:   query.Search,
	}

	// The feed is decoration; a provider outage must not take down the list.
	if deps.Feed != nil {
		posts, err := deps.Feed.RecentTaggedPosts(ctx, deps.FeedTag, FeedLimit)
		if err != nil {
			slog.Warn("event_list_feed_unavailable", "error", err)
		} else {
			result.Feed = posts
		}
	}

	return result, nil
}

func venueNameMap(ctx context.Context, store VenueStore) (map[string]string, error) {
	venues, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(venues))
	for _, v := range venues {
		names[v.ID] = v.Name
	}
	return names, nil
}

func toListItems(events []domainEvent.Event, venueNames map[string]string) []EventListItem {
	var out []EventListItem
	for _, e := range events {
		out = append(out, EventListItem{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			Date:        e.Date,
			Time:        e.Time,
			VenueID:     e.VenueID,
			VenueName:   venueNames[e.VenueID],
		})
	}
	return out
}
