package projections

import (
	"context"

	domainVenue "showspace/internal/domain/venue"
)

// GetVenueListQuery carries query parameters. An empty Search returns every
// venue.
type GetVenueListQuery struct {
	Search string
}

// GetVenueListResult carries the query result.
type GetVenueListResult struct {
	Venues []domainVenue.Venue
	Search string
}

// GetVenueListDeps holds dependencies for GetVenueList.
type GetVenueListDeps struct {
	VenueStore VenueStore
}

// QueryGetVenueList retrieves venues ordered by name, optionally filtered by
// a case-insensitive name search.
func QueryGetVenueList(ctx context.Context, query GetVenueListQuery, deps GetVenueListDeps) (GetVenueListResult, error) {
	var (
		venues []domainVenue.Venue
		err    error
	)
	if query.Search == "" {
		venues, err = deps.VenueStore.List(ctx)
	} else {
		venues, err = deps.VenueStore.SearchByName(ctx, query.Search)
	}
	if err != nil {
		return GetVenueListResult{}, err
	}

	return GetVenueListResult{Venues: venues, Search: query.Search}, nil
}
