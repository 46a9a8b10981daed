package geocode

import (
	"context"
	"errors"
)

// ErrNoResult is returned when the provider finds no location for a query.
var ErrNoResult = errors.New("no geocoding result for address")

// Coordinates is a resolved latitude/longitude pair.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Geocoder resolves a free-text address to coordinates. Callers treat any
// error as "unresolved" and fall back to sentinel coordinates; geocoding
// failures never abort a venue save.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (Coordinates, error)
}
