package geocode

import (
	"context"
	"log/slog"
)

// NoopGeocoder is a no-op geocoder for development and testing. It never
// resolves anything, so venues keep sentinel coordinates and retry on each
// save, exactly as with a failing real provider.
type NoopGeocoder struct{}

// NewNoopGeocoder creates a new NoopGeocoder.
func NewNoopGeocoder() *NoopGeocoder {
	return &NoopGeocoder{}
}

// Resolve logs the lookup and reports no result.
func (g *NoopGeocoder) Resolve(_ context.Context, address string) (Coordinates, error) {
	slog.Info("noop_geocode", "address", address)
	return Coordinates{}, ErrNoResult
}
