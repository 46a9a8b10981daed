package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const defaultMapboxBaseURL = "https://api.mapbox.com/geocoding/v5/mapbox.places"

// MapboxGeocoder resolves addresses via the Mapbox forward geocoding API.
type MapboxGeocoder struct {
	client      *http.Client
	baseURL     string
	accessToken string
}

// NewMapboxGeocoder creates a geocoder for the Mapbox places endpoint.
// PRE: accessToken is a valid Mapbox access token
// POST: geocoder is ready for use
func NewMapboxGeocoder(accessToken string) *MapboxGeocoder {
	return &MapboxGeocoder{
		client:      &http.Client{Timeout: 10 * time.Second},
		baseURL:     defaultMapboxBaseURL,
		accessToken: accessToken,
	}
}

// NewMapboxGeocoderWithBaseURL creates a geocoder against a custom endpoint.
// Tests use this to point at a local server.
func NewMapboxGeocoderWithBaseURL(accessToken, baseURL string) *MapboxGeocoder {
	g := NewMapboxGeocoder(accessToken)
	g.baseURL = baseURL
	return g
}

// mapboxResponse is the subset of the geocoding response we read.
// Feature centers are [longitude, latitude] pairs.
type mapboxResponse struct {
	Features []struct {
		Center []float64 `json:"center"`
	} `json:"features"`
}

// Resolve geocodes the address and returns the first result's coordinates.
// PRE: address is non-empty
// POST: returns the first feature's coordinates, or ErrNoResult when the
// provider returns no usable feature
func (g *MapboxGeocoder) Resolve(ctx context.Context, address string) (Coordinates, error) {
	endpoint := fmt.Sprintf("%s/%s.json?access_token=%s&limit=1",
		g.baseURL, url.PathEscape(address), url.QueryEscape(g.accessToken))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Coordinates{}, fmt.Errorf("build geocoding request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("mapbox_geocode_failed", "status", resp.StatusCode, "address", address)
		return Coordinates{}, fmt.Errorf("geocoding returned status %d", resp.StatusCode)
	}

	var body mapboxResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Coordinates{}, fmt.Errorf("decode geocoding response: %w", err)
	}
	if len(body.Features) == 0 || len(body.Features[0].Center) < 2 {
		return Coordinates{}, ErrNoResult
	}

	center := body.Features[0].Center
	coords := Coordinates{Latitude: center[1], Longitude: center[0]}
	slog.Info("mapbox_geocoded", "address", address, "lat", coords.Latitude, "lon", coords.Longitude)
	return coords, nil
}
