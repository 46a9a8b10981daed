package venue

import (
	"errors"
	"regexp"
	"strings"
)

// Max length constants.
const (
	MaxNameLength     = 255
	MaxRoadNameLength = 299
)

// postcodePattern matches UK postcodes such as "M1 1AA" or "EC1A 1BB".
var postcodePattern = regexp.MustCompile(`^[A-Z]{1,2}[0-9]{1,2}[A-Z0-9]?\s?[0-9][A-Z]{2}$`)

// ErrHasEvents is returned when deletion is refused because events still
// reference the venue.
var ErrHasEvents = errors.New("venue has associated events")

// Venue represents a place where events are held.
// Latitude/Longitude of (0, 0) means the address has not been resolved yet.
// AddressChanged is true whenever the stored coordinates may not match the
// current RoadName/Postcode; a save while the flag is set triggers a
// geocoding lookup.
type Venue struct {
	ID             string
	Name           string
	RoadName       string
	Postcode       string
	Capacity       int
	Latitude       float64
	Longitude      float64
	AddressChanged bool
}

// Validate checks the venue's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (v *Venue) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return errors.New("venue name cannot be empty")
	}
	if len(v.Name) > MaxNameLength {
		return errors.New("venue name cannot exceed 255 characters")
	}
	if strings.TrimSpace(v.RoadName) == "" {
		return errors.New("road name cannot be empty")
	}
	if len(v.RoadName) > MaxRoadNameLength {
		return errors.New("road name cannot exceed 299 characters")
	}
	if !postcodePattern.MatchString(v.Postcode) {
		return errors.New("postcode must be a valid UK postcode")
	}
	if v.Capacity < 1 {
		return errors.New("capacity must be a positive integer")
	}
	return nil
}

// AddressDiffers reports whether roadName or postcode differ from the
// venue's stored address. The comparison is trimmed and case-insensitive,
// so whitespace or casing edits alone do not count as an address change.
// PRE: none
// POST: returns true if either field differs after normalisation
func (v *Venue) AddressDiffers(roadName, postcode string) bool {
	return !strings.EqualFold(strings.TrimSpace(v.RoadName), strings.TrimSpace(roadName)) ||
		!strings.EqualFold(strings.TrimSpace(v.Postcode), strings.TrimSpace(postcode))
}

// HasCoordinates reports whether the venue holds resolved coordinates
// rather than the (0, 0) sentinel.
func (v *Venue) HasCoordinates() bool {
	return v.Latitude != 0 || v.Longitude != 0
}
