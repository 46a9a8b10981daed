package event

import (
	"errors"
	"strings"
	"time"
)

// Max length constants.
const (
	MaxNameLength        = 255
	MaxDescriptionLength = 499
)

// Event represents a show held at a venue on a calendar date.
// The venue is a weak reference by ID; the venue side never owns or
// serialises its event list.
type Event struct {
	ID          string
	Name        string
	Description string
	Date        time.Time // calendar date; time-of-day is carried separately
	Time        string    // optional "HH:MM", empty means unset
	VenueID     string
}

// Validate checks the event's invariants. The strictly-in-the-future date
// rule applies at creation time only and is enforced by the create
// orchestrator, not here.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return errors.New("event name cannot be empty")
	}
	if len(e.Name) > MaxNameLength {
		return errors.New("event name cannot exceed 255 characters")
	}
	if len(e.Description) > MaxDescriptionLength {
		return errors.New("event description cannot exceed 499 characters")
	}
	if e.Date.IsZero() {
		return errors.New("event date is required")
	}
	if e.Time != "" {
		if _, err := time.Parse("15:04", e.Time); err != nil {
			return errors.New("event time must be in HH:MM format")
		}
	}
	if e.VenueID == "" {
		return errors.New("event venue is required")
	}
	return nil
}
