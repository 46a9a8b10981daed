package event

import (
	"sort"
	"strings"
	"time"
)

// dateLayout is the calendar-day granularity used by all classification.
const dateLayout = "2006-01-02"

func day(t time.Time) string {
	return t.Format(dateLayout)
}

// IsUpcoming reports whether the event falls on or after the reference date.
// An event dated exactly today is upcoming.
func IsUpcoming(e Event, today time.Time) bool {
	return day(e.Date) >= day(today)
}

// IsPast reports whether the event falls strictly before the reference date.
func IsPast(e Event, today time.Time) bool {
	return day(e.Date) < day(today)
}

// Upcoming returns the events on or after today, ordered by date ascending
// with name as the tie-break for same-day events.
// PRE: none
// POST: result is a new slice; input order is untouched
func Upcoming(events []Event, today time.Time) []Event {
	var out []Event
	for _, e := range events {
		if IsUpcoming(e, today) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if di, dj := day(out[i].Date), day(out[j].Date); di != dj {
			return di < dj
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Past returns the events strictly before today, ordered by date descending
// (most recent first) with name ascending as the tie-break.
// PRE: none
// POST: result is a new slice; input order is untouched
func Past(events []Event, today time.Time) []Event {
	var out []Event
	for _, e := range events {
		if IsPast(e, today) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if di, dj := day(out[i].Date), day(out[j].Date); di != dj {
			return di > dj
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// All returns every event ordered by date ascending then time-of-day
// ascending. Note the tie-break differs from Upcoming/Past, which order
// same-day events by name; the full listing orders them by time.
func All(events []Event) []Event {
	out := make([]Event, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		if di, dj := day(out[i].Date), day(out[j].Date); di != dj {
			return di < dj
		}
		return out[i].Time < out[j].Time
	})
	return out
}

// FilterByName returns the events whose name contains the query as a
// case-insensitive substring. An empty query means no filter and falls back
// to All.
func FilterByName(events []Event, query string) []Event {
	if query == "" {
		return All(events)
	}
	q := strings.ToLower(query)
	var out []Event
	for _, e := range events {
		if strings.Contains(strings.ToLower(e.Name), q) {
			out = append(out, e)
		}
	}
	return out
}

// Intersect returns the events of a, in a's order, that also appear in b
// (matched by ID). The list views use this to restrict the upcoming/past
// partitions to the current search results.
func Intersect(a, b []Event) []Event {
	ids := make(map[string]bool, len(b))
	for _, e := range b {
		ids[e.ID] = true
	}
	var out []Event
	for _, e := range a {
		if ids[e.ID] {
			out = append(out, e)
		}
	}
	return out
}

// UpcomingForVenue returns the upcoming events (date on or after today)
// referencing the given venue, ordered by date ascending. An unknown venue
// ID yields an empty result, not an error.
func UpcomingForVenue(events []Event, venueID string, today time.Time) []Event {
	var scoped []Event
	for _, e := range events {
		if e.VenueID == venueID {
			scoped = append(scoped, e)
		}
	}
	return Upcoming(scoped, today)
}

// Next returns the first n events dated STRICTLY after today, ordered by
// date ascending. Unlike IsUpcoming, an event dated exactly today is
// excluded here; "next events" and "upcoming events" are deliberately
// different rules.
func Next(events []Event, today time.Time, n int) []Event {
	var out []Event
	for _, e := range events {
		if day(e.Date) > day(today) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if di, dj := day(out[i].Date), day(out[j].Date); di != dj {
			return di < dj
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// NextForVenue returns the first n strictly-future events referencing the
// given venue, ordered by date ascending.
func NextForVenue(events []Event, venueID string, today time.Time, n int) []Event {
	var scoped []Event
	for _, e := range events {
		if e.VenueID == venueID {
			scoped = append(scoped, e)
		}
	}
	return Next(scoped, today, n)
}
