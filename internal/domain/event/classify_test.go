package event

import (
	"testing"
	"time"
)

func d(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func names(events []Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Name
	}
	return out
}

func equalNames(got []Event, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i].Name != want[i] {
			return false
		}
	}
	return true
}

// TestIsUpcoming_IsPast_Partition tests that every event is exactly one of
// upcoming or past for any reference date.
func TestIsUpcoming_IsPast_Partition(t *testing.T) {
	today := d("2025-01-15")
	for _, date := range []string{"2024-12-31", "2025-01-14", "2025-01-15", "2025-01-16", "2026-06-01"} {
		e := Event{ID: date, Name: "n", Date: d(date)}
		up, past := IsUpcoming(e, today), IsPast(e, today)
		if up == past {
			t.Errorf("date %s: upcoming=%v past=%v, want exactly one true", date, up, past)
		}
	}

	// An event dated exactly today is upcoming, never past.
	e := Event{Date: today}
	if !IsUpcoming(e, today) || IsPast(e, today) {
		t.Error("event dated today must be upcoming")
	}
}

// TestUpcomingPast_CoverFullSet tests that the two partitions reassemble
// the full set for any reference date.
func TestUpcomingPast_CoverFullSet(t *testing.T) {
	events := []Event{
		{ID: "1", Name: "A", Date: d("2025-01-01")},
		{ID: "2", Name: "B", Date: d("2025-02-01")},
		{ID: "3", Name: "C", Date: d("2025-03-01")},
		{ID: "4", Name: "D", Date: d("2025-03-01")},
	}
	for _, today := range []string{"2024-01-01", "2025-02-01", "2025-02-15", "2026-01-01"} {
		up := Upcoming(events, d(today))
		past := Past(events, d(today))
		if len(up)+len(past) != len(events) {
			t.Errorf("today %s: %d upcoming + %d past != %d total", today, len(up), len(past), len(events))
		}
		seen := map[string]bool{}
		for _, e := range append(up, past...) {
			if seen[e.ID] {
				t.Errorf("today %s: event %s appears in both partitions", today, e.ID)
			}
			seen[e.ID] = true
		}
	}
}

// TestUpcoming_Ordering tests date ascending with name tie-break.
func TestUpcoming_Ordering(t *testing.T) {
	events := []Event{
		{ID: "1", Name: "B", Date: d("2025-01-01")},
		{ID: "2", Name: "A", Date: d("2025-01-01")},
		{ID: "3", Name: "C", Date: d("2025-02-01")},
	}
	got := Upcoming(events, d("2025-01-01"))
	if !equalNames(got, []string{"A", "B", "C"}) {
		t.Errorf("expected [A B C], got %v", names(got))
	}
}

// TestPast_Ordering tests date descending with name ascending tie-break.
func TestPast_Ordering(t *testing.T) {
	events := []Event{
		{ID: "1", Name: "B", Date: d("2025-01-01")},
		{ID: "2", Name: "A", Date: d("2025-01-01")},
		{ID: "3", Name: "C", Date: d("2025-02-01")},
	}
	got := Past(events, d("2025-03-01"))
	if !equalNames(got, []string{"C", "A", "B"}) {
		t.Errorf("expected [C A B], got %v", names(got))
	}
}

// TestAll_OrdersByDateThenTime tests that the full listing tie-breaks by
// time-of-day, not name.
func TestAll_OrdersByDateThenTime(t *testing.T) {
	events := []Event{
		{ID: "1", Name: "A", Date: d("2025-01-01"), Time: "15:00"},
		{ID: "2", Name: "Z", Date: d("2025-01-01"), Time: "09:30"},
		{ID: "3", Name: "M", Date: d("2024-12-01"), Time: "18:00"},
	}
	got := All(events)
	if !equalNames(got, []string{"M", "Z", "A"}) {
		t.Errorf("expected [M Z A], got %v", names(got))
	}
}

// TestFilterByName tests case-insensitive substring search.
func TestFilterByName(t *testing.T) {
	events := []Event{
		{ID: "1", Name: "Alpha", Date: d("2025-01-01")},
		{ID: "2", Name: "Beta", Date: d("2025-01-02")},
		{ID: "3", Name: "Alphabet", Date: d("2025-01-03")},
	}

	got := FilterByName(events, "alpha")
	if !equalNames(got, []string{"Alpha", "Alphabet"}) {
		t.Errorf("expected [Alpha Alphabet], got %v", names(got))
	}

	got = FilterByName(events, "ALPHA")
	if len(got) != 2 {
		t.Errorf("search should be case-insensitive, got %v", names(got))
	}

	// Empty query falls back to the full sorted listing.
	got = FilterByName(events, "")
	if len(got) != 3 {
		t.Errorf("empty query should return all events, got %v", names(got))
	}
}

// TestSearchComposition tests that the partitions are intersected with the
// search results rather than recomputed independently.
func TestSearchComposition(t *testing.T) {
	today := d("2025-06-01")
	events := []Event{
		{ID: "1", Name: "Alpha", Date: d("2025-07-01")},
		{ID: "2", Name: "Beta", Date: d("2025-01-01")},
		{ID: "3", Name: "Alphabet", Date: d("2025-08-01")},
	}

	matched := FilterByName(events, "alpha")
	up := Intersect(Upcoming(events, today), matched)
	past := Intersect(Past(events, today), matched)

	if !equalNames(up, []string{"Alpha", "Alphabet"}) {
		t.Errorf("expected upcoming [Alpha Alphabet], got %v", names(up))
	}
	if len(past) != 0 {
		t.Errorf("expected no past matches, got %v", names(past))
	}
}

// TestUpcomingForVenue tests the venue-scoped upcoming listing.
func TestUpcomingForVenue(t *testing.T) {
	today := d("2025-06-01")
	events := []Event{
		{ID: "1", Name: "A", Date: d("2025-06-01"), VenueID: "v1"},
		{ID: "2", Name: "B", Date: d("2025-07-01"), VenueID: "v2"},
		{ID: "3", Name: "C", Date: d("2025-05-01"), VenueID: "v1"},
		{ID: "4", Name: "D", Date: d("2025-08-01"), VenueID: "v1"},
	}

	got := UpcomingForVenue(events, "v1", today)
	if !equalNames(got, []string{"A", "D"}) {
		t.Errorf("expected [A D], got %v", names(got))
	}

	if got := UpcomingForVenue(events, "missing", today); len(got) != 0 {
		t.Errorf("unknown venue should yield empty result, got %v", names(got))
	}
}

// TestNextForVenue tests the strict-future "next N" rule.
func TestNextForVenue(t *testing.T) {
	today := d("2025-06-01")
	events := []Event{
		{ID: "1", Name: "Today", Date: d("2025-06-01"), VenueID: "v1"},
		{ID: "2", Name: "E1", Date: d("2025-06-02"), VenueID: "v1"},
		{ID: "3", Name: "E2", Date: d("2025-06-03"), VenueID: "v1"},
		{ID: "4", Name: "E3", Date: d("2025-06-04"), VenueID: "v1"},
		{ID: "5", Name: "E4", Date: d("2025-06-05"), VenueID: "v1"},
	}

	got := NextForVenue(events, "v1", today, 3)
	if !equalNames(got, []string{"E1", "E2", "E3"}) {
		t.Errorf("expected the 3 earliest strictly-future events, got %v", names(got))
	}
	for _, e := range got {
		if e.Name == "Today" {
			t.Error("event dated exactly today must be excluded from next-N")
		}
	}
}

// TestNext_FewerThanN tests that Next returns what exists when fewer than
// n future events are present.
func TestNext_FewerThanN(t *testing.T) {
	today := d("2025-06-01")
	events := []Event{
		{ID: "1", Name: "A", Date: d("2025-06-10")},
	}
	if got := Next(events, today, 3); len(got) != 1 {
		t.Errorf("expected 1 event, got %d", len(got))
	}
	if got := Next(nil, today, 3); len(got) != 0 {
		t.Errorf("expected empty result for empty input, got %d", len(got))
	}
}
