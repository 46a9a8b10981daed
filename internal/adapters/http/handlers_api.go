package web

import (
	"errors"
	"net/http"

	"showspace/internal/application/orchestrators"
	"showspace/internal/application/projections"
	eventDomain "showspace/internal/domain/event"
	venueDomain "showspace/internal/domain/venue"
)

// apiLinks is the _links object attached to API resources.
type apiLinks map[string]map[string]string

func selfLink(href string) apiLinks {
	return apiLinks{"self": {"href": href}}
}

func notFoundJSON(w http.ResponseWriter, resource, id string) {
	writeJSON(w, http.StatusNotFound, map[string]string{
		"error": resource + " not found",
		"id":    id,
	})
}

// apiVenue is the JSON representation of a venue.
type apiVenue struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	RoadName  string   `json:"roadName"`
	Postcode  string   `json:"postcode"`
	Capacity  int      `json:"capacity"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Links     apiLinks `json:"_links"`
}

func toAPIVenue(v venueDomain.Venue) apiVenue {
	return apiVenue{
		ID:        v.ID,
		Name:      v.Name,
		RoadName:  v.RoadName,
		Postcode:  v.Postcode,
		Capacity:  v.Capacity,
		Latitude:  v.Latitude,
		Longitude: v.Longitude,
		Links:     selfLink("/api/venues/" + v.ID),
	}
}

// apiEvent is the JSON representation of an event.
type apiEvent struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Date        string   `json:"date"`
	Time        string   `json:"time,omitempty"`
	VenueID     string   `json:"venueId"`
	VenueName   string   `json:"venueName,omitempty"`
	Links       apiLinks `json:"_links"`
}

func toAPIEvent(e eventDomain.Event, venueName string) apiEvent {
	links := selfLink("/api/events/" + e.ID)
	links["venue"] = map[string]string{"href": "/api/venues/" + e.VenueID}
	return apiEvent{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Date:        e.Date.Format(dateLayout),
		Time:        e.Time,
		VenueID:     e.VenueID,
		VenueName:   venueName,
		Links:       links,
	}
}

func itemToAPIEvent(item projections.EventListItem) apiEvent {
	return toAPIEvent(eventDomain.Event{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Date:        item.Date,
		Time:        item.Time,
		VenueID:     item.VenueID,
	}, item.VenueName)
}

// handleAPIVenues handles GET (list) and POST (create) for /api/venues.
func handleAPIVenues(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		venues, err := stores.VenueStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		out := make([]apiVenue, 0, len(venues))
		for _, v := range venues {
			out = append(out, toAPIVenue(v))
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"venues": out,
			"_links": selfLink("/api/venues"),
		})

	case "POST":
		var body struct {
			Name     string `json:"name"`
			RoadName string `json:"roadName"`
			Postcode string `json:"postcode"`
			Capacity int    `json:"capacity"`
		}
		if err := strictDecode(r, &body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
			return
		}

		v, err := orchestrators.ExecuteCreateVenue(ctx, orchestrators.CreateVenueInput{
			Name:     body.Name,
			RoadName: body.RoadName,
			Postcode: body.Postcode,
			Capacity: body.Capacity,
		}, orchestrators.CreateVenueDeps{
			VenueStore: stores.VenueStore,
			Geocoder:   geocoder,
			GenerateID: generateID,
		})
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusCreated, toAPIVenue(v))

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleAPIVenueByID handles GET and DELETE for /api/venues/{id}. DELETE is
// subject to the same associated-events guard as the web form.
func handleAPIVenueByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	switch r.Method {
	case "GET":
		v, err := stores.VenueStore.GetByID(ctx, id)
		if err != nil {
			if isNotFound(err) {
				notFoundJSON(w, "venue", id)
				return
			}
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAPIVenue(v))

	case "DELETE":
		err := orchestrators.ExecuteDeleteVenue(ctx,
			orchestrators.DeleteVenueInput{VenueID: id},
			orchestrators.DeleteVenueDeps{VenueStore: stores.VenueStore, EventStore: stores.EventStore})
		switch {
		case err == nil:
			w.WriteHeader(http.StatusNoContent)
		case errors.Is(err, venueDomain.ErrHasEvents):
			writeJSON(w, http.StatusConflict, map[string]string{
				"error": "venue has associated events",
				"id":    id,
			})
		case isNotFound(err):
			notFoundJSON(w, "venue", id)
		default:
			internalError(w, err)
		}

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleAPIEvents handles GET /api/events. The optional search parameter
// filters by name; results come back in listing order (date, then time).
func handleAPIEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	result, err := projections.QueryGetEventList(r.Context(),
		projections.GetEventListQuery{
			Search: r.URL.Query().Get("search"),
			Today:  timeNow(),
		},
		projections.GetEventListDeps{EventStore: stores.EventStore, VenueStore: stores.VenueStore})
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]apiEvent, 0, len(result.All))
	for _, item := range result.All {
		out = append(out, itemToAPIEvent(item))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"events": out,
		"_links": selfLink("/api/events"),
	})
}

// handleAPIEventByID handles GET /api/events/{id}.
func handleAPIEventByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := r.PathValue("id")

	result, err := projections.QueryGetEventDetails(r.Context(),
		projections.GetEventDetailsQuery{EventID: id},
		projections.GetEventDetailsDeps{EventStore: stores.EventStore, VenueStore: stores.VenueStore})
	if err != nil {
		if isNotFound(err) {
			notFoundJSON(w, "event", id)
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAPIEvent(result.Event, result.Venue.Name))
}

// handleAPINextEvents handles GET /api/next3events: the next three events
// dated strictly after today, across all venues.
func handleAPINextEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	respondNextEvents(w, r, "", "/api/next3events")
}

// handleAPIVenueNextEvents handles GET /api/venues/{id}/next3events.
func handleAPIVenueNextEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := r.PathValue("id")

	exists, err := stores.VenueStore.ExistsByID(r.Context(), id)
	if err != nil {
		internalError(w, err)
		return
	}
	if !exists {
		notFoundJSON(w, "venue", id)
		return
	}
	respondNextEvents(w, r, id, "/api/venues/"+id+"/next3events")
}

func respondNextEvents(w http.ResponseWriter, r *http.Request, venueID, self string) {
	result, err := projections.QueryGetNextEvents(r.Context(),
		projections.GetNextEventsQuery{
			Today:   timeNow(),
			Limit:   3,
			VenueID: venueID,
		},
		projections.GetNextEventsDeps{EventStore: stores.EventStore, VenueStore: stores.VenueStore})
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]apiEvent, 0, len(result.Events))
	for _, item := range result.Events {
		out = append(out, itemToAPIEvent(item))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"events": out,
		"_links": selfLink(self),
	})
}
