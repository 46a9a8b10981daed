package web

import (
	"net/http"
	"strings"
	"time"

	"showspace/internal/application/listutil"
	"showspace/internal/application/orchestrators"
	"showspace/internal/application/projections"
)

const dateLayout = "2006-01-02"

// parseEventForm extracts the shared event fields from a submitted form.
func parseEventForm(r *http.Request) (name, description, timeOfDay, venueID string, date time.Time, err error) {
	if err = r.ParseForm(); err != nil {
		return
	}
	name = strings.TrimSpace(r.FormValue("name"))
	description = strings.TrimSpace(r.FormValue("description"))
	timeOfDay = strings.TrimSpace(r.FormValue("time"))
	venueID = strings.TrimSpace(r.FormValue("venueId"))
	date, err = time.Parse(dateLayout, r.FormValue("date"))
	return
}

// venueOptions loads the venues for the event form's select input.
func venueOptions(r *http.Request) ([]projections.EventListItem, error) {
	venues, err := stores.VenueStore.List(r.Context())
	if err != nil {
		return nil, err
	}
	opts := make([]projections.EventListItem, 0, len(venues))
	for _, v := range venues {
		opts = append(opts, projections.EventListItem{VenueID: v.ID, VenueName: v.Name})
	}
	return opts, nil
}

// handleEvents handles GET (list) and POST (create) for /events.
func handleEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		search := listutil.ParseSearch(r.URL.Query())

		result, err := projections.QueryGetEventList(ctx,
			projections.GetEventListQuery{Search: search, Today: timeNow()},
			projections.GetEventListDeps{
				EventStore: stores.EventStore,
				VenueStore: stores.VenueStore,
				Feed:       poster,
				FeedTag:    orchestrators.ShareTag,
			})
		if err != nil {
			internalError(w, err)
			return
		}

		renderTemplate(w, r, "event_list.html", map[string]any{
			"Upcoming": result.Upcoming,
			"Past":     result.Past,
			"Search":   result.Search,
			"Feed":     result.Feed,
		})

	case "POST":
		name, description, timeOfDay, venueID, date, err := parseEventForm(r)
		if err != nil {
			http.Error(w, "malformed form", http.StatusBadRequest)
			return
		}
		input := orchestrators.CreateEventInput{
			Name:        name,
			Description: description,
			Date:        date,
			Time:        timeOfDay,
			VenueID:     venueID,
		}

		e, err := orchestrators.ExecuteCreateEvent(ctx, input, orchestrators.CreateEventDeps{
			EventStore: stores.EventStore,
			VenueStore: stores.VenueStore,
			GenerateID: generateID,
			Now:        timeNow,
		})
		if err != nil {
			opts, optErr := venueOptions(r)
			if optErr != nil {
				internalError(w, optErr)
				return
			}
			renderTemplate(w, r, "event_form.html", map[string]any{
				"Mode":   "create",
				"Error":  err.Error(),
				"Form":   input,
				"Venues": opts,
			})
			return
		}

		http.Redirect(w, r, "/events/"+e.ID, http.StatusSeeOther)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleEventNew handles GET /events/new.
func handleEventNew(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	opts, err := venueOptions(r)
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "event_form.html", map[string]any{
		"Mode":   "create",
		"Form":   orchestrators.CreateEventInput{},
		"Venues": opts,
	})
}

// handleEventDetails handles GET /events/{id}.
func handleEventDetails(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	result, err := projections.QueryGetEventDetails(r.Context(),
		projections.GetEventDetailsQuery{EventID: r.PathValue("id")},
		projections.GetEventDetailsDeps{EventStore: stores.EventStore, VenueStore: stores.VenueStore})
	if err != nil {
		if isNotFound(err) {
			w.WriteHeader(http.StatusNotFound)
			renderTemplate(w, r, "event_not_found.html", map[string]any{"EventID": r.PathValue("id")})
			return
		}
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "event_details.html", map[string]any{
		"Event":  result.Event,
		"Venue":  result.Venue,
		"Shared": r.URL.Query().Get("shared") == "1",
	})
}

// handleEventEdit handles GET (form) and POST (save) for /events/{id}/edit.
func handleEventEdit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	switch r.Method {
	case "GET":
		e, err := stores.EventStore.GetByID(ctx, id)
		if err != nil {
			if isNotFound(err) {
				w.WriteHeader(http.StatusNotFound)
				renderTemplate(w, r, "event_not_found.html", map[string]any{"EventID": id})
				return
			}
			internalError(w, err)
			return
		}
		opts, err := venueOptions(r)
		if err != nil {
			internalError(w, err)
			return
		}
		renderTemplate(w, r, "event_form.html", map[string]any{
			"Mode":    "edit",
			"EventID": e.ID,
			"Form": orchestrators.EditEventInput{
				EventID:     e.ID,
				Name:        e.Name,
				Description: e.Description,
				Date:        e.Date,
				Time:        e.Time,
				VenueID:     e.VenueID,
			},
			"Venues": opts,
		})

	case "POST":
		name, description, timeOfDay, venueID, date, err := parseEventForm(r)
		if err != nil {
			http.Error(w, "malformed form", http.StatusBadRequest)
			return
		}
		input := orchestrators.EditEventInput{
			EventID:     id,
			Name:        name,
			Description: description,
			Date:        date,
			Time:        timeOfDay,
			VenueID:     venueID,
		}

		e, err := orchestrators.ExecuteEditEvent(ctx, input, orchestrators.EditEventDeps{
			EventStore: stores.EventStore,
			VenueStore: stores.VenueStore,
			Now:        timeNow,
		})
		if err != nil {
			if isNotFound(err) {
				w.WriteHeader(http.StatusNotFound)
				renderTemplate(w, r, "event_not_found.html", map[string]any{"EventID": id})
				return
			}
			opts, optErr := venueOptions(r)
			if optErr != nil {
				internalError(w, optErr)
				return
			}
			renderTemplate(w, r, "event_form.html", map[string]any{
				"Mode":    "edit",
				"EventID": id,
				"Error":   err.Error(),
				"Form":    input,
				"Venues":  opts,
			})
			return
		}

		http.Redirect(w, r, "/events/"+e.ID, http.StatusSeeOther)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleEventDelete handles POST /events/{id}/delete.
func handleEventDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	err := orchestrators.ExecuteDeleteEvent(r.Context(),
		orchestrators.DeleteEventInput{EventID: r.PathValue("id")},
		orchestrators.DeleteEventDeps{EventStore: stores.EventStore})
	switch {
	case err == nil:
		http.Redirect(w, r, "/events", http.StatusSeeOther)
	case isNotFound(err):
		w.WriteHeader(http.StatusNotFound)
		renderTemplate(w, r, "event_not_found.html", map[string]any{"EventID": r.PathValue("id")})
	default:
		internalError(w, err)
	}
}

// handleEventShare handles POST /events/{id}/share.
func handleEventShare(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}
	id := r.PathValue("id")

	_, err := orchestrators.ExecuteShareEvent(r.Context(),
		orchestrators.ShareEventInput{
			EventID:    id,
			Content:    r.FormValue("content"),
			AnnounceTo: emailAnnounceTo,
		},
		orchestrators.ShareEventDeps{
			EventStore:  stores.EventStore,
			Poster:      poster,
			EmailSender: emailSender,
		})
	switch {
	case err == nil:
		http.Redirect(w, r, "/events/"+id+"?shared=1", http.StatusSeeOther)
	case isNotFound(err):
		w.WriteHeader(http.StatusNotFound)
		renderTemplate(w, r, "event_not_found.html", map[string]any{"EventID": id})
	default:
		result, detailErr := projections.QueryGetEventDetails(r.Context(),
			projections.GetEventDetailsQuery{EventID: id},
			projections.GetEventDetailsDeps{EventStore: stores.EventStore, VenueStore: stores.VenueStore})
		if detailErr != nil {
			internalError(w, detailErr)
			return
		}
		renderTemplate(w, r, "event_details.html", map[string]any{
			"Event":      result.Event,
			"Venue":      result.Venue,
			"ShareError": err.Error(),
		})
	}
}
