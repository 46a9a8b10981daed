package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"showspace/internal/application/listutil"
	"showspace/internal/application/orchestrators"
	"showspace/internal/application/projections"
	venueDomain "showspace/internal/domain/venue"
)

// handleVenues handles GET (list) and POST (create) for /venues.
func handleVenues(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		search := listutil.ParseSearch(r.URL.Query())
		page, perPage := listutil.ParsePage(r.URL.Query())

		result, err := projections.QueryGetVenueList(ctx,
			projections.GetVenueListQuery{Search: search},
			projections.GetVenueListDeps{VenueStore: stores.VenueStore})
		if err != nil {
			internalError(w, err)
			return
		}

		pageInfo := listutil.Paginate(page, perPage, len(result.Venues))
		renderTemplate(w, r, "venue_list.html", map[string]any{
			"Venues":   listutil.Window(result.Venues, pageInfo),
			"PageInfo": pageInfo,
			"Search":   search,
			"Deleted":  r.URL.Query().Get("deleted") == "1",
			"Blocked":  r.URL.Query().Get("blocked") == "1",
		})

	case "POST":
		if err := r.ParseForm(); err != nil {
			http.Error(w, "malformed form", http.StatusBadRequest)
			return
		}
		capacity, _ := strconv.Atoi(strings.TrimSpace(r.FormValue("capacity")))
		input := orchestrators.CreateVenueInput{
			Name:     strings.TrimSpace(r.FormValue("name")),
			RoadName: strings.TrimSpace(r.FormValue("roadName")),
			Postcode: strings.TrimSpace(r.FormValue("postcode")),
			Capacity: capacity,
		}

		v, err := orchestrators.ExecuteCreateVenue(ctx, input, orchestrators.CreateVenueDeps{
			VenueStore: stores.VenueStore,
			Geocoder:   geocoder,
			GenerateID: generateID,
		})
		if err != nil {
			renderTemplate(w, r, "venue_form.html", map[string]any{
				"Mode":  "create",
				"Error": err.Error(),
				"Form":  input,
			})
			return
		}

		http.Redirect(w, r, "/venues/"+v.ID, http.StatusSeeOther)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleVenueNew handles GET /venues/new.
func handleVenueNew(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	renderTemplate(w, r, "venue_form.html", map[string]any{
		"Mode": "create",
		"Form": orchestrators.CreateVenueInput{},
	})
}

// handleVenueDetails handles GET /venues/{id}.
func handleVenueDetails(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	result, err := projections.QueryGetVenueDetails(r.Context(),
		projections.GetVenueDetailsQuery{VenueID: r.PathValue("id"), Today: timeNow()},
		projections.GetVenueDetailsDeps{VenueStore: stores.VenueStore, EventStore: stores.EventStore})
	if err != nil {
		if isNotFound(err) {
			w.WriteHeader(http.StatusNotFound)
			renderTemplate(w, r, "venue_not_found.html", map[string]any{"VenueID": r.PathValue("id")})
			return
		}
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "venue_details.html", map[string]any{
		"Venue":          result.Venue,
		"UpcomingEvents": result.UpcomingEvents,
		"HasCoordinates": result.HasCoordinates,
	})
}

// handleVenueEdit handles GET (form) and POST (save) for /venues/{id}/edit.
func handleVenueEdit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	switch r.Method {
	case "GET":
		v, err := stores.VenueStore.GetByID(ctx, id)
		if err != nil {
			if isNotFound(err) {
				w.WriteHeader(http.StatusNotFound)
				renderTemplate(w, r, "venue_not_found.html", map[string]any{"VenueID": id})
				return
			}
			internalError(w, err)
			return
		}
		renderTemplate(w, r, "venue_form.html", map[string]any{
			"Mode":    "edit",
			"VenueID": v.ID,
			"Form": orchestrators.EditVenueInput{
				VenueID:  v.ID,
				Name:     v.Name,
				RoadName: v.RoadName,
				Postcode: v.Postcode,
				Capacity: v.Capacity,
			},
		})

	case "POST":
		if err := r.ParseForm(); err != nil {
			http.Error(w, "malformed form", http.StatusBadRequest)
			return
		}
		capacity, _ := strconv.Atoi(strings.TrimSpace(r.FormValue("capacity")))
		input := orchestrators.EditVenueInput{
			VenueID:  id,
			Name:     strings.TrimSpace(r.FormValue("name")),
			RoadName: strings.TrimSpace(r.FormValue("roadName")),
			Postcode: strings.TrimSpace(r.FormValue("postcode")),
			Capacity: capacity,
		}

		v, err := orchestrators.ExecuteEditVenue(ctx, input, orchestrators.EditVenueDeps{
			VenueStore: stores.VenueStore,
			Geocoder:   geocoder,
		})
		if err != nil {
			if isNotFound(err) {
				w.WriteHeader(http.StatusNotFound)
				renderTemplate(w, r, "venue_not_found.html", map[string]any{"VenueID": id})
				return
			}
			renderTemplate(w, r, "venue_form.html", map[string]any{
				"Mode":    "edit",
				"VenueID": id,
				"Error":   err.Error(),
				"Form":    input,
			})
			return
		}

		http.Redirect(w, r, "/venues/"+v.ID, http.StatusSeeOther)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleVenueDelete handles POST /venues/{id}/delete. A venue still hosting
// events, past or future, is refused with a message rather than removed.
func handleVenueDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	err := orchestrators.ExecuteDeleteVenue(r.Context(),
		orchestrators.DeleteVenueInput{VenueID: r.PathValue("id")},
		orchestrators.DeleteVenueDeps{VenueStore: stores.VenueStore, EventStore: stores.EventStore})
	switch {
	case err == nil:
		http.Redirect(w, r, "/venues?deleted=1", http.StatusSeeOther)
	case errors.Is(err, venueDomain.ErrHasEvents):
		http.Redirect(w, r, "/venues?blocked=1", http.StatusSeeOther)
	case isNotFound(err):
		w.WriteHeader(http.StatusNotFound)
		renderTemplate(w, r, "venue_not_found.html", map[string]any{"VenueID": r.PathValue("id")})
	default:
		internalError(w, err)
	}
}
