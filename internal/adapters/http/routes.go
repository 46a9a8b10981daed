package web

import "net/http"

// registerRoutes maps URL paths to handlers. Method dispatch happens inside
// each handler; a path collects every verb its resource supports.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/{$}", handleHome)

	mux.HandleFunc("/venues", handleVenues)
	mux.HandleFunc("/venues/new", handleVenueNew)
	mux.HandleFunc("/venues/{id}", handleVenueDetails)
	mux.HandleFunc("/venues/{id}/edit", handleVenueEdit)
	mux.HandleFunc("/venues/{id}/delete", handleVenueDelete)

	mux.HandleFunc("/events", handleEvents)
	mux.HandleFunc("/events/new", handleEventNew)
	mux.HandleFunc("/events/{id}", handleEventDetails)
	mux.HandleFunc("/events/{id}/edit", handleEventEdit)
	mux.HandleFunc("/events/{id}/delete", handleEventDelete)
	mux.HandleFunc("/events/{id}/share", handleEventShare)

	mux.HandleFunc("/api/venues", handleAPIVenues)
	mux.HandleFunc("/api/venues/{id}", handleAPIVenueByID)
	mux.HandleFunc("/api/venues/{id}/next3events", handleAPIVenueNextEvents)
	mux.HandleFunc("/api/events", handleAPIEvents)
	mux.HandleFunc("/api/events/{id}", handleAPIEventByID)
	mux.HandleFunc("/api/next3events", handleAPINextEvents)

	mux.HandleFunc("/health", handleHealth)
}
