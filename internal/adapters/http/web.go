package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"showspace/internal/adapters/email"
	"showspace/internal/adapters/geocode"
	"showspace/internal/adapters/http/middleware"
	"showspace/internal/adapters/social"
	eventStore "showspace/internal/adapters/storage/event"
	venueStore "showspace/internal/adapters/storage/venue"
)

// Stores holds all storage dependencies.
type Stores struct {
	VenueStore venueStore.Store
	EventStore eventStore.Store
}

// loadCSRFKey reads the CSRF secret from SHOWSPACE_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("SHOWSPACE_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("SHOWSPACE_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("SHOWSPACE_ENV") == "production" {
		log.Fatal("SHOWSPACE_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (tokens won't survive restart). Set SHOWSPACE_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global external providers (set by the Set* functions, noop by default)
var (
	geocoder    geocode.Geocoder = geocode.NewNoopGeocoder()
	poster      social.Poster    = social.NewNoopPoster()
	emailSender email.Sender
)

// emailAnnounceTo holds the recipients for event announcement copies.
var emailAnnounceTo []string

// SetGeocoder sets the address resolution provider.
func SetGeocoder(g geocode.Geocoder) {
	geocoder = g
}

// SetPoster sets the social posting provider.
func SetPoster(p social.Poster) {
	poster = p
}

// SetEmailSender sets the email provider and the announcement recipients.
func SetEmailSender(sender email.Sender, announceTo []string) {
	emailSender = sender
	emailAnnounceTo = announceTo
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores) http.Handler {
	stores = s

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.RateLimit(limiter),
	)
}
