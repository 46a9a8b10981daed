package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	emailPkg "showspace/internal/adapters/email"
	"showspace/internal/adapters/geocode"
	web "showspace/internal/adapters/http"
	"showspace/internal/adapters/social"
	"showspace/internal/adapters/storage"
	eventStore "showspace/internal/adapters/storage/event"
	venueStore "showspace/internal/adapters/storage/venue"
	"showspace/internal/application/orchestrators"

	"github.com/google/uuid"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Initialize database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("SHOWSPACE_DB", "showspace.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	log.Println("Database initialized successfully!")

	stores := &web.Stores{
		VenueStore: venueStore.NewSQLiteStore(db),
		EventStore: eventStore.NewSQLiteStore(db),
	}

	// Configure the geocoding provider
	var geocoder geocode.Geocoder = geocode.NewNoopGeocoder()
	if token := os.Getenv("SHOWSPACE_MAPBOX_TOKEN"); token != "" {
		geocoder = geocode.NewMapboxGeocoder(token)
		log.Println("Geocoder configured (Mapbox)")
	} else {
		log.Println("Geocoder configured (noop; set SHOWSPACE_MAPBOX_TOKEN for address resolution)")
	}
	web.SetGeocoder(geocoder)

	// Configure the social posting provider
	mastodonServer := os.Getenv("SHOWSPACE_MASTODON_SERVER")
	mastodonToken := os.Getenv("SHOWSPACE_MASTODON_TOKEN")
	if mastodonServer != "" && mastodonToken != "" {
		web.SetPoster(social.NewMastodonPoster(mastodonServer, mastodonToken))
		log.Println("Social poster configured (Mastodon)")
	} else {
		web.SetPoster(social.NewNoopPoster())
		log.Println("Social poster configured (noop; set SHOWSPACE_MASTODON_SERVER and SHOWSPACE_MASTODON_TOKEN to share events)")
	}

	// Configure the email sender
	resendKey := os.Getenv("SHOWSPACE_RESEND_KEY")
	emailFrom := envOrDefault("SHOWSPACE_RESEND_FROM", "ShowSpace <noreply@showspace.example>")
	announceTo := splitList(os.Getenv("SHOWSPACE_ANNOUNCE_TO"))
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), announceTo)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), announceTo)
		if os.Getenv("SHOWSPACE_ENV") == "production" {
			log.Println("WARNING: SHOWSPACE_RESEND_KEY is not set; announcement emails are DISABLED in production")
		} else {
			log.Println("Email sender configured (noop; set SHOWSPACE_RESEND_KEY for real delivery)")
		}
	}

	// Seed starter venues and events into an empty database
	seedDeps := orchestrators.SeedDeps{
		VenueStore: stores.VenueStore,
		EventStore: stores.EventStore,
		Geocoder:   geocoder,
		GenerateID: func() string { return uuid.New().String() },
	}
	if err := orchestrators.ExecuteSeedInitialData(context.Background(), seedDeps); err != nil {
		log.Fatalf("failed to seed initial data: %v", err)
	}

	// Create HTTP handler with middleware
	mux := web.NewMux("static", stores)

	// Start server
	addr := envOrDefault("SHOWSPACE_ADDR", ":8080")
	log.Printf("ShowSpace %s starting on %s (env=%s)", version, addr, envOrDefault("SHOWSPACE_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
