package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"showspace/internal/adapters/email"
	"showspace/internal/adapters/social"
	"showspace/internal/domain/event"
)

// MaxShareContentLength caps user-supplied share text. The hashtags appended
// on top are allowed to push the final post past this limit.
const MaxShareContentLength = 500

// ShareTag is the hashtag appended to every shared event post.
const ShareTag = "showspace"

// EventStoreForOrchestrator defines the store interface needed by event
// orchestrators.
type EventStoreForOrchestrator interface {
	Save(ctx context.Context, e event.Event) error
	GetByID(ctx context.Context, id string) (event.Event, error)
	Delete(ctx context.Context, id string) error
}

// VenueExistenceStore checks the referential link at event-save time.
type VenueExistenceStore interface {
	ExistsByID(ctx context.Context, id string) (bool, error)
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// requireFutureDate enforces the creation-time rule that an event's date is
// strictly in the future.
func requireFutureDate(date, today time.Time) error {
	if date.Format("2006-01-02") <= today.Format("2006-01-02") {
		return errors.New("event date must be in the future")
	}
	return nil
}

// --- Create Event ---

// CreateEventInput carries input for the create event orchestrator.
type CreateEventInput struct {
	Name        string
	Description string
	Date        time.Time
	Time        string
	VenueID     string
}

// CreateEventDeps holds dependencies for CreateEvent.
type CreateEventDeps struct {
	EventStore EventStoreForOrchestrator
	VenueStore VenueExistenceStore
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteCreateEvent creates a new event.
// PRE: input fields satisfy event validation; Date is strictly after today;
// VenueID references an existing venue
// POST: event persisted with generated ID
func ExecuteCreateEvent(ctx context.Context, input CreateEventInput, deps CreateEventDeps) (event.Event, error) {
	e := event.Event{
		ID:          deps.GenerateID(),
		Name:        input.Name,
		Description: input.Description,
		Date:        input.Date,
		Time:        input.Time,
		VenueID:     input.VenueID,
	}

	if err := e.Validate(); err != nil {
		return event.Event{}, err
	}
	if err := requireFutureDate(e.Date, deps.Now()); err != nil {
		return event.Event{}, err
	}

	exists, err := deps.VenueStore.ExistsByID(ctx, e.VenueID)
	if err != nil {
		return event.Event{}, err
	}
	if !exists {
		return event.Event{}, errors.New("event venue does not exist")
	}

	if err := deps.EventStore.Save(ctx, e); err != nil {
		return event.Event{}, err
	}

	slog.Info("event_event", "event", "event_created", "event_id", e.ID, "name", e.Name, "venue_id", e.VenueID)
	return e, nil
}

// --- Edit Event ---

// EditEventInput carries input for the edit event orchestrator. Fields
// replace the stored values wholesale.
type EditEventInput struct {
	EventID     string
	Name        string
	Description string
	Date        time.Time
	Time        string
	VenueID     string
}

// EditEventDeps holds dependencies for EditEvent.
type EditEventDeps struct {
	EventStore EventStoreForOrchestrator
	VenueStore VenueExistenceStore
	Now        func() time.Time
}

// ExecuteEditEvent updates an existing event.
// PRE: EventID must reference an existing event; the new VenueID must
// reference an existing venue; the new date is strictly in the future
// POST: event fields replaced and persisted
func ExecuteEditEvent(ctx context.Context, input EditEventInput, deps EditEventDeps) (event.Event, error) {
	if input.EventID == "" {
		return event.Event{}, errors.New("event ID is required")
	}

	e, err := deps.EventStore.GetByID(ctx, input.EventID)
	if err != nil {
		return event.Event{}, err
	}

	e.Name = input.Name
	e.Description = input.Description
	e.Date = input.Date
	e.Time = input.Time
	e.VenueID = input.VenueID

	if err := e.Validate(); err != nil {
		return event.Event{}, err
	}
	if err := requireFutureDate(e.Date, deps.Now()); err != nil {
		return event.Event{}, err
	}

	exists, err := deps.VenueStore.ExistsByID(ctx, e.VenueID)
	if err != nil {
		return event.Event{}, err
	}
	if !exists {
		return event.Event{}, errors.New("event venue does not exist")
	}

	if err := deps.EventStore.Save(ctx, e); err != nil {
		return event.Event{}, err
	}

	slog.Info("event_event", "event", "event_edited", "event_id", e.ID, "name", e.Name)
	return e, nil
}

// --- Delete Event ---

// DeleteEventInput carries input for the delete event orchestrator.
type DeleteEventInput struct {
	EventID string
}

// DeleteEventDeps holds dependencies for DeleteEvent.
type DeleteEventDeps struct {
	EventStore EventStoreForOrchestrator
}

// ExecuteDeleteEvent deletes an event. Unlike venues, event deletion is
// unconditional for an existing ID.
// PRE: EventID must reference an existing event
// POST: event removed
func ExecuteDeleteEvent(ctx context.Context, input DeleteEventInput, deps DeleteEventDeps) error {
	if input.EventID == "" {
		return errors.New("event ID is required")
	}

	if _, err := deps.EventStore.GetByID(ctx, input.EventID); err != nil {
		return err
	}

	if err := deps.EventStore.Delete(ctx, input.EventID); err != nil {
		return err
	}

	slog.Info("event_event", "event", "event_deleted", "event_id", input.EventID)
	return nil
}

// --- Share Event ---

// ShareEventInput carries input for the share event orchestrator.
type ShareEventInput struct {
	EventID    string
	Content    string
	AnnounceTo []string // optional email recipients for the announcement copy
}

// ShareEventDeps holds dependencies for ShareEvent.
type ShareEventDeps struct {
	EventStore  EventStoreForOrchestrator
	Poster      social.Poster
	EmailSender email.Sender // optional; nil disables the email copy
}

// ShareText builds the posted status: the user's content followed by the
// event-name hashtag (whitespace runs collapsed to underscores) and the
// fixed site tag.
func ShareText(content, eventName string) string {
	nameTag := whitespaceRun.ReplaceAllString(strings.TrimSpace(eventName), "_")
	return content + " #" + nameTag + " #" + ShareTag
}

// ExecuteShareEvent publishes a post about the event and, when configured,
// sends the same announcement by email. Email failures are swallowed; a
// posting failure is returned for the handler to present, but leaves no
// state to roll back.
// PRE: EventID references an existing event; Content is non-blank and at
// most MaxShareContentLength characters
// POST: post published (and announcement email queued) on success
func ExecuteShareEvent(ctx context.Context, input ShareEventInput, deps ShareEventDeps) (social.Post, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return social.Post{}, errors.New("post content cannot be empty")
	}
	if len(input.Content) > MaxShareContentLength {
		return social.Post{}, errors.New("post content must be no more than 500 characters")
	}

	e, err := deps.EventStore.GetByID(ctx, input.EventID)
	if err != nil {
		return social.Post{}, err
	}

	text := ShareText(input.Content, e.Name)
	post, err := deps.Poster.CreatePost(ctx, text)
	if err != nil {
		slog.Warn("event_share_failed", "event_id", e.ID, "error", err)
		return social.Post{}, fmt.Errorf("share event: %w", err)
	}

	if deps.EmailSender != nil && len(input.AnnounceTo) > 0 {
		_, mailErr := deps.EmailSender.Send(ctx, email.SendRequest{
			To:      input.AnnounceTo,
			Subject: "ShowSpace: " + e.Name,
			HTML:    "<p>" + input.Content + "</p>",
		})
		if mailErr != nil {
			// The post already went out; the email copy is best effort.
			slog.Warn("event_announcement_email_failed", "event_id", e.ID, "error", mailErr)
		}
	}

	slog.Info("event_event", "event", "event_shared", "event_id", e.ID, "post_id", post.ID)
	return post, nil
}
