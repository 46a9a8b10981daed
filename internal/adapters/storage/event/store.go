package event

import (
	"context"

	domain "showspace/internal/domain/event"
)

// Store persists Event state.
type Store interface {
	Save(ctx context.Context, e domain.Event) error
	GetByID(ctx context.Context, id string) (domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	ListByVenueID(ctx context.Context, venueID string) ([]domain.Event, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	ExistsByVenueID(ctx context.Context, venueID string) (bool, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}
