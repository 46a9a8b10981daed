package venue

import (
	"context"

	domain "showspace/internal/domain/venue"
)

// Store persists Venue state.
type Store interface {
	Save(ctx context.Context, v domain.Venue) error
	GetByID(ctx context.Context, id string) (domain.Venue, error)
	List(ctx context.Context) ([]domain.Venue, error)
	SearchByName(ctx context.Context, query string) ([]domain.Venue, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
	TopByEventCount(ctx context.Context, limit int) ([]domain.Venue, error)
}
