package pitch

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("pitch not found")

type Repository interface {
	Create(ctx context.Context, p Pitch) (Pitch, error)
	Update(ctx context.Context, p Pitch) (Pitch, error)
	GetByID(ctx context.Context, id uuid.UUID) (Pitch, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Pitch, error)
	ListByFounder(ctx context.Context, founderID uuid.UUID) ([]Pitch, error)
	ListPublished(ctx context.Context) ([]Pitch, error)
	ListPublishedByFounder(ctx context.Context, founderID uuid.UUID) ([]Pitch, error)
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error
}
