package investor

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("investor profile not found")

type Repository interface {
	Upsert(ctx context.Context, p Profile) (Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (Profile, error)
	GetByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]Profile, error)
	ListActive(ctx context.Context) ([]Profile, error)
	SetActive(ctx context.Context, userID uuid.UUID, active bool) error
}
