package match

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("match not found")

type Repository interface {
	// InsertIfAbsent writes the match unless a row already exists for the
	// same (investor_id, founder_id) pair. It reports whether a row was
	// actually inserted; an existing pair is a silent skip, not an error.
	InsertIfAbsent(ctx context.Context, m Match) (bool, error)

	GetByID(ctx context.Context, id uuid.UUID) (Match, error)

	// ListForUser returns all matches where userID is either side,
	// ordered by match_score descending.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]Match, error)

	// UpdateOutreach persists the outreach workflow fields only.
	UpdateOutreach(ctx context.Context, m Match) error
}
