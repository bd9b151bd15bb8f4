package pitch

import (
	"time"

	"github.com/google/uuid"
)

// Pitch is a founder's published description of their startup. Only
// published pitches are visible to investors and to match generation.
type Pitch struct {
	ID           uuid.UUID
	FounderID    uuid.UUID
	StartupName  string
	Category     string
	ProductStage string
	OneLiner     string
	Problem      string
	IsPublished  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
