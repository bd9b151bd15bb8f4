package investor

import (
	"time"

	"github.com/google/uuid"
)

// Profile describes what an investor is looking for. Empty category or
// stage lists mean "no preference". Inactive profiles are excluded from
// candidate pools and from match generation.
type Profile struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	InvestorType        string
	InvestmentThesis    string
	PreferredCategories []string
	PreferredStages     []string
	TicketSizeMin       int64
	TicketSizeMax       int64
	LookingFor          string
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
