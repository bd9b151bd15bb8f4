// Package oracle models the language-model ranking capability behind a
// narrow interface so the rest of the system can treat it as an opaque
// request/response oracle and tests can swap in a deterministic stub.
package oracle

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type Direction string

const (
	// DirectionInvestor ranks startup pitches for an investor subject.
	DirectionInvestor Direction = "investor"
	// DirectionFounder ranks investors for a founder subject.
	DirectionFounder Direction = "founder"
)

// ErrMalformedResponse is returned when the model output cannot be parsed
// into the declared shape or an entry lacks required fields. The caller
// aborts without persisting anything.
var ErrMalformedResponse = errors.New("malformed oracle response")

// Subject carries the profile the ranking runs on behalf of. For an
// investor subject the thesis/preferences fields are set; for a founder
// subject the startup fields are.
type Subject struct {
	Name string `json:"name"`
	Bio  string `json:"bio,omitempty"`

	InvestorType        string   `json:"investor_type,omitempty"`
	InvestmentThesis    string   `json:"investment_thesis,omitempty"`
	PreferredCategories []string `json:"preferred_categories,omitempty"`
	PreferredStages     []string `json:"preferred_stages,omitempty"`
	TicketSizeMin       int64    `json:"ticket_size_min,omitempty"`
	TicketSizeMax       int64    `json:"ticket_size_max,omitempty"`
	LookingFor          string   `json:"looking_for,omitempty"`

	StartupName  string `json:"startup_name,omitempty"`
	Category     string `json:"category,omitempty"`
	ProductStage string `json:"product_stage,omitempty"`
	OneLiner     string `json:"one_liner,omitempty"`
	Problem      string `json:"problem,omitempty"`
}

// Candidate is one opposite-role record offered to the oracle: a published
// pitch when ranking for an investor, an active investor profile when
// ranking for a founder.
type Candidate struct {
	ID        uuid.UUID `json:"candidate_id"`
	OwnerID   uuid.UUID `json:"-"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	Stage     string    `json:"stage,omitempty"`
	Summary   string    `json:"summary"`
	OwnerName string    `json:"owner_name"`
}

type Request struct {
	Direction  Direction
	Subject    Subject
	Candidates []Candidate
	Limit      int
}

// RankedMatch is one validated entry of the oracle response. OwnerID is
// resolved from the candidate set, never trusted from the model output.
type RankedMatch struct {
	CandidateID      uuid.UUID
	OwnerID          uuid.UUID
	Score            int
	Reason           string
	KeyAlignments    []string
	OutreachTemplate string
}

type Ranker interface {
	Rank(ctx context.Context, req Request) ([]RankedMatch, error)
}
