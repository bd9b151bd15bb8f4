package match

import (
	"time"

	"github.com/google/uuid"
)

// MaxKeyAlignments bounds the number of alignment tags persisted per match.
const MaxKeyAlignments = 3

const StatusSuggested = "suggested"

// GeneratedBy records which side's generation run produced the row. The
// outreach template's voice follows this direction.
const (
	GeneratedByInvestor = "investor"
	GeneratedByFounder  = "founder"
)

type OutreachStatus string

const (
	OutreachNotStarted OutreachStatus = "not_started"
	OutreachDrafted    OutreachStatus = "drafted"
	OutreachSent       OutreachStatus = "sent"
	OutreachResponded  OutreachStatus = "responded"
	OutreachDeclined   OutreachStatus = "declined"
)

func IsValidOutreachStatus(s OutreachStatus) bool {
	switch s {
	case OutreachNotStarted, OutreachDrafted, OutreachSent, OutreachResponded, OutreachDeclined:
		return true
	}
	return false
}

// Match links one investor to one founder. At most one row exists per
// (investor_id, founder_id) pair, enforced by a unique constraint at the
// storage layer.
type Match struct {
	ID                 uuid.UUID
	InvestorID         uuid.UUID
	FounderID          uuid.UUID
	PitchID            uuid.UUID
	MatchScore         int
	MatchReason        string
	KeyAlignments      []string
	OutreachTemplate   string
	Status             string
	OutreachStatus     OutreachStatus
	GeneratedBy        string
	OutreachSentAt     *time.Time
	ResponseReceivedAt *time.Time
	ResponseNotes      string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Participant reports whether userID is on either side of the match.
func (m Match) Participant(userID uuid.UUID) bool {
	return m.InvestorID == userID || m.FounderID == userID
}

// CounterpartID returns the other side of the match relative to userID.
func (m Match) CounterpartID(userID uuid.UUID) uuid.UUID {
	if m.InvestorID == userID {
		return m.FounderID
	}
	return m.InvestorID
}
