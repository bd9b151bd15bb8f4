package dto

import (
	"time"

	"pitchbridge/internal/usecase"

	"github.com/google/uuid"
)

type GenerationResponse struct {
	MatchCount    int `json:"match_count"`
	InsertedCount int `json:"inserted_count"`
}

type CounterpartResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	FullName     string    `json:"full_name"`
	Bio          string    `json:"bio,omitempty"`
	StartupName  string    `json:"startup_name,omitempty"`
	Category     string    `json:"category,omitempty"`
	ProductStage string    `json:"product_stage,omitempty"`
	OneLiner     string    `json:"one_liner,omitempty"`
	InvestorType string    `json:"investor_type,omitempty"`
	Thesis       string    `json:"investment_thesis,omitempty"`
	LookingFor   string    `json:"looking_for,omitempty"`
}

type MatchResponse struct {
	ID                 uuid.UUID           `json:"id"`
	InvestorID         uuid.UUID           `json:"investor_id"`
	FounderID          uuid.UUID           `json:"founder_id"`
	PitchID            uuid.UUID           `json:"pitch_id"`
	MatchScore         int                 `json:"match_score"`
	MatchReason        string              `json:"match_reason"`
	KeyAlignments      []string            `json:"key_alignments"`
	OutreachTemplate   string              `json:"outreach_template"`
	Status             string              `json:"status"`
	OutreachStatus     string              `json:"outreach_status"`
	GeneratedBy        string              `json:"generated_by"`
	OutreachSentAt     *time.Time          `json:"outreach_sent_at,omitempty"`
	ResponseReceivedAt *time.Time          `json:"response_received_at,omitempty"`
	ResponseNotes      string              `json:"response_notes,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	Counterpart        CounterpartResponse `json:"counterpart"`
}

func NewMatchResponse(em usecase.EnrichedMatch) MatchResponse {
	m := em.Match
	alignments := m.KeyAlignments
	if alignments == nil {
		alignments = []string{}
	}

	return MatchResponse{
		ID:                 m.ID,
		InvestorID:         m.InvestorID,
		FounderID:          m.FounderID,
		PitchID:            m.PitchID,
		MatchScore:         m.MatchScore,
		MatchReason:        m.MatchReason,
		KeyAlignments:      alignments,
		OutreachTemplate:   m.OutreachTemplate,
		Status:             m.Status,
		OutreachStatus:     string(m.OutreachStatus),
		GeneratedBy:        m.GeneratedBy,
		OutreachSentAt:     m.OutreachSentAt,
		ResponseReceivedAt: m.ResponseReceivedAt,
		ResponseNotes:      m.ResponseNotes,
		CreatedAt:          m.CreatedAt,
		Counterpart: CounterpartResponse{
			UserID:       em.Counterpart.UserID,
			FullName:     em.Counterpart.FullName,
			Bio:          em.Counterpart.Bio,
			StartupName:  em.Counterpart.StartupName,
			Category:     em.Counterpart.Category,
			ProductStage: em.Counterpart.ProductStage,
			OneLiner:     em.Counterpart.OneLiner,
			InvestorType: em.Counterpart.InvestorType,
			Thesis:       em.Counterpart.Thesis,
			LookingFor:   em.Counterpart.LookingFor,
		},
	}
}
