package dto

import (
	"time"

	"pitchbridge/internal/domain/investor"

	"github.com/google/uuid"
)

type ProfileResponse struct {
	ID                  uuid.UUID `json:"id"`
	UserID              uuid.UUID `json:"user_id"`
	InvestorType        string    `json:"investor_type"`
	InvestmentThesis    string    `json:"investment_thesis"`
	PreferredCategories []string  `json:"preferred_categories"`
	PreferredStages     []string  `json:"preferred_stages"`
	TicketSizeMin       int64     `json:"ticket_size_min"`
	TicketSizeMax       int64     `json:"ticket_size_max"`
	LookingFor          string    `json:"looking_for"`
	IsActive            bool      `json:"is_active"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func NewProfileResponse(p investor.Profile) ProfileResponse {
	categories := p.PreferredCategories
	if categories == nil {
		categories = []string{}
	}
	stages := p.PreferredStages
	if stages == nil {
		stages = []string{}
	}

	return ProfileResponse{
		ID:                  p.ID,
		UserID:              p.UserID,
		InvestorType:        p.InvestorType,
		InvestmentThesis:    p.InvestmentThesis,
		PreferredCategories: categories,
		PreferredStages:     stages,
		TicketSizeMin:       p.TicketSizeMin,
		TicketSizeMax:       p.TicketSizeMax,
		LookingFor:          p.LookingFor,
		IsActive:            p.IsActive,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}
