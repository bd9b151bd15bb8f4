package dto

import (
	"time"

	"pitchbridge/internal/domain/pitch"

	"github.com/google/uuid"
)

type PitchResponse struct {
	ID           uuid.UUID `json:"id"`
	FounderID    uuid.UUID `json:"founder_id"`
	StartupName  string    `json:"startup_name"`
	Category     string    `json:"category"`
	ProductStage string    `json:"product_stage"`
	OneLiner     string    `json:"one_liner"`
	Problem      string    `json:"problem"`
	IsPublished  bool      `json:"is_published"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewPitchResponse(p pitch.Pitch) PitchResponse {
	return PitchResponse{
		ID:           p.ID,
		FounderID:    p.FounderID,
		StartupName:  p.StartupName,
		Category:     p.Category,
		ProductStage: p.ProductStage,
		OneLiner:     p.OneLiner,
		Problem:      p.Problem,
		IsPublished:  p.IsPublished,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func NewPitchListResponse(pitches []pitch.Pitch) []PitchResponse {
	out := make([]PitchResponse, 0, len(pitches))
	for _, p := range pitches {
		out = append(out, NewPitchResponse(p))
	}
	return out
}
