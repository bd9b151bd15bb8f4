package usecase

import (
	"context"
	"errors"
	"strings"

	"pitchbridge/internal/domain/pitch"

	"github.com/google/uuid"
)

var ErrNotPitchOwner = errors.New("not the pitch owner")

type PitchInput struct {
	StartupName  string
	Category     string
	ProductStage string
	OneLiner     string
	Problem      string
}

type PitchUsecase interface {
	CreatePitch(ctx context.Context, founderID uuid.UUID, in PitchInput) (pitch.Pitch, error)
	UpdatePitch(ctx context.Context, pitchID, founderID uuid.UUID, in PitchInput) (pitch.Pitch, error)
	SetPublished(ctx context.Context, pitchID, founderID uuid.UUID, published bool) error
	GetPitch(ctx context.Context, pitchID, viewerID uuid.UUID) (pitch.Pitch, error)
	ListOwn(ctx context.Context, founderID uuid.UUID) ([]pitch.Pitch, error)
	ListPublished(ctx context.Context) ([]pitch.Pitch, error)
}

type Pitches struct {
	pitches pitch.Repository
}

func NewPitchUsecase(pitches pitch.Repository) *Pitches {
	return &Pitches{pitches: pitches}
}

func (u *Pitches) CreatePitch(ctx context.Context, founderID uuid.UUID, in PitchInput) (pitch.Pitch, error) {
	if founderID == uuid.Nil {
		return pitch.Pitch{}, ErrUnauthorized
	}
	if strings.TrimSpace(in.StartupName) == "" {
		return pitch.Pitch{}, ErrInvalidInput
	}

	p, err := u.pitches.Create(ctx, pitch.Pitch{
		FounderID:    founderID,
		StartupName:  strings.TrimSpace(in.StartupName),
		Category:     strings.TrimSpace(in.Category),
		ProductStage: strings.TrimSpace(in.ProductStage),
		OneLiner:     strings.TrimSpace(in.OneLiner),
		Problem:      strings.TrimSpace(in.Problem),
	})
	if err != nil {
		return pitch.Pitch{}, ErrInternal
	}
	return p, nil
}

func (u *Pitches) UpdatePitch(ctx context.Context, pitchID, founderID uuid.UUID, in PitchInput) (pitch.Pitch, error) {
	existing, err := u.ownedPitch(ctx, pitchID, founderID)
	if err != nil {
		return pitch.Pitch{}, err
	}
	if strings.TrimSpace(in.StartupName) == "" {
		return pitch.Pitch{}, ErrInvalidInput
	}

	existing.StartupName = strings.TrimSpace(in.StartupName)
	existing.Category = strings.TrimSpace(in.Category)
	existing.ProductStage = strings.TrimSpace(in.ProductStage)
	existing.OneLiner = strings.TrimSpace(in.OneLiner)
	existing.Problem = strings.TrimSpace(in.Problem)

	updated, err := u.pitches.Update(ctx, existing)
	if err != nil {
		return pitch.Pitch{}, ErrInternal
	}
	return updated, nil
}

func (u *Pitches) SetPublished(ctx context.Context, pitchID, founderID uuid.UUID, published bool) error {
	if _, err := u.ownedPitch(ctx, pitchID, founderID); err != nil {
		return err
	}
	if err := u.pitches.SetPublished(ctx, pitchID, published); err != nil {
		return ErrInternal
	}
	return nil
}

// GetPitch returns a pitch visible to the viewer: published pitches are
// public, drafts only visible to their owner.
func (u *Pitches) GetPitch(ctx context.Context, pitchID, viewerID uuid.UUID) (pitch.Pitch, error) {
	p, err := u.pitches.GetByID(ctx, pitchID)
	if err != nil {
		if errors.Is(err, pitch.ErrNotFound) {
			return pitch.Pitch{}, ErrPitchNotFound
		}
		return pitch.Pitch{}, ErrInternal
	}
	if !p.IsPublished && p.FounderID != viewerID {
		return pitch.Pitch{}, ErrPitchNotFound
	}
	return p, nil
}

func (u *Pitches) ListOwn(ctx context.Context, founderID uuid.UUID) ([]pitch.Pitch, error) {
	if founderID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	out, err := u.pitches.ListByFounder(ctx, founderID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Pitches) ListPublished(ctx context.Context) ([]pitch.Pitch, error) {
	out, err := u.pitches.ListPublished(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Pitches) ownedPitch(ctx context.Context, pitchID, founderID uuid.UUID) (pitch.Pitch, error) {
	if founderID == uuid.Nil {
		return pitch.Pitch{}, ErrUnauthorized
	}
	p, err := u.pitches.GetByID(ctx, pitchID)
	if err != nil {
		if errors.Is(err, pitch.ErrNotFound) {
			return pitch.Pitch{}, ErrPitchNotFound
		}
		return pitch.Pitch{}, ErrInternal
	}
	if p.FounderID != founderID {
		return pitch.Pitch{}, ErrNotPitchOwner
	}
	return p, nil
}
