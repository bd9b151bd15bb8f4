package usecase

import (
	"context"
	"errors"
	"time"

	"pitchbridge/internal/domain/investor"
	"pitchbridge/internal/domain/match"
	"pitchbridge/internal/domain/pitch"
	"pitchbridge/internal/domain/user"
	"pitchbridge/internal/ws"

	"github.com/google/uuid"
)

var (
	ErrMatchNotFound   = errors.New("match not found")
	ErrNotParticipant  = errors.New("not a participant of this match")
	ErrInvalidOutreach = errors.New("invalid outreach status")
)

// CounterpartSummary is the display enrichment attached to each match:
// the other side's user plus their pitch or investor profile.
type CounterpartSummary struct {
	UserID       uuid.UUID
	FullName     string
	Bio          string
	StartupName  string
	Category     string
	ProductStage string
	OneLiner     string
	InvestorType string
	Thesis       string
	LookingFor   string
}

type EnrichedMatch struct {
	Match       match.Match
	Counterpart CounterpartSummary
}

type MatchListCache interface {
	GetMatchList(ctx context.Context, userID uuid.UUID, out any) bool
	SetMatchList(ctx context.Context, userID uuid.UUID, value any)
	InvalidateMatchLists(ctx context.Context, userIDs ...uuid.UUID)
}

type OutreachUsecase interface {
	SetOutreachStatus(ctx context.Context, matchID, subjectID uuid.UUID, status match.OutreachStatus, notes string) (match.Match, error)
	ListMatches(ctx context.Context, subjectID uuid.UUID) ([]EnrichedMatch, error)
	GetMatch(ctx context.Context, matchID, subjectID uuid.UUID) (EnrichedMatch, error)
}

type Outreach struct {
	matches  match.Repository
	users    user.Repository
	pitches  pitch.Repository
	profiles investor.Repository
	cache    MatchListCache

	now func() time.Time
}

func NewOutreachUsecase(
	matches match.Repository,
	users user.Repository,
	pitches pitch.Repository,
	profiles investor.Repository,
	cache MatchListCache,
) *Outreach {
	return &Outreach{
		matches:  matches,
		users:    users,
		pitches:  pitches,
		profiles: profiles,
		cache:    cache,
		now:      time.Now,
	}
}

// SetOutreachStatus moves the match to the requested workflow state. Every
// state is reachable from every other by explicit user action; this is a
// deliberate flexibility of the workflow, not missing validation. Moving to
// sent stamps outreach_sent_at (overwritten on repeats); moving to responded
// stamps response_received_at and stores the supplied notes.
func (u *Outreach) SetOutreachStatus(ctx context.Context, matchID, subjectID uuid.UUID, status match.OutreachStatus, notes string) (match.Match, error) {
	if subjectID == uuid.Nil {
		return match.Match{}, ErrUnauthorized
	}
	if !match.IsValidOutreachStatus(status) {
		return match.Match{}, ErrInvalidOutreach
	}

	m, err := u.matches.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, match.ErrNotFound) {
			return match.Match{}, ErrMatchNotFound
		}
		return match.Match{}, ErrInternal
	}
	if !m.Participant(subjectID) {
		return match.Match{}, ErrNotParticipant
	}

	m.OutreachStatus = status
	switch status {
	case match.OutreachSent:
		now := u.now().UTC()
		m.OutreachSentAt = &now
	case match.OutreachResponded:
		now := u.now().UTC()
		m.ResponseReceivedAt = &now
		if notes != "" {
			m.ResponseNotes = notes
		}
	}

	if err := u.matches.UpdateOutreach(ctx, m); err != nil {
		if errors.Is(err, match.ErrNotFound) {
			return match.Match{}, ErrMatchNotFound
		}
		return match.Match{}, ErrInternal
	}

	if u.cache != nil {
		u.cache.InvalidateMatchLists(ctx, m.InvestorID, m.FounderID)
	}
	ws.NotifyOutreachUpdated(m.CounterpartID(subjectID), m.ID, string(status))

	return m, nil
}

// ListMatches returns every match the subject participates in, highest
// score first, enriched with the counterpart's display data. Enrichment is
// assembled in-process from independent fetches.
func (u *Outreach) ListMatches(ctx context.Context, subjectID uuid.UUID) ([]EnrichedMatch, error) {
	if subjectID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	if u.cache != nil {
		var cached []EnrichedMatch
		if u.cache.GetMatchList(ctx, subjectID, &cached) {
			return cached, nil
		}
	}

	rows, err := u.matches.ListForUser(ctx, subjectID)
	if err != nil {
		return nil, ErrInternal
	}

	enriched, err := u.enrich(ctx, rows, subjectID)
	if err != nil {
		return nil, err
	}

	if u.cache != nil {
		u.cache.SetMatchList(ctx, subjectID, enriched)
	}

	return enriched, nil
}

func (u *Outreach) GetMatch(ctx context.Context, matchID, subjectID uuid.UUID) (EnrichedMatch, error) {
	if subjectID == uuid.Nil {
		return EnrichedMatch{}, ErrUnauthorized
	}

	m, err := u.matches.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, match.ErrNotFound) {
			return EnrichedMatch{}, ErrMatchNotFound
		}
		return EnrichedMatch{}, ErrInternal
	}
	if !m.Participant(subjectID) {
		return EnrichedMatch{}, ErrNotParticipant
	}

	enriched, err := u.enrich(ctx, []match.Match{m}, subjectID)
	if err != nil {
		return EnrichedMatch{}, err
	}
	return enriched[0], nil
}

func (u *Outreach) enrich(ctx context.Context, rows []match.Match, subjectID uuid.UUID) ([]EnrichedMatch, error) {
	counterpartIDs := make([]uuid.UUID, 0, len(rows))
	pitchIDs := make([]uuid.UUID, 0, len(rows))
	for _, m := range rows {
		counterpartIDs = append(counterpartIDs, m.CounterpartID(subjectID))
		pitchIDs = append(pitchIDs, m.PitchID)
	}

	counterparts, err := u.users.GetByIDs(ctx, counterpartIDs)
	if err != nil {
		return nil, ErrInternal
	}
	pitches, err := u.pitches.GetByIDs(ctx, pitchIDs)
	if err != nil {
		return nil, ErrInternal
	}
	profiles, err := u.profiles.GetByUserIDs(ctx, counterpartIDs)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]EnrichedMatch, 0, len(rows))
	for _, m := range rows {
		cpID := m.CounterpartID(subjectID)
		cp := counterparts[cpID]

		summary := CounterpartSummary{
			UserID:   cpID,
			FullName: cp.FullName,
			Bio:      cp.Bio,
		}
		if cpID == m.FounderID {
			if p, ok := pitches[m.PitchID]; ok {
				summary.StartupName = p.StartupName
				summary.Category = p.Category
				summary.ProductStage = p.ProductStage
				summary.OneLiner = p.OneLiner
			}
		} else if prof, ok := profiles[cpID]; ok {
			summary.InvestorType = prof.InvestorType
			summary.Thesis = prof.InvestmentThesis
			summary.LookingFor = prof.LookingFor
		}

		out = append(out, EnrichedMatch{Match: m, Counterpart: summary})
	}

	return out, nil
}
