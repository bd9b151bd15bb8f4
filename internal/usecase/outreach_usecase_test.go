package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"pitchbridge/internal/domain/match"
	"pitchbridge/internal/domain/pitch"
	"pitchbridge/internal/domain/user"

	"github.com/google/uuid"
)

type outreachMatchRepo struct {
	byID    map[uuid.UUID]match.Match
	byUser  map[uuid.UUID][]match.Match
	updated *match.Match
}

func (m *outreachMatchRepo) InsertIfAbsent(context.Context, match.Match) (bool, error) {
	return false, nil
}
func (m *outreachMatchRepo) GetByID(_ context.Context, id uuid.UUID) (match.Match, error) {
	mm, ok := m.byID[id]
	if !ok {
		return match.Match{}, match.ErrNotFound
	}
	return mm, nil
}
func (m *outreachMatchRepo) ListForUser(_ context.Context, userID uuid.UUID) ([]match.Match, error) {
	return m.byUser[userID], nil
}
func (m *outreachMatchRepo) UpdateOutreach(_ context.Context, mm match.Match) error {
	if _, ok := m.byID[mm.ID]; !ok {
		return match.ErrNotFound
	}
	m.byID[mm.ID] = mm
	m.updated = &mm
	return nil
}

func outreachFixture() (match.Match, user.User, user.User, pitch.Pitch) {
	investorUser := user.User{ID: uuid.New(), FullName: "Ava Cole", Role: user.RoleInvestor}
	founderUser := user.User{ID: uuid.New(), FullName: "Ben Ito", Role: user.RoleFounder}
	p := pitch.Pitch{
		ID:          uuid.New(),
		FounderID:   founderUser.ID,
		StartupName: "Ledgerly",
		Category:    "fintech",
		OneLiner:    "books that close themselves",
		IsPublished: true,
	}
	m := match.Match{
		ID:             uuid.New(),
		InvestorID:     investorUser.ID,
		FounderID:      founderUser.ID,
		PitchID:        p.ID,
		MatchScore:     82,
		Status:         match.StatusSuggested,
		OutreachStatus: match.OutreachNotStarted,
		GeneratedBy:    match.GeneratedByInvestor,
	}
	return m, investorUser, founderUser, p
}

func newOutreachFixtureUsecase(m match.Match, investorUser, founderUser user.User, p pitch.Pitch) (*Outreach, *outreachMatchRepo) {
	repo := &outreachMatchRepo{
		byID: map[uuid.UUID]match.Match{m.ID: m},
		byUser: map[uuid.UUID][]match.Match{
			m.InvestorID: {m},
			m.FounderID:  {m},
		},
	}
	users := mockUserRepo{users: map[uuid.UUID]user.User{
		investorUser.ID: investorUser,
		founderUser.ID:  founderUser,
	}}
	pitches := mockPitchRepo{byID: map[uuid.UUID]pitch.Pitch{p.ID: p}}
	return NewOutreachUsecase(repo, users, pitches, mockProfileRepo{}, nil), repo
}

func TestSetOutreachStatus_SentStampsTimestamp(t *testing.T) {
	m, inv, fdr, p := outreachFixture()
	uc, repo := newOutreachFixtureUsecase(m, inv, fdr, p)

	fixed := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	uc.now = func() time.Time { return fixed }

	got, err := uc.SetOutreachStatus(context.Background(), m.ID, inv.ID, match.OutreachSent, "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.OutreachStatus != match.OutreachSent {
		t.Fatalf("expected sent, got %q", got.OutreachStatus)
	}
	if got.OutreachSentAt == nil || !got.OutreachSentAt.Equal(fixed) {
		t.Fatalf("expected outreach_sent_at=%v, got %v", fixed, got.OutreachSentAt)
	}
	if repo.updated == nil {
		t.Fatalf("expected the update to be persisted")
	}
}

func TestSetOutreachStatus_RepeatedSentOverwritesTimestamp(t *testing.T) {
	m, inv, fdr, p := outreachFixture()
	uc, _ := newOutreachFixtureUsecase(m, inv, fdr, p)

	first := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	second := first.Add(2 * time.Hour)

	uc.now = func() time.Time { return first }
	if _, err := uc.SetOutreachStatus(context.Background(), m.ID, inv.ID, match.OutreachSent, ""); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	uc.now = func() time.Time { return second }
	got, err := uc.SetOutreachStatus(context.Background(), m.ID, inv.ID, match.OutreachSent, "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.OutreachSentAt == nil || !got.OutreachSentAt.Equal(second) {
		t.Fatalf("expected timestamp overwritten to %v, got %v", second, got.OutreachSentAt)
	}
}

func TestSetOutreachStatus_RespondedStoresNotes(t *testing.T) {
	m, inv, fdr, p := outreachFixture()
	uc, _ := newOutreachFixtureUsecase(m, inv, fdr, p)

	got, err := uc.SetOutreachStatus(context.Background(), m.ID, fdr.ID, match.OutreachResponded, "wants a deck")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.ResponseReceivedAt == nil {
		t.Fatalf("expected response_received_at to be set")
	}
	if got.ResponseNotes != "wants a deck" {
		t.Fatalf("expected notes stored, got %q", got.ResponseNotes)
	}
}

func TestSetOutreachStatus_AnyTransitionAllowed(t *testing.T) {
	m, inv, fdr, p := outreachFixture()
	uc, _ := newOutreachFixtureUsecase(m, inv, fdr, p)

	// declined back to drafted is a legal user action, not an error
	if _, err := uc.SetOutreachStatus(context.Background(), m.ID, inv.ID, match.OutreachDeclined, ""); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got, err := uc.SetOutreachStatus(context.Background(), m.ID, inv.ID, match.OutreachDrafted, "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.OutreachStatus != match.OutreachDrafted {
		t.Fatalf("expected drafted, got %q", got.OutreachStatus)
	}
}

func TestSetOutreachStatus_InvalidStatus(t *testing.T) {
	m, inv, fdr, p := outreachFixture()
	uc, _ := newOutreachFixtureUsecase(m, inv, fdr, p)

	_, err := uc.SetOutreachStatus(context.Background(), m.ID, inv.ID, match.OutreachStatus("ghosted"), "")
	if !errors.Is(err, ErrInvalidOutreach) {
		t.Fatalf("expected ErrInvalidOutreach, got %v", err)
	}
}

func TestSetOutreachStatus_NotParticipant(t *testing.T) {
	m, inv, fdr, p := outreachFixture()
	uc, _ := newOutreachFixtureUsecase(m, inv, fdr, p)

	_, err := uc.SetOutreachStatus(context.Background(), m.ID, uuid.New(), match.OutreachSent, "")
	if !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
}

func TestSetOutreachStatus_MatchNotFound(t *testing.T) {
	m, inv, fdr, p := outreachFixture()
	uc, _ := newOutreachFixtureUsecase(m, inv, fdr, p)

	_, err := uc.SetOutreachStatus(context.Background(), uuid.New(), inv.ID, match.OutreachSent, "")
	if !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
}

func TestListMatches_EnrichesCounterpart(t *testing.T) {
	m, inv, fdr, p := outreachFixture()
	uc, _ := newOutreachFixtureUsecase(m, inv, fdr, p)

	// investor's view: counterpart is the founder and their pitch
	got, err := uc.ListMatches(context.Background(), inv.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	cp := got[0].Counterpart
	if cp.UserID != fdr.ID {
		t.Fatalf("expected founder as counterpart")
	}
	if cp.StartupName != "Ledgerly" || cp.OneLiner != "books that close themselves" {
		t.Fatalf("expected pitch enrichment, got %+v", cp)
	}
}

func TestGetMatch_ParticipantOnly(t *testing.T) {
	m, inv, fdr, p := outreachFixture()
	uc, _ := newOutreachFixtureUsecase(m, inv, fdr, p)

	if _, err := uc.GetMatch(context.Background(), m.ID, fdr.ID); err != nil {
		t.Fatalf("unexpected err for participant: %v", err)
	}
	_, err := uc.GetMatch(context.Background(), m.ID, uuid.New())
	if !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
}
