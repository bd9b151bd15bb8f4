package usecase

import (
	"context"
	"errors"
	"strings"

	"pitchbridge/internal/domain/investor"
	"pitchbridge/internal/domain/match"
	"pitchbridge/internal/domain/pitch"
	"pitchbridge/internal/domain/user"
	"pitchbridge/internal/oracle"
	"pitchbridge/internal/ws"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrProfileNotFound = errors.New("investor profile not found")
	ErrPitchNotFound   = errors.New("published pitch not found")
	ErrGenerationBusy  = errors.New("match generation already in progress")
	ErrOracleMalformed = errors.New("malformed oracle response")
	ErrOracleFailed    = errors.New("oracle request failed")
)

const (
	// CandidatePoolCap bounds the number of candidates sent to the oracle.
	// It is a hard request-size limit, not a quality filter.
	CandidatePoolCap = 30
	// RequestedMatches is how many ranked matches one invocation asks for.
	RequestedMatches = 10
)

// GenerationResult reports both what the oracle returned and what actually
// landed in storage. The two diverge when dedup skips existing pairs.
type GenerationResult struct {
	Returned int
	Inserted int
}

type GenerationLocker interface {
	AcquireGenerationLock(ctx context.Context, userID uuid.UUID) bool
	ReleaseGenerationLock(ctx context.Context, userID uuid.UUID)
}

type MatchListInvalidator interface {
	InvalidateMatchLists(ctx context.Context, userIDs ...uuid.UUID)
}

type MatchGenerationUsecase interface {
	GenerateMatches(ctx context.Context, subjectID uuid.UUID) (GenerationResult, error)
}

type MatchGeneration struct {
	users    user.Repository
	profiles investor.Repository
	pitches  pitch.Repository
	matches  match.Repository
	ranker   oracle.Ranker
	locks    GenerationLocker
	cache    MatchListInvalidator
	logger   *zap.Logger
}

func NewMatchGenerationUsecase(
	users user.Repository,
	profiles investor.Repository,
	pitches pitch.Repository,
	matches match.Repository,
	ranker oracle.Ranker,
	locks GenerationLocker,
	cache MatchListInvalidator,
	logger *zap.Logger,
) *MatchGeneration {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MatchGeneration{
		users:    users,
		profiles: profiles,
		pitches:  pitches,
		matches:  matches,
		ranker:   ranker,
		locks:    locks,
		cache:    cache,
		logger:   logger,
	}
}

// GenerateMatches runs one synchronous generation cycle for the subject:
// assemble a bounded candidate pool, issue exactly one oracle request, then
// insert-if-absent per returned match. Oracle failure of any kind aborts
// with nothing persisted; dedup skips are silent. The pipeline side follows
// the subject's stored role, not any claim the caller carries, so a role
// switch takes effect on the very next invocation.
func (u *MatchGeneration) GenerateMatches(ctx context.Context, subjectID uuid.UUID) (GenerationResult, error) {
	if subjectID == uuid.Nil {
		return GenerationResult{}, ErrUnauthorized
	}

	subject, err := u.users.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return GenerationResult{}, ErrUnauthorized
		}
		return GenerationResult{}, ErrInternal
	}

	if u.locks != nil {
		if !u.locks.AcquireGenerationLock(ctx, subjectID) {
			return GenerationResult{}, ErrGenerationBusy
		}
		defer u.locks.ReleaseGenerationLock(ctx, subjectID)
	}

	if subject.Role == user.RoleInvestor {
		return u.generateForInvestor(ctx, subject)
	}
	return u.generateForFounder(ctx, subject)
}

func (u *MatchGeneration) generateForInvestor(ctx context.Context, subject user.User) (GenerationResult, error) {
	prof, err := u.profiles.GetByUserID(ctx, subject.ID)
	if err != nil {
		if errors.Is(err, investor.ErrNotFound) {
			return GenerationResult{}, ErrProfileNotFound
		}
		return GenerationResult{}, ErrInternal
	}
	if !prof.IsActive {
		return GenerationResult{}, ErrProfileNotFound
	}

	published, err := u.pitches.ListPublished(ctx)
	if err != nil {
		return GenerationResult{}, ErrInternal
	}

	founderIDs := make([]uuid.UUID, 0, len(published))
	for _, p := range published {
		founderIDs = append(founderIDs, p.FounderID)
	}
	founders, err := u.users.GetByIDs(ctx, founderIDs)
	if err != nil {
		return GenerationResult{}, ErrInternal
	}

	candidates := make([]oracle.Candidate, 0, len(published))
	for _, p := range published {
		candidates = append(candidates, oracle.Candidate{
			ID:        p.ID,
			OwnerID:   p.FounderID,
			Name:      p.StartupName,
			Category:  p.Category,
			Stage:     p.ProductStage,
			Summary:   p.OneLiner,
			OwnerName: founders[p.FounderID].FullName,
		})
	}
	candidates = boundCandidates(candidates, prof.PreferredCategories, prof.PreferredStages)

	ranked, err := u.rank(ctx, oracle.Request{
		Direction: oracle.DirectionInvestor,
		Subject: oracle.Subject{
			Name:                subject.FullName,
			Bio:                 subject.Bio,
			InvestorType:        prof.InvestorType,
			InvestmentThesis:    prof.InvestmentThesis,
			PreferredCategories: prof.PreferredCategories,
			PreferredStages:     prof.PreferredStages,
			TicketSizeMin:       prof.TicketSizeMin,
			TicketSizeMax:       prof.TicketSizeMax,
			LookingFor:          prof.LookingFor,
		},
		Candidates: candidates,
		Limit:      RequestedMatches,
	})
	if err != nil {
		return GenerationResult{}, err
	}

	return u.persist(ctx, subject.ID, ranked, func(rm oracle.RankedMatch) match.Match {
		return match.Match{
			InvestorID:       subject.ID,
			FounderID:        rm.OwnerID,
			PitchID:          rm.CandidateID,
			MatchScore:       rm.Score,
			MatchReason:      rm.Reason,
			KeyAlignments:    rm.KeyAlignments,
			OutreachTemplate: rm.OutreachTemplate,
			GeneratedBy:      match.GeneratedByInvestor,
		}
	})
}

func (u *MatchGeneration) generateForFounder(ctx context.Context, subject user.User) (GenerationResult, error) {
	published, err := u.pitches.ListPublishedByFounder(ctx, subject.ID)
	if err != nil {
		return GenerationResult{}, ErrInternal
	}
	if len(published) == 0 {
		return GenerationResult{}, ErrPitchNotFound
	}
	// Founders are treated as single-pitch for matching purposes.
	p := published[0]

	profiles, err := u.profiles.ListActive(ctx)
	if err != nil {
		return GenerationResult{}, ErrInternal
	}

	ownerIDs := make([]uuid.UUID, 0, len(profiles))
	for _, prof := range profiles {
		ownerIDs = append(ownerIDs, prof.UserID)
	}
	owners, err := u.users.GetByIDs(ctx, ownerIDs)
	if err != nil {
		return GenerationResult{}, ErrInternal
	}

	candidates := make([]oracle.Candidate, 0, len(profiles))
	for _, prof := range profiles {
		summary := prof.InvestmentThesis
		if prof.LookingFor != "" {
			summary += "\nLooking for: " + prof.LookingFor
		}
		candidates = append(candidates, oracle.Candidate{
			ID:        prof.ID,
			OwnerID:   prof.UserID,
			Name:      owners[prof.UserID].FullName,
			Category:  strings.Join(prof.PreferredCategories, ", "),
			Stage:     strings.Join(prof.PreferredStages, ", "),
			Summary:   summary,
			OwnerName: owners[prof.UserID].FullName,
		})
	}
	candidates = boundCandidates(candidates, []string{p.Category}, []string{p.ProductStage})

	ranked, err := u.rank(ctx, oracle.Request{
		Direction: oracle.DirectionFounder,
		Subject: oracle.Subject{
			Name:         subject.FullName,
			Bio:          subject.Bio,
			StartupName:  p.StartupName,
			Category:     p.Category,
			ProductStage: p.ProductStage,
			OneLiner:     p.OneLiner,
			Problem:      p.Problem,
		},
		Candidates: candidates,
		Limit:      RequestedMatches,
	})
	if err != nil {
		return GenerationResult{}, err
	}

	return u.persist(ctx, subject.ID, ranked, func(rm oracle.RankedMatch) match.Match {
		return match.Match{
			InvestorID:       rm.OwnerID,
			FounderID:        subject.ID,
			PitchID:          p.ID,
			MatchScore:       rm.Score,
			MatchReason:      rm.Reason,
			KeyAlignments:    rm.KeyAlignments,
			OutreachTemplate: rm.OutreachTemplate,
			GeneratedBy:      match.GeneratedByFounder,
		}
	})
}

func (u *MatchGeneration) rank(ctx context.Context, req oracle.Request) ([]oracle.RankedMatch, error) {
	ranked, err := u.ranker.Rank(ctx, req)
	if err != nil {
		if errors.Is(err, oracle.ErrMalformedResponse) {
			u.logger.Warn("oracle response rejected", zap.Error(err))
			return nil, ErrOracleMalformed
		}
		u.logger.Warn("oracle request failed", zap.Error(err))
		return nil, ErrOracleFailed
	}
	return ranked, nil
}

func (u *MatchGeneration) persist(ctx context.Context, subjectID uuid.UUID, ranked []oracle.RankedMatch, build func(oracle.RankedMatch) match.Match) (GenerationResult, error) {
	res := GenerationResult{Returned: len(ranked)}
	touched := []uuid.UUID{subjectID}

	for _, rm := range ranked {
		inserted, err := u.matches.InsertIfAbsent(ctx, build(rm))
		if err != nil {
			return GenerationResult{}, ErrInternal
		}
		if inserted {
			res.Inserted++
			touched = append(touched, rm.OwnerID)
		}
	}

	if u.cache != nil {
		u.cache.InvalidateMatchLists(ctx, touched...)
	}
	if res.Inserted > 0 {
		for _, id := range touched {
			ws.NotifyMatchesGenerated(id, res.Inserted)
		}
	}

	u.logger.Info("match generation finished",
		zap.String("subject_id", subjectID.String()),
		zap.Int("returned", res.Returned),
		zap.Int("inserted", res.Inserted),
	)

	return res, nil
}

// boundCandidates applies the hard pool cap, preferring candidates that
// satisfy the subject's category and stage constraints before topping up
// with the rest in stable order.
func boundCandidates(candidates []oracle.Candidate, categories, stages []string) []oracle.Candidate {
	if len(candidates) <= CandidatePoolCap {
		return candidates
	}

	preferred := make([]oracle.Candidate, 0, CandidatePoolCap)
	rest := make([]oracle.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if matchesConstraint(c.Category, categories) && matchesConstraint(c.Stage, stages) {
			preferred = append(preferred, c)
		} else {
			rest = append(rest, c)
		}
	}

	out := preferred
	if len(out) > CandidatePoolCap {
		return out[:CandidatePoolCap]
	}
	for _, c := range rest {
		if len(out) == CandidatePoolCap {
			break
		}
		out = append(out, c)
	}
	return out
}

// matchesConstraint treats an empty constraint list and a blank candidate
// value both as "no preference". Values are compared case-insensitively;
// list-valued candidate fields are comma separated.
func matchesConstraint(value string, constraints []string) bool {
	nonEmpty := make([]string, 0, len(constraints))
	for _, c := range constraints {
		if strings.TrimSpace(c) != "" {
			nonEmpty = append(nonEmpty, c)
		}
	}
	if len(nonEmpty) == 0 || strings.TrimSpace(value) == "" {
		return true
	}

	values := strings.Split(value, ",")
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		for _, c := range nonEmpty {
			if v == strings.ToLower(strings.TrimSpace(c)) {
				return true
			}
		}
	}
	return false
}
