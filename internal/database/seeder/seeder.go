package seeder

import (
	"context"
	"fmt"

	"pitchbridge/internal/domain/investor"
	"pitchbridge/internal/domain/pitch"
	"pitchbridge/internal/domain/user"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var categories = []string{"fintech", "healthtech", "edtech", "climate", "devtools", "ecommerce", "ai"}

var stages = []string{"idea", "mvp", "early_revenue", "growth"}

var investorTypes = []string{"angel", "seed_fund", "vc", "family_office"}

// Seeder populates demo founders, published pitches and active investor
// profiles so match generation has a realistic pool to rank.
type Seeder struct {
	users    user.Repository
	profiles investor.Repository
	pitches  pitch.Repository
	logger   *zap.Logger
}

func New(users user.Repository, profiles investor.Repository, pitches pitch.Repository, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{users: users, profiles: profiles, pitches: pitches, logger: logger}
}

func (s *Seeder) Run(ctx context.Context, founders, investors int, seed int64) error {
	faker := gofakeit.New(seed)

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	for i := 0; i < founders; i++ {
		if err := s.seedFounder(ctx, faker, string(hash), i); err != nil {
			return err
		}
	}
	for i := 0; i < investors; i++ {
		if err := s.seedInvestor(ctx, faker, string(hash), i); err != nil {
			return err
		}
	}

	s.logger.Info("seed complete",
		zap.Int("founders", founders),
		zap.Int("investors", investors),
	)
	return nil
}

func (s *Seeder) seedFounder(ctx context.Context, faker *gofakeit.Faker, passwordHash string, n int) error {
	u := user.User{
		ID:           uuid.New(),
		Email:        fmt.Sprintf("founder%d@%s", n, faker.DomainName()),
		PasswordHash: passwordHash,
		FullName:     faker.Name(),
		Role:         user.RoleFounder,
		Bio:          faker.Sentence(12),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return fmt.Errorf("seed founder user: %w", err)
	}

	name := faker.Company()
	p := pitch.Pitch{
		FounderID:    u.ID,
		StartupName:  name,
		Category:     faker.RandomString(categories),
		ProductStage: faker.RandomString(stages),
		OneLiner:     faker.Slogan(),
		Problem:      faker.Paragraph(1, 3, 12, " "),
	}

	created, err := s.pitches.Create(ctx, p)
	if err != nil {
		return fmt.Errorf("seed pitch: %w", err)
	}
	if err := s.pitches.SetPublished(ctx, created.ID, true); err != nil {
		return fmt.Errorf("publish seeded pitch: %w", err)
	}

	s.logger.Debug("seeded founder", zap.String("email", u.Email), zap.String("startup", name))
	return nil
}

func (s *Seeder) seedInvestor(ctx context.Context, faker *gofakeit.Faker, passwordHash string, n int) error {
	u := user.User{
		ID:           uuid.New(),
		Email:        fmt.Sprintf("investor%d@%s", n, faker.DomainName()),
		PasswordHash: passwordHash,
		FullName:     faker.Name(),
		Role:         user.RoleInvestor,
		Bio:          faker.Sentence(10),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return fmt.Errorf("seed investor user: %w", err)
	}

	min := int64(faker.Number(10, 100)) * 1000
	max := min * int64(faker.Number(2, 10))

	prof := investor.Profile{
		UserID:              u.ID,
		InvestorType:        faker.RandomString(investorTypes),
		InvestmentThesis:    faker.Paragraph(1, 2, 14, " "),
		PreferredCategories: pickSome(faker, categories),
		PreferredStages:     pickSome(faker, stages),
		TicketSizeMin:       min,
		TicketSizeMax:       max,
		LookingFor:          faker.Sentence(10),
		IsActive:            true,
	}
	if _, err := s.profiles.Upsert(ctx, prof); err != nil {
		return fmt.Errorf("seed investor profile: %w", err)
	}

	s.logger.Debug("seeded investor", zap.String("email", u.Email))
	return nil
}

// pickSome returns a small random subset, occasionally empty so the pool
// also contains investors with no stated preferences.
func pickSome(faker *gofakeit.Faker, vocab []string) []string {
	n := faker.Number(0, 3)
	out := make([]string, 0, n)
	seen := map[string]bool{}
	for len(out) < n {
		v := faker.RandomString(vocab)
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
