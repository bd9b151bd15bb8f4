package usecase

import (
	"context"
	"errors"
	"strings"

	"pitchbridge/internal/domain/investor"
	"pitchbridge/internal/domain/user"

	"github.com/google/uuid"
)

type ProfileInput struct {
	InvestorType        string
	InvestmentThesis    string
	PreferredCategories []string
	PreferredStages     []string
	TicketSizeMin       int64
	TicketSizeMax       int64
	LookingFor          string
}

type InvestorProfileUsecase interface {
	UpsertProfile(ctx context.Context, userID uuid.UUID, in ProfileInput) (investor.Profile, error)
	GetOwnProfile(ctx context.Context, userID uuid.UUID) (investor.Profile, error)
	SwitchRole(ctx context.Context, userID uuid.UUID, role string) (user.User, error)
}

type InvestorProfile struct {
	profiles investor.Repository
	users    user.Repository
}

func NewInvestorProfileUsecase(profiles investor.Repository, users user.Repository) *InvestorProfile {
	return &InvestorProfile{profiles: profiles, users: users}
}

func (u *InvestorProfile) UpsertProfile(ctx context.Context, userID uuid.UUID, in ProfileInput) (investor.Profile, error) {
	if userID == uuid.Nil {
		return investor.Profile{}, ErrUnauthorized
	}
	if in.TicketSizeMin < 0 || in.TicketSizeMax < 0 || in.TicketSizeMin > in.TicketSizeMax {
		return investor.Profile{}, ErrInvalidInput
	}

	p := investor.Profile{
		UserID:              userID,
		InvestorType:        strings.TrimSpace(in.InvestorType),
		InvestmentThesis:    strings.TrimSpace(in.InvestmentThesis),
		PreferredCategories: cleanTags(in.PreferredCategories),
		PreferredStages:     cleanTags(in.PreferredStages),
		TicketSizeMin:       in.TicketSizeMin,
		TicketSizeMax:       in.TicketSizeMax,
		LookingFor:          strings.TrimSpace(in.LookingFor),
		IsActive:            true,
	}

	saved, err := u.profiles.Upsert(ctx, p)
	if err != nil {
		return investor.Profile{}, ErrInternal
	}
	return saved, nil
}

func (u *InvestorProfile) GetOwnProfile(ctx context.Context, userID uuid.UUID) (investor.Profile, error) {
	if userID == uuid.Nil {
		return investor.Profile{}, ErrUnauthorized
	}

	p, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, investor.ErrNotFound) {
			return investor.Profile{}, ErrProfileNotFound
		}
		return investor.Profile{}, ErrInternal
	}
	return p, nil
}

// SwitchRole changes the user's marketplace role. Leaving the investor role
// soft-deactivates the profile rather than deleting it; switching back
// reactivates whatever profile already exists.
func (u *InvestorProfile) SwitchRole(ctx context.Context, userID uuid.UUID, role string) (user.User, error) {
	if userID == uuid.Nil {
		return user.User{}, ErrUnauthorized
	}
	role = strings.ToLower(strings.TrimSpace(role))
	if !user.IsValidRole(role) {
		return user.User{}, ErrInvalidInput
	}

	if err := u.users.UpdateRole(ctx, userID, role); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUnauthorized
		}
		return user.User{}, ErrInternal
	}

	if err := u.profiles.SetActive(ctx, userID, role == user.RoleInvestor); err != nil {
		return user.User{}, ErrInternal
	}

	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	usr.PasswordHash = ""
	return usr, nil
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}
