package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleInvestor = "investor"
	RoleFounder  = "founder"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	Role         string
	Bio          string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func IsValidRole(role string) bool {
	return role == RoleInvestor || role == RoleFounder
}
