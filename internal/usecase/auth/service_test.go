package auth

import (
	"context"
	"errors"
	"testing"

	"pitchbridge/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type memoryUserRepo struct {
	byEmail   map[string]user.User
	createErr error
}

func (m *memoryUserRepo) Create(_ context.Context, u user.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.byEmail == nil {
		m.byEmail = map[string]user.User{}
	}
	m.byEmail[u.Email] = u
	return nil
}
func (m *memoryUserRepo) GetByID(context.Context, uuid.UUID) (user.User, error) {
	return user.User{}, user.ErrNotFound
}
func (m *memoryUserRepo) GetByIDs(context.Context, []uuid.UUID) (map[uuid.UUID]user.User, error) {
	return nil, nil
}
func (m *memoryUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}
func (m *memoryUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}
func (m *memoryUserRepo) UpdateRole(context.Context, uuid.UUID, string) error { return nil }

func TestRegister_DefaultsFounderRoleAndNormalizesEmail(t *testing.T) {
	repo := &memoryUserRepo{}
	svc := NewService(repo)

	u, err := svc.Register(context.Background(), RegisterInput{
		Email:    "  Ava@Example.COM ",
		Password: "hunter22!",
		FullName: "Ava Cole",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Email != "ava@example.com" {
		t.Fatalf("expected normalized email, got %q", u.Email)
	}
	if u.Role != user.RoleFounder {
		t.Fatalf("expected default founder role, got %q", u.Role)
	}
	if u.PasswordHash != "" {
		t.Fatalf("expected password hash stripped from the returned user")
	}

	stored := repo.byEmail["ava@example.com"]
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter22!")); err != nil {
		t.Fatalf("stored hash does not match the password: %v", err)
	}
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	svc := NewService(&memoryUserRepo{})
	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.co", Password: "short"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRegister_RejectsUnknownRole(t *testing.T) {
	svc := NewService(&memoryUserRepo{})
	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.co", Password: "longenough", Role: "admin"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &memoryUserRepo{}
	svc := NewService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "dup@b.co", Password: "longenough"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	_, err := svc.Register(context.Background(), RegisterInput{Email: "DUP@b.co", Password: "longenough"})
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	repo := &memoryUserRepo{}
	svc := NewService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "ava@b.co", Password: "longenough", Role: user.RoleInvestor}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	u, err := svc.Login(context.Background(), LoginInput{Email: "Ava@b.co", Password: "longenough"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Role != user.RoleInvestor {
		t.Fatalf("expected investor role, got %q", u.Role)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := &memoryUserRepo{}
	svc := NewService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "ava@b.co", Password: "longenough"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	_, err := svc.Login(context.Background(), LoginInput{Email: "ava@b.co", Password: "wrongpassword"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := NewService(&memoryUserRepo{})
	_, err := svc.Login(context.Background(), LoginInput{Email: "nobody@b.co", Password: "longenough"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
