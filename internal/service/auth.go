package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/pkordes/talentrail/internal/domain"
	"github.com/pkordes/talentrail/internal/repo"
)

// MinPasswordLength is the shortest password Register accepts.
const MinPasswordLength = 6

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(u domain.User) (string, error)
}

// AuthService registers users, verifies credentials and issues tokens.
type AuthService struct {
	users  repo.UserRepo
	tokens TokenIssuer
	cost   int
}

// NewAuthService constructs an AuthService hashing with bcrypt.DefaultCost.
func NewAuthService(users repo.UserRepo, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens, cost: bcrypt.DefaultCost}
}

// WithCost returns a copy of s hashing with the given bcrypt cost. Tests use
// bcrypt.MinCost to stay fast.
func (s *AuthService) WithCost(cost int) *AuthService {
	cp := *s
	cp.cost = cost
	return &cp
}

// Register creates a USER account and returns it with a fresh token. A
// taken username yields domain.ErrConflict.
func (s *AuthService) Register(ctx context.Context, username, password string) (domain.User, string, error) {
	username = strings.TrimSpace(username)
	if err := validateCredentials(username, password); err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Register: %w", err)
	}

	hash, err := s.hash(password)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Register: %w", err)
	}

	u, err := s.users.Create(ctx, domain.User{
		Username:     username,
		PasswordHash: hash,
		Roles:        []domain.Role{domain.RoleUser},
	})
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Register: %w", err)
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Register: %w", err)
	}
	return u, token, nil
}

// Login verifies the password and returns a fresh token. Unknown users and
// wrong passwords both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.User, string, error) {
	u, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", domain.ErrInvalidCredentials)
	}
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", domain.ErrInvalidCredentials)
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", err)
	}
	return u, token, nil
}

// EnsureAdmin makes sure an account with the ADMIN role exists. A missing
// account is created with the given password; an existing one keeps its
// password and gains the role.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) (domain.User, error) {
	username = strings.TrimSpace(username)

	_, err := s.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		u, err := s.users.AddRole(ctx, username, domain.RoleAdmin)
		if err != nil {
			return domain.User{}, fmt.Errorf("service.AuthService.EnsureAdmin: %w", err)
		}
		return u, nil
	case !errors.Is(err, domain.ErrNotFound):
		return domain.User{}, fmt.Errorf("service.AuthService.EnsureAdmin: %w", err)
	}

	if err := validateCredentials(username, password); err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.EnsureAdmin: %w", err)
	}
	hash, err := s.hash(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.EnsureAdmin: %w", err)
	}
	u, err := s.users.Create(ctx, domain.User{
		Username:     username,
		PasswordHash: hash,
		Roles:        []domain.Role{domain.RoleUser, domain.RoleAdmin},
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.EnsureAdmin: %w", err)
	}
	return u, nil
}

func (s *AuthService) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: password must be at most 72 bytes", domain.ErrValidation)
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func validateCredentials(username, password string) error {
	if err := requireText("username", username); err != nil {
		return err
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, MinPasswordLength)
	}
	return nil
}
