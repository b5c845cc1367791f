package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pkordes/talentrail/internal/domain"
	"github.com/pkordes/talentrail/internal/service"
)

type stubIssuer struct{}

func (stubIssuer) Issue(u domain.User) (string, error) { return "token-for-" + u.Username, nil }

// memUsers is an in-memory UserRepo.
func memUsers() (*mockUserRepo, map[string]domain.User) {
	users := map[string]domain.User{}
	return &mockUserRepo{
		create: func(_ context.Context, u domain.User) (domain.User, error) {
			if _, ok := users[u.Username]; ok {
				return domain.User{}, domain.ErrConflict
			}
			users[u.Username] = u
			return u, nil
		},
		getByUsername: func(_ context.Context, name string) (domain.User, error) {
			u, ok := users[name]
			if !ok {
				return domain.User{}, domain.ErrNotFound
			}
			return u, nil
		},
		addRole: func(_ context.Context, name string, role domain.Role) (domain.User, error) {
			u, ok := users[name]
			if !ok {
				return domain.User{}, domain.ErrNotFound
			}
			if !u.HasRole(role) {
				u.Roles = append(u.Roles, role)
			}
			users[name] = u
			return u, nil
		},
	}, users
}

func newAuthService(r *mockUserRepo) *service.AuthService {
	return service.NewAuthService(r, stubIssuer{}).WithCost(bcrypt.MinCost)
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	r, users := memUsers()
	svc := newAuthService(r)
	ctx := context.Background()

	u, token, err := svc.Register(ctx, " alice ", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, []domain.Role{domain.RoleUser}, u.Roles)
	assert.Equal(t, "token-for-alice", token)
	assert.NotEqual(t, "s3cret!", users["alice"].PasswordHash, "passwords are stored hashed")

	_, token, err = svc.Login(ctx, "alice", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, "token-for-alice", token)
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	r, _ := memUsers()
	svc := newAuthService(r)
	ctx := context.Background()
	_, _, err := svc.Register(ctx, "alice", "s3cret!")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody", "s3cret!")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Register_Validation(t *testing.T) {
	r, _ := memUsers()
	svc := newAuthService(r)

	_, _, err := svc.Register(context.Background(), "  ", "s3cret!")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, _, err = svc.Register(context.Background(), "bob", "123")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, _, err = svc.Register(context.Background(), "bob", strings.Repeat("x", 80))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	r, _ := memUsers()
	svc := newAuthService(r)

	_, _, err := svc.Register(context.Background(), "alice", "s3cret!")
	require.NoError(t, err)
	_, _, err = svc.Register(context.Background(), "alice", "other-secret")

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	r, users := memUsers()
	svc := newAuthService(r)
	ctx := context.Background()

	u, err := svc.EnsureAdmin(ctx, "admin", "admin-pass")
	require.NoError(t, err)
	assert.True(t, u.HasRole(domain.RoleAdmin))

	_, _, err = svc.Register(ctx, "carol", "carol-pass")
	require.NoError(t, err)
	u, err = svc.EnsureAdmin(ctx, "carol", "ignored")
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.Role{domain.RoleUser, domain.RoleAdmin}, u.Roles)

	_, err = svc.EnsureAdmin(ctx, "carol", "ignored")
	require.NoError(t, err)
	assert.Len(t, users["carol"].Roles, 2, "granting ADMIN twice is a no-op")
}
