package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/talentrail/internal/domain"
)

// UserRepo defines the persistence operations for user accounts.
type UserRepo interface {
	// Create inserts a new user. Returns domain.ErrConflict when the
	// username is taken.
	Create(ctx context.Context, u domain.User) (domain.User, error)

	// GetByUsername returns domain.ErrNotFound for unknown usernames.
	GetByUsername(ctx context.Context, username string) (domain.User, error)

	// AddRole grants role to the user. Granting a role twice is a no-op.
	AddRole(ctx context.Context, username string, role domain.Role) (domain.User, error)
}

type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

func (r *pgUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	const q = `
		INSERT INTO users (username, password_hash, roles)
		VALUES (@username, @password_hash, @roles)
		RETURNING username, password_hash, roles`

	var created domain.User
	err := InTx(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		created, err = scanUser(tx.QueryRow(ctx, q, pgx.NamedArgs{
			"username":      u.Username,
			"password_hash": u.PasswordHash,
			"roles":         roleStrings(u.Roles),
		}))
		return err
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", classify(err))
	}
	return created, nil
}

func (r *pgUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	const q = `SELECT username, password_hash, roles FROM users WHERE username = @username`

	u, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"username": username}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByUsername: %w", classify(err))
	}
	return u, nil
}

func (r *pgUserRepo) AddRole(ctx context.Context, username string, role domain.Role) (domain.User, error) {
	const q = `
		UPDATE users
		SET roles = CASE WHEN @role::text = ANY(roles) THEN roles ELSE array_append(roles, @role::text) END
		WHERE username = @username
		RETURNING username, password_hash, roles`

	var updated domain.User
	err := InTx(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		updated, err = scanUser(tx.QueryRow(ctx, q, pgx.NamedArgs{"username": username, "role": string(role)}))
		return err
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.AddRole: %w", classify(err))
	}
	return updated, nil
}

func roleStrings(roles []domain.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

func scanUser(s scanner) (domain.User, error) {
	var (
		u     domain.User
		roles []string
	)
	if err := s.Scan(&u.Username, &u.PasswordHash, &roles); err != nil {
		return domain.User{}, err
	}
	u.Roles = make([]domain.Role, len(roles))
	for i, r := range roles {
		u.Roles[i] = domain.Role(r)
	}
	return u, nil
}
