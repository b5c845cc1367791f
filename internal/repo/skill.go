package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/talentrail/internal/domain"
)

// SkillRepo defines the persistence operations for Skills. Skill names are
// unique regardless of case; duplicates surface as domain.ErrConflict.
type SkillRepo interface {
	List(ctx context.Context) ([]domain.Skill, error)
	GetByID(ctx context.Context, id int64) (domain.Skill, error)
	Create(ctx context.Context, s domain.Skill) (domain.Skill, error)
	Update(ctx context.Context, id int64, apply func(*domain.Skill) error) (domain.Skill, error)
	Delete(ctx context.Context, id int64) error
}

type pgSkillRepo struct {
	db db
}

// NewSkillRepo constructs a SkillRepo backed by the provided db connection.
func NewSkillRepo(db db) SkillRepo {
	return &pgSkillRepo{db: db}
}

const skillColumns = `id, name, description, category`

func (r *pgSkillRepo) List(ctx context.Context) ([]domain.Skill, error) {
	rows, err := r.db.Query(ctx, `SELECT `+skillColumns+` FROM skills ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("repo.SkillRepo.List: %w", classify(err))
	}
	defer rows.Close()

	skills := []domain.Skill{}
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.SkillRepo.List: scan: %w", classify(err))
		}
		skills = append(skills, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.SkillRepo.List: rows: %w", classify(err))
	}
	return skills, nil
}

func (r *pgSkillRepo) GetByID(ctx context.Context, id int64) (domain.Skill, error) {
	if err := requireID(id); err != nil {
		return domain.Skill{}, fmt.Errorf("repo.SkillRepo.GetByID: %w", err)
	}
	s, err := getSkill(ctx, r.db, id, "")
	if err != nil {
		return domain.Skill{}, fmt.Errorf("repo.SkillRepo.GetByID: %w", err)
	}
	return s, nil
}

func (r *pgSkillRepo) Create(ctx context.Context, s domain.Skill) (domain.Skill, error) {
	const q = `
		INSERT INTO skills (name, description, category)
		VALUES (@name, @description, @category)
		RETURNING ` + skillColumns

	var created domain.Skill
	err := InTx(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		created, err = scanSkill(tx.QueryRow(ctx, q, skillArgs(s)))
		return err
	})
	if err != nil {
		return domain.Skill{}, fmt.Errorf("repo.SkillRepo.Create: %w", classify(err))
	}
	return created, nil
}

func (r *pgSkillRepo) Update(ctx context.Context, id int64, apply func(*domain.Skill) error) (domain.Skill, error) {
	if err := requireID(id); err != nil {
		return domain.Skill{}, fmt.Errorf("repo.SkillRepo.Update: %w", err)
	}

	const q = `
		UPDATE skills
		SET name        = @name,
		    description = @description,
		    category    = @category
		WHERE id = @id
		RETURNING ` + skillColumns

	var updated domain.Skill
	err := InTx(ctx, r.db, func(tx pgx.Tx) error {
		current, err := getSkill(ctx, tx, id, "FOR UPDATE")
		if err != nil {
			return err
		}
		if err := apply(&current); err != nil {
			return err
		}
		args := skillArgs(current)
		args["id"] = id
		updated, err = scanSkill(tx.QueryRow(ctx, q, args))
		return err
	})
	if err != nil {
		return domain.Skill{}, fmt.Errorf("repo.SkillRepo.Update: %w", classify(err))
	}
	return updated, nil
}

func (r *pgSkillRepo) Delete(ctx context.Context, id int64) error {
	if err := requireID(id); err != nil {
		return fmt.Errorf("repo.SkillRepo.Delete: %w", err)
	}
	if err := deleteByID(ctx, r.db, `DELETE FROM skills WHERE id = @id`, id); err != nil {
		return fmt.Errorf("repo.SkillRepo.Delete: %w", err)
	}
	return nil
}

func getSkill(ctx context.Context, q db, id int64, lock string) (domain.Skill, error) {
	sql := `SELECT ` + skillColumns + ` FROM skills WHERE id = @id ` + lock
	s, err := scanSkill(q.QueryRow(ctx, sql, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Skill{}, classify(err)
	}
	return s, nil
}

func skillArgs(s domain.Skill) pgx.NamedArgs {
	return pgx.NamedArgs{
		"name":        s.Name,
		"description": s.Description,
		"category":    string(s.Category),
	}
}

func scanSkill(s scanner) (domain.Skill, error) {
	var (
		sk       domain.Skill
		category string
	)
	if err := s.Scan(&sk.ID, &sk.Name, &sk.Description, &category); err != nil {
		return domain.Skill{}, err
	}
	sk.Category = domain.SkillCategory(category)
	return sk, nil
}
