package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/talentrail/internal/domain"
)

// CandidateRepo defines the persistence operations for Candidates and the
// candidate_skills join table. Every candidate returned carries its full
// skill set ordered by skill id.
type CandidateRepo interface {
	// List returns all candidates ordered by id.
	List(ctx context.Context) ([]domain.Candidate, error)

	// ListBySkillCategory returns the candidates holding at least one skill
	// of the given category, each with its complete skill set.
	ListBySkillCategory(ctx context.Context, category domain.SkillCategory) ([]domain.Candidate, error)

	// GetByID retrieves one candidate.
	// Returns domain.ErrNotFound if no candidate with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Candidate, error)

	// Create inserts the candidate's scalar fields. Skills are never
	// created or linked here.
	Create(ctx context.Context, c domain.Candidate) (domain.Candidate, error)

	// Update loads the candidate FOR UPDATE, hands it to apply and persists
	// the result, synchronising candidate_skills with the Skills set.
	Update(ctx context.Context, id int64, apply func(*domain.Candidate) error) (domain.Candidate, error)

	// AddSkill links skill skillID to candidate candidateID in one
	// transaction. The candidate is locked and the skill held under a
	// key-share lock before the insert, so a missing side yields
	// domain.ErrNotFound and nothing is written. An existing link is kept.
	AddSkill(ctx context.Context, candidateID, skillID int64) error

	// Delete removes a candidate and its skill links.
	Delete(ctx context.Context, id int64) error
}

type pgCandidateRepo struct {
	db db
}

// NewCandidateRepo constructs a CandidateRepo backed by the provided db connection.
func NewCandidateRepo(db db) CandidateRepo {
	return &pgCandidateRepo{db: db}
}

const candidateColumns = `c.id, c.name, c.phone, c.education`

func (r *pgCandidateRepo) List(ctx context.Context) ([]domain.Candidate, error) {
	const q = `SELECT ` + candidateColumns + ` FROM candidates c ORDER BY c.id`

	cs, err := queryCandidates(ctx, r.db, q, nil)
	if err != nil {
		return nil, fmt.Errorf("repo.CandidateRepo.List: %w", err)
	}
	return cs, nil
}

func (r *pgCandidateRepo) ListBySkillCategory(ctx context.Context, category domain.SkillCategory) ([]domain.Candidate, error) {
	const q = `
		SELECT ` + candidateColumns + `
		FROM candidates c
		WHERE EXISTS (
			SELECT 1
			FROM candidate_skills cs
			JOIN skills s ON s.id = cs.skill_id
			WHERE cs.candidate_id = c.id
			  AND s.category = @category
		)
		ORDER BY c.id`

	cs, err := queryCandidates(ctx, r.db, q, pgx.NamedArgs{"category": string(category)})
	if err != nil {
		return nil, fmt.Errorf("repo.CandidateRepo.ListBySkillCategory: %w", err)
	}
	return cs, nil
}

func (r *pgCandidateRepo) GetByID(ctx context.Context, id int64) (domain.Candidate, error) {
	if err := requireID(id); err != nil {
		return domain.Candidate{}, fmt.Errorf("repo.CandidateRepo.GetByID: %w", err)
	}
	c, err := getCandidate(ctx, r.db, id, "")
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("repo.CandidateRepo.GetByID: %w", err)
	}
	return c, nil
}

func (r *pgCandidateRepo) Create(ctx context.Context, c domain.Candidate) (domain.Candidate, error) {
	const q = `
		INSERT INTO candidates (name, phone, education)
		VALUES (@name, @phone, @education)
		RETURNING id`

	var id int64
	err := InTx(ctx, r.db, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, q, candidateArgs(c)).Scan(&id)
	})
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("repo.CandidateRepo.Create: %w", classify(err))
	}

	created := c
	created.ID = id
	created.Skills = []domain.Skill{}
	return created, nil
}

func (r *pgCandidateRepo) Update(ctx context.Context, id int64, apply func(*domain.Candidate) error) (domain.Candidate, error) {
	if err := requireID(id); err != nil {
		return domain.Candidate{}, fmt.Errorf("repo.CandidateRepo.Update: %w", err)
	}

	const (
		updateQ = `
			UPDATE candidates
			SET name       = @name,
			    phone      = @phone,
			    education  = @education,
			    updated_at = now()
			WHERE id = @id`
		unlinkQ = `
			DELETE FROM candidate_skills
			WHERE candidate_id = @id
			  AND NOT (skill_id = ANY(@skill_ids::bigint[]))`
		linkQ = `
			INSERT INTO candidate_skills (candidate_id, skill_id)
			SELECT @id::bigint, unnest(@skill_ids::bigint[])
			ON CONFLICT (candidate_id, skill_id) DO NOTHING`
	)

	var updated domain.Candidate
	err := InTx(ctx, r.db, func(tx pgx.Tx) error {
		current, err := getCandidate(ctx, tx, id, "FOR UPDATE")
		if err != nil {
			return err
		}
		if err := apply(&current); err != nil {
			return err
		}

		args := candidateArgs(current)
		args["id"] = id
		if _, err := tx.Exec(ctx, updateQ, args); err != nil {
			return err
		}

		linkArgs := pgx.NamedArgs{"id": id, "skill_ids": current.SkillIDs()}
		if _, err := tx.Exec(ctx, unlinkQ, linkArgs); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, linkQ, linkArgs); err != nil {
			return err
		}

		updated, err = getCandidate(ctx, tx, id, "")
		return err
	})
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("repo.CandidateRepo.Update: %w", classify(err))
	}
	return updated, nil
}

func (r *pgCandidateRepo) AddSkill(ctx context.Context, candidateID, skillID int64) error {
	if err := requireID(candidateID); err != nil {
		return fmt.Errorf("repo.CandidateRepo.AddSkill: %w", err)
	}
	if err := requireID(skillID); err != nil {
		return fmt.Errorf("repo.CandidateRepo.AddSkill: %w", err)
	}

	const (
		lockCandidateQ = `SELECT id FROM candidates WHERE id = @candidate_id FOR UPDATE`
		lockSkillQ     = `SELECT id FROM skills WHERE id = @skill_id FOR KEY SHARE`
		linkQ          = `
			INSERT INTO candidate_skills (candidate_id, skill_id)
			VALUES (@candidate_id, @skill_id)
			ON CONFLICT (candidate_id, skill_id) DO NOTHING`
	)

	args := pgx.NamedArgs{"candidate_id": candidateID, "skill_id": skillID}
	err := InTx(ctx, r.db, func(tx pgx.Tx) error {
		var id int64
		if err := tx.QueryRow(ctx, lockCandidateQ, args).Scan(&id); err != nil {
			return notFoundAs(err, "candidate", candidateID)
		}
		if err := tx.QueryRow(ctx, lockSkillQ, args).Scan(&id); err != nil {
			return notFoundAs(err, "skill", skillID)
		}
		_, err := tx.Exec(ctx, linkQ, args)
		return err
	})
	if err != nil {
		return fmt.Errorf("repo.CandidateRepo.AddSkill: %w", classify(err))
	}
	return nil
}

func (r *pgCandidateRepo) Delete(ctx context.Context, id int64) error {
	if err := requireID(id); err != nil {
		return fmt.Errorf("repo.CandidateRepo.Delete: %w", err)
	}
	if err := deleteByID(ctx, r.db, `DELETE FROM candidates WHERE id = @id`, id); err != nil {
		return fmt.Errorf("repo.CandidateRepo.Delete: %w", err)
	}
	return nil
}

func getCandidate(ctx context.Context, q db, id int64, lock string) (domain.Candidate, error) {
	sql := `SELECT ` + candidateColumns + ` FROM candidates c WHERE c.id = @id ` + lock

	c, err := scanCandidate(q.QueryRow(ctx, sql, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Candidate{}, classify(err)
	}
	skills, err := loadSkills(ctx, q, []int64{id})
	if err != nil {
		return domain.Candidate{}, err
	}
	c.Skills = skills[id]
	return c, nil
}

func queryCandidates(ctx context.Context, conn db, q string, args pgx.NamedArgs) ([]domain.Candidate, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if args == nil {
		rows, err = conn.Query(ctx, q)
	} else {
		rows, err = conn.Query(ctx, q, args)
	}
	if err != nil {
		return nil, classify(err)
	}

	candidates := []domain.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan: %w", classify(err))
		}
		candidates = append(candidates, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", classify(err))
	}

	ids := make([]int64, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ID
	}
	skills, err := loadSkills(ctx, conn, ids)
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		candidates[i].Skills = skills[candidates[i].ID]
	}
	return candidates, nil
}

// loadSkills fetches the skill sets of the given candidates in one query.
// Every requested id is present in the result, with an empty slice when the
// candidate has no skills.
func loadSkills(ctx context.Context, conn db, candidateIDs []int64) (map[int64][]domain.Skill, error) {
	const q = `
		SELECT cs.candidate_id, s.id, s.name, s.description, s.category
		FROM candidate_skills cs
		JOIN skills s ON s.id = cs.skill_id
		WHERE cs.candidate_id = ANY(@ids)
		ORDER BY cs.candidate_id, s.id`

	out := make(map[int64][]domain.Skill, len(candidateIDs))
	for _, id := range candidateIDs {
		out[id] = []domain.Skill{}
	}
	if len(candidateIDs) == 0 {
		return out, nil
	}

	rows, err := conn.Query(ctx, q, pgx.NamedArgs{"ids": candidateIDs})
	if err != nil {
		return nil, fmt.Errorf("load skills: %w", classify(err))
	}
	defer rows.Close()

	for rows.Next() {
		var (
			candidateID int64
			s           domain.Skill
			category    string
		)
		if err := rows.Scan(&candidateID, &s.ID, &s.Name, &s.Description, &category); err != nil {
			return nil, fmt.Errorf("load skills: scan: %w", classify(err))
		}
		s.Category = domain.SkillCategory(category)
		out[candidateID] = append(out[candidateID], s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load skills: rows: %w", classify(err))
	}
	return out, nil
}

func candidateArgs(c domain.Candidate) pgx.NamedArgs {
	return pgx.NamedArgs{
		"name":      c.Name,
		"phone":     c.Phone,
		"education": c.Education,
	}
}

func scanCandidate(s scanner) (domain.Candidate, error) {
	var c domain.Candidate
	err := s.Scan(&c.ID, &c.Name, &c.Phone, &c.Education)
	return c, err
}
