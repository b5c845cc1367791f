package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/talentrail/internal/domain"
)

// GuideRepo defines the persistence operations for Guides.
type GuideRepo interface {
	// List returns all guides ordered by id.
	List(ctx context.Context) ([]domain.Guide, error)

	// GetByID retrieves a guide by primary key.
	// Returns domain.ErrNotFound if no guide with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Guide, error)

	// Create inserts a new guide and returns it with its assigned id.
	Create(ctx context.Context, g domain.Guide) (domain.Guide, error)

	// Update loads the guide inside a transaction, hands it to apply, and
	// writes every mutable field back. An error from apply rolls back.
	Update(ctx context.Context, id int64, apply func(*domain.Guide) error) (domain.Guide, error)

	// Delete removes a guide. Returns domain.ErrConflict while trips still
	// reference it.
	Delete(ctx context.Context, id int64) error
}

type pgGuideRepo struct {
	db db
}

// NewGuideRepo constructs a GuideRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewGuideRepo(db db) GuideRepo {
	return &pgGuideRepo{db: db}
}

const guideColumns = `id, name, email, phone, years_of_experience`

func (r *pgGuideRepo) List(ctx context.Context) ([]domain.Guide, error) {
	const q = `SELECT ` + guideColumns + ` FROM guides ORDER BY id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.GuideRepo.List: %w", classify(err))
	}
	defer rows.Close()

	guides := []domain.Guide{}
	for rows.Next() {
		g, err := scanGuide(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.GuideRepo.List: scan: %w", classify(err))
		}
		guides = append(guides, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.GuideRepo.List: rows: %w", classify(err))
	}
	return guides, nil
}

func (r *pgGuideRepo) GetByID(ctx context.Context, id int64) (domain.Guide, error) {
	if err := requireID(id); err != nil {
		return domain.Guide{}, fmt.Errorf("repo.GuideRepo.GetByID: %w", err)
	}
	g, err := getGuide(ctx, r.db, id, "")
	if err != nil {
		return domain.Guide{}, fmt.Errorf("repo.GuideRepo.GetByID: %w", err)
	}
	return g, nil
}

func (r *pgGuideRepo) Create(ctx context.Context, g domain.Guide) (domain.Guide, error) {
	const q = `
		INSERT INTO guides (name, email, phone, years_of_experience)
		VALUES (@name, @email, @phone, @years)
		RETURNING ` + guideColumns

	var created domain.Guide
	err := InTx(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		created, err = scanGuide(tx.QueryRow(ctx, q, guideArgs(g)))
		return err
	})
	if err != nil {
		return domain.Guide{}, fmt.Errorf("repo.GuideRepo.Create: %w", classify(err))
	}
	return created, nil
}

func (r *pgGuideRepo) Update(ctx context.Context, id int64, apply func(*domain.Guide) error) (domain.Guide, error) {
	if err := requireID(id); err != nil {
		return domain.Guide{}, fmt.Errorf("repo.GuideRepo.Update: %w", err)
	}

	const q = `
		UPDATE guides
		SET name                = @name,
		    email               = @email,
		    phone               = @phone,
		    years_of_experience = @years,
		    updated_at          = now()
		WHERE id = @id
		RETURNING ` + guideColumns

	var updated domain.Guide
	err := InTx(ctx, r.db, func(tx pgx.Tx) error {
		current, err := getGuide(ctx, tx, id, "FOR UPDATE")
		if err != nil {
			return err
		}
		if err := apply(&current); err != nil {
			return err
		}
		args := guideArgs(current)
		args["id"] = id
		updated, err = scanGuide(tx.QueryRow(ctx, q, args))
		return err
	})
	if err != nil {
		return domain.Guide{}, fmt.Errorf("repo.GuideRepo.Update: %w", classify(err))
	}
	return updated, nil
}

func (r *pgGuideRepo) Delete(ctx context.Context, id int64) error {
	if err := requireID(id); err != nil {
		return fmt.Errorf("repo.GuideRepo.Delete: %w", err)
	}
	if err := deleteByID(ctx, r.db, `DELETE FROM guides WHERE id = @id`, id); err != nil {
		return fmt.Errorf("repo.GuideRepo.Delete: %w", err)
	}
	return nil
}

// getGuide reads one guide with an optional row-lock clause.
func getGuide(ctx context.Context, q db, id int64, lock string) (domain.Guide, error) {
	sql := `SELECT ` + guideColumns + ` FROM guides WHERE id = @id ` + lock
	g, err := scanGuide(q.QueryRow(ctx, sql, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Guide{}, classify(err)
	}
	return g, nil
}

func guideArgs(g domain.Guide) pgx.NamedArgs {
	return pgx.NamedArgs{
		"name":  g.Name,
		"email": g.Email,
		"phone": g.Phone,
		"years": g.YearsOfExperience,
	}
}

func scanGuide(s scanner) (domain.Guide, error) {
	var g domain.Guide
	err := s.Scan(&g.ID, &g.Name, &g.Email, &g.Phone, &g.YearsOfExperience)
	return g, err
}

// deleteByID runs a single-row delete inside its own transaction and reports
// domain.ErrNotFound when no row matched.
func deleteByID(ctx context.Context, conn db, q string, id int64) error {
	err := InTx(ctx, conn, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, q, pgx.NamedArgs{"id": id})
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	return classify(err)
}
