package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/talentrail/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres implementation,
// which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// List returns all trips ordered by id, each with its guide attached.
	List(ctx context.Context) ([]domain.Trip, error)

	// ListByCategory returns the trips of one category ordered by id.
	ListByCategory(ctx context.Context, category domain.TripCategory) ([]domain.Trip, error)

	// GetByID retrieves a single trip with its guide attached.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Trip, error)

	// Create resolves trip.GuideID and inserts the trip in the same
	// transaction. Returns domain.ErrNotFound, writing nothing, when the
	// guide does not exist.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Update loads the trip FOR UPDATE, hands it to apply, resolves the
	// (possibly re-pointed) guide and writes every mutable field back.
	Update(ctx context.Context, id int64, apply func(*domain.Trip) error) (domain.Trip, error)

	// Delete removes a trip by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error

	// TotalPricePerGuide sums trip prices grouped by guide, ordered by guide id.
	TotalPricePerGuide(ctx context.Context) ([]domain.GuideTotal, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripSelect = `
	SELECT t.id, t.name, t.start_date, t.end_date, t.location, t.price, t.category, t.guide_id,
	       g.id, g.name, g.email, g.phone, g.years_of_experience
	FROM trips t
	JOIN guides g ON g.id = t.guide_id`

func (r *pgTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := queryTrips(ctx, r.db, tripSelect+` ORDER BY t.id`, nil)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	return trips, nil
}

func (r *pgTripRepo) ListByCategory(ctx context.Context, category domain.TripCategory) ([]domain.Trip, error) {
	const q = tripSelect + ` WHERE t.category = @category ORDER BY t.id`

	trips, err := queryTrips(ctx, r.db, q, pgx.NamedArgs{"category": string(category)})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByCategory: %w", err)
	}
	return trips, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	if err := requireID(id); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	t, err := scanTrip(r.db.QueryRow(ctx, tripSelect+` WHERE t.id = @id`, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", classify(err))
	}
	return t, nil
}

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (name, start_date, end_date, location, price, category, guide_id)
		VALUES (@name, @start_date, @end_date, @location, @price, @category, @guide_id)
		RETURNING id`

	var created domain.Trip
	err := InTx(ctx, r.db, func(tx pgx.Tx) error {
		guide, err := resolveGuide(ctx, tx, trip.GuideID)
		if err != nil {
			return err
		}

		var id int64
		if err := tx.QueryRow(ctx, q, tripArgs(trip)).Scan(&id); err != nil {
			return err
		}

		created = trip
		created.ID = id
		created.Guide = &guide
		return nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", classify(err))
	}
	return created, nil
}

func (r *pgTripRepo) Update(ctx context.Context, id int64, apply func(*domain.Trip) error) (domain.Trip, error) {
	if err := requireID(id); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}

	const q = `
		UPDATE trips
		SET name       = @name,
		    start_date = @start_date,
		    end_date   = @end_date,
		    location   = @location,
		    price      = @price,
		    category   = @category,
		    guide_id   = @guide_id,
		    updated_at = now()
		WHERE id = @id`

	var updated domain.Trip
	err := InTx(ctx, r.db, func(tx pgx.Tx) error {
		current, err := scanTrip(tx.QueryRow(ctx, tripSelect+` WHERE t.id = @id FOR UPDATE OF t`, pgx.NamedArgs{"id": id}))
		if err != nil {
			return err
		}
		if err := apply(&current); err != nil {
			return err
		}

		guide, err := resolveGuide(ctx, tx, current.GuideID)
		if err != nil {
			return err
		}

		args := tripArgs(current)
		args["id"] = id
		if _, err := tx.Exec(ctx, q, args); err != nil {
			return err
		}

		current.ID = id
		current.Guide = &guide
		updated = current
		return nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", classify(err))
	}
	return updated, nil
}

func (r *pgTripRepo) Delete(ctx context.Context, id int64) error {
	if err := requireID(id); err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if err := deleteByID(ctx, r.db, `DELETE FROM trips WHERE id = @id`, id); err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	return nil
}

func (r *pgTripRepo) TotalPricePerGuide(ctx context.Context) ([]domain.GuideTotal, error) {
	const q = `
		SELECT guide_id, SUM(price)
		FROM trips
		GROUP BY guide_id
		ORDER BY guide_id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.TotalPricePerGuide: %w", classify(err))
	}
	defer rows.Close()

	totals := []domain.GuideTotal{}
	for rows.Next() {
		var gt domain.GuideTotal
		if err := rows.Scan(&gt.GuideID, &gt.TotalPrice); err != nil {
			return nil, fmt.Errorf("repo.TripRepo.TotalPricePerGuide: scan: %w", classify(err))
		}
		totals = append(totals, gt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.TotalPricePerGuide: rows: %w", classify(err))
	}
	return totals, nil
}

// resolveGuide confirms the referenced guide exists and holds a key-share
// lock on it until the surrounding transaction ends, so the guide cannot be
// deleted between the check and the trip write.
func resolveGuide(ctx context.Context, tx pgx.Tx, guideID int64) (domain.Guide, error) {
	if guideID <= 0 {
		return domain.Guide{}, fmt.Errorf("%w: guide id must be a positive integer", domain.ErrValidation)
	}
	g, err := getGuide(ctx, tx, guideID, "FOR KEY SHARE")
	if err != nil {
		return domain.Guide{}, notFoundAs(err, "guide", guideID)
	}
	return g, nil
}

func queryTrips(ctx context.Context, conn db, q string, args pgx.NamedArgs) ([]domain.Trip, error) {
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
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", classify(err))
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", classify(err))
	}
	return trips, nil
}

func tripArgs(t domain.Trip) pgx.NamedArgs {
	return pgx.NamedArgs{
		"name":       t.Name,
		"start_date": t.StartDate, // nil becomes NULL
		"end_date":   t.EndDate,
		"location":   t.Location,
		"price":      t.Price,
		"category":   string(t.Category),
		"guide_id":   t.GuideID,
	}
}

// scanTrip maps one joined trips/guides row into a domain.Trip with its
// Guide attached.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t          domain.Trip
		g          domain.Guide
		start, end pgtype.Date
		category   string
	)

	err := s.Scan(&t.ID, &t.Name, &start, &end, &t.Location, &t.Price, &category, &t.GuideID,
		&g.ID, &g.Name, &g.Email, &g.Phone, &g.YearsOfExperience)
	if err != nil {
		return domain.Trip{}, err
	}

	t.StartDate = dateOrNil(start)
	t.EndDate = dateOrNil(end)
	t.Category = domain.TripCategory(category)
	t.Guide = &g
	return t, nil
}

func dateOrNil(d pgtype.Date) *time.Time {
	if !d.Valid {
		return nil
	}
	v := d.Time
	return &v
}
