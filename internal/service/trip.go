package service

import (
	"context"
	"fmt"

	"github.com/pkordes/talentrail/internal/domain"
	"github.com/pkordes/talentrail/internal/dto"
	"github.com/pkordes/talentrail/internal/repo"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	trips    repo.TripRepo
	enricher *Enricher
}

// NewTripService constructs a TripService. The enricher supplies packing
// lists for single-trip reads and weight reports.
func NewTripService(trips repo.TripRepo, enricher *Enricher) *TripService {
	return &TripService{trips: trips, enricher: enricher}
}

// Create validates and persists a new trip. The referenced guide is
// resolved by the store in the same transaction; an unknown guide yields
// domain.ErrNotFound and nothing is written.
func (s *TripService) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	if err := validateTrip(t); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	created, err := s.trips.Create(ctx, t)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single trip with its guide attached.
func (s *TripService) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	t, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return t, nil
}

// GetEnriched returns the trip DTO with its packing list filled in. The
// packing list is mandatory: a provider failure fails the whole read with
// domain.ErrExternalService.
func (s *TripService) GetEnriched(ctx context.Context, id int64) (dto.Trip, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return dto.Trip{}, err
	}
	items, err := s.enricher.PackingItems(ctx, t.Category)
	if err != nil {
		return dto.Trip{}, fmt.Errorf("service.TripService.GetEnriched: %w", err)
	}

	out := dto.TripFromDomain(t)
	out.PackingItems = dto.PackingItemsFromDomain(items)
	return out, nil
}

// List returns all trips.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	ts, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	return ts, nil
}

// ListByCategory returns the trips of one category.
func (s *TripService) ListByCategory(ctx context.Context, category domain.TripCategory) ([]domain.Trip, error) {
	if !category.Valid() {
		_, err := domain.ParseTripCategory(string(category))
		return nil, fmt.Errorf("service.TripService.ListByCategory: %w", err)
	}
	ts, err := s.trips.ListByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListByCategory: %w", err)
	}
	return ts, nil
}

// Update merges the provided fields into the stored trip, re-validates the
// result and, when the guide id changes, re-resolves the guide.
func (s *TripService) Update(ctx context.Context, id int64, p domain.TripPatch) (domain.Trip, error) {
	if err := validateTripPatch(p); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	t, err := s.trips.Update(ctx, id, func(t *domain.Trip) error {
		p.Apply(t)
		return validateTrip(*t)
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return t, nil
}

// Delete removes a trip.
func (s *TripService) Delete(ctx context.Context, id int64) error {
	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// LinkGuide re-points trip tripID at guide guideID. Either id failing to
// resolve yields domain.ErrNotFound and the trip is left unchanged.
func (s *TripService) LinkGuide(ctx context.Context, tripID, guideID int64) (domain.Trip, error) {
	if guideID <= 0 {
		return domain.Trip{}, fmt.Errorf("service.TripService.LinkGuide: %w: guide id must be a positive integer", domain.ErrValidation)
	}
	t, err := s.trips.Update(ctx, tripID, func(t *domain.Trip) error {
		domain.TripPatch{GuideID: &guideID}.Apply(t)
		return nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.LinkGuide: %w", err)
	}
	return t, nil
}

// TotalPricePerGuide returns the summed trip price of every guide with trips.
func (s *TripService) TotalPricePerGuide(ctx context.Context) ([]domain.GuideTotal, error) {
	totals, err := s.trips.TotalPricePerGuide(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.TotalPricePerGuide: %w", err)
	}
	return totals, nil
}

// PackingWeight totals the packing list of one trip.
func (s *TripService) PackingWeight(ctx context.Context, id int64) (domain.PackingWeight, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.PackingWeight{}, err
	}
	items, err := s.enricher.PackingItems(ctx, t.Category)
	if err != nil {
		return domain.PackingWeight{}, fmt.Errorf("service.TripService.PackingWeight: %w", err)
	}
	return PackingWeight(t.ID, t.Category, items), nil
}

func validateTrip(t domain.Trip) error {
	if err := requireText("name", t.Name); err != nil {
		return err
	}
	if !t.Category.Valid() {
		return fmt.Errorf("%w: category is required", domain.ErrValidation)
	}
	if t.GuideID <= 0 {
		return fmt.Errorf("%w: guide id is required", domain.ErrValidation)
	}
	if t.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	if t.StartDate != nil && t.EndDate != nil && t.EndDate.Before(*t.StartDate) {
		return fmt.Errorf("%w: endDate must not be before startDate", domain.ErrValidation)
	}
	return nil
}

func validateTripPatch(p domain.TripPatch) error {
	if err := requireTextIfSet("name", p.Name); err != nil {
		return err
	}
	if p.Price != nil && *p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	if p.GuideID != nil && *p.GuideID <= 0 {
		return fmt.Errorf("%w: guide id must be a positive integer", domain.ErrValidation)
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return fmt.Errorf("%w: endDate must not be before startDate", domain.ErrValidation)
	}
	return nil
}
