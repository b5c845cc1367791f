package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pkordes/talentrail/internal/domain"
	"github.com/pkordes/talentrail/internal/repo"
)

// GuideService implements business logic for Guide operations.
type GuideService struct {
	guides repo.GuideRepo
}

// NewGuideService constructs a GuideService backed by the provided GuideRepo.
func NewGuideService(guides repo.GuideRepo) *GuideService {
	return &GuideService{guides: guides}
}

// Create validates and persists a new guide.
func (s *GuideService) Create(ctx context.Context, g domain.Guide) (domain.Guide, error) {
	if err := validateGuide(g); err != nil {
		return domain.Guide{}, fmt.Errorf("service.GuideService.Create: %w", err)
	}
	created, err := s.guides.Create(ctx, g)
	if err != nil {
		return domain.Guide{}, fmt.Errorf("service.GuideService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single guide.
func (s *GuideService) GetByID(ctx context.Context, id int64) (domain.Guide, error) {
	g, err := s.guides.GetByID(ctx, id)
	if err != nil {
		return domain.Guide{}, fmt.Errorf("service.GuideService.GetByID: %w", err)
	}
	return g, nil
}

// List returns all guides.
func (s *GuideService) List(ctx context.Context) ([]domain.Guide, error) {
	gs, err := s.guides.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.GuideService.List: %w", err)
	}
	return gs, nil
}

// Update merges the provided fields into the stored guide.
func (s *GuideService) Update(ctx context.Context, id int64, p domain.GuidePatch) (domain.Guide, error) {
	if err := firstErr(requireTextIfSet("name", p.Name), requireTextIfSet("email", p.Email)); err != nil {
		return domain.Guide{}, fmt.Errorf("service.GuideService.Update: %w", err)
	}
	g, err := s.guides.Update(ctx, id, func(g *domain.Guide) error {
		p.Apply(g)
		return validateGuide(*g)
	})
	if err != nil {
		return domain.Guide{}, fmt.Errorf("service.GuideService.Update: %w", err)
	}
	return g, nil
}

// Delete removes a guide. A guide that still leads trips cannot be removed
// and yields domain.ErrConflict.
func (s *GuideService) Delete(ctx context.Context, id int64) error {
	if err := s.guides.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return fmt.Errorf("service.GuideService.Delete: %w: guide %d still leads trips", domain.ErrConflict, id)
		}
		return fmt.Errorf("service.GuideService.Delete: %w", err)
	}
	return nil
}

func validateGuide(g domain.Guide) error {
	if err := firstErr(requireText("name", g.Name), requireText("email", g.Email)); err != nil {
		return err
	}
	if !strings.Contains(g.Email, "@") {
		return fmt.Errorf("%w: email %q is not a valid address", domain.ErrValidation, g.Email)
	}
	if g.YearsOfExperience < 0 {
		return fmt.Errorf("%w: yearsOfExperience must not be negative", domain.ErrValidation)
	}
	return nil
}
