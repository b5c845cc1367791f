package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pkordes/talentrail/internal/domain"
	"github.com/pkordes/talentrail/internal/dto"
	"github.com/pkordes/talentrail/internal/repo"
)

// CandidateService implements business logic for Candidate operations,
// including skill linking and the popularity report.
type CandidateService struct {
	candidates repo.CandidateRepo
	enricher   *Enricher
}

// NewCandidateService constructs a CandidateService.
func NewCandidateService(candidates repo.CandidateRepo, enricher *Enricher) *CandidateService {
	return &CandidateService{candidates: candidates, enricher: enricher}
}

// Create validates and persists a new candidate. Skills are never created
// or linked here.
func (s *CandidateService) Create(ctx context.Context, c domain.Candidate) (domain.Candidate, error) {
	if err := validateCandidate(c); err != nil {
		return domain.Candidate{}, fmt.Errorf("service.CandidateService.Create: %w", err)
	}
	c.Skills = nil
	created, err := s.candidates.Create(ctx, c)
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("service.CandidateService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single candidate with its skill set.
func (s *CandidateService) GetByID(ctx context.Context, id int64) (domain.Candidate, error) {
	c, err := s.candidates.GetByID(ctx, id)
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("service.CandidateService.GetByID: %w", err)
	}
	return c, nil
}

// GetEnriched returns the candidate DTO with skill statistics merged in
// where the provider has them. Provider failures do not fail the read.
func (s *CandidateService) GetEnriched(ctx context.Context, id int64) (dto.Candidate, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return dto.Candidate{}, err
	}
	out := dto.CandidateFromDomain(c)
	s.enricher.EnrichCandidate(ctx, &out)
	return out, nil
}

// List returns all candidates.
func (s *CandidateService) List(ctx context.Context) ([]domain.Candidate, error) {
	cs, err := s.candidates.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.CandidateService.List: %w", err)
	}
	return cs, nil
}

// ListBySkillCategory returns the candidates holding at least one skill of
// the given category.
func (s *CandidateService) ListBySkillCategory(ctx context.Context, category domain.SkillCategory) ([]domain.Candidate, error) {
	if !category.Valid() {
		_, err := domain.ParseSkillCategory(string(category))
		return nil, fmt.Errorf("service.CandidateService.ListBySkillCategory: %w", err)
	}
	cs, err := s.candidates.ListBySkillCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("service.CandidateService.ListBySkillCategory: %w", err)
	}
	return cs, nil
}

// Update merges the provided scalar fields into the stored candidate. The
// skill set is left untouched.
func (s *CandidateService) Update(ctx context.Context, id int64, p domain.CandidatePatch) (domain.Candidate, error) {
	err := firstErr(
		requireTextIfSet("name", p.Name),
		requireTextIfSet("phone", p.Phone),
		requireTextIfSet("educationBackground", p.Education),
	)
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("service.CandidateService.Update: %w", err)
	}
	c, err := s.candidates.Update(ctx, id, func(c *domain.Candidate) error {
		p.Apply(c)
		return validateCandidate(*c)
	})
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("service.CandidateService.Update: %w", err)
	}
	return c, nil
}

// Delete removes a candidate and its skill links.
func (s *CandidateService) Delete(ctx context.Context, id int64) error {
	if err := s.candidates.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.CandidateService.Delete: %w", err)
	}
	return nil
}

// LinkSkill adds skill skillID to candidate candidateID. It reports false,
// without an error, when either side does not exist. Linking a skill the
// candidate already holds succeeds and changes nothing.
func (s *CandidateService) LinkSkill(ctx context.Context, candidateID, skillID int64) (bool, error) {
	err := s.candidates.AddSkill(ctx, candidateID, skillID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("service.CandidateService.LinkSkill: %w", err)
	}
	return true, nil
}

// TopByPopularity finds the candidate whose skills have the highest mean
// popularity. ok is false when no candidate could be scored.
func (s *CandidateService) TopByPopularity(ctx context.Context) (domain.TopCandidate, bool, error) {
	cs, err := s.candidates.List(ctx)
	if err != nil {
		return domain.TopCandidate{}, false, fmt.Errorf("service.CandidateService.TopByPopularity: %w", err)
	}
	top, ok := s.enricher.TopByPopularity(ctx, cs)
	return top, ok, nil
}

func validateCandidate(c domain.Candidate) error {
	return firstErr(
		requireText("name", c.Name),
		requireText("phone", c.Phone),
		requireText("educationBackground", c.Education),
	)
}
