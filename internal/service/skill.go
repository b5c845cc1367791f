package service

import (
	"context"
	"fmt"

	"github.com/pkordes/talentrail/internal/domain"
	"github.com/pkordes/talentrail/internal/repo"
)

// SkillService implements business logic for Skill operations.
type SkillService struct {
	skills repo.SkillRepo
}

// NewSkillService constructs a SkillService backed by the provided SkillRepo.
func NewSkillService(skills repo.SkillRepo) *SkillService {
	return &SkillService{skills: skills}
}

// Create validates and persists a new skill. A name already taken, in any
// letter case, yields domain.ErrConflict from the store.
func (s *SkillService) Create(ctx context.Context, sk domain.Skill) (domain.Skill, error) {
	if err := validateSkill(sk); err != nil {
		return domain.Skill{}, fmt.Errorf("service.SkillService.Create: %w", err)
	}
	created, err := s.skills.Create(ctx, sk)
	if err != nil {
		return domain.Skill{}, fmt.Errorf("service.SkillService.Create: %w", err)
	}
	return created, nil
}

func (s *SkillService) GetByID(ctx context.Context, id int64) (domain.Skill, error) {
	sk, err := s.skills.GetByID(ctx, id)
	if err != nil {
		return domain.Skill{}, fmt.Errorf("service.SkillService.GetByID: %w", err)
	}
	return sk, nil
}

func (s *SkillService) List(ctx context.Context) ([]domain.Skill, error) {
	sks, err := s.skills.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.SkillService.List: %w", err)
	}
	return sks, nil
}

// Update merges the provided fields into the stored skill.
func (s *SkillService) Update(ctx context.Context, id int64, p domain.SkillPatch) (domain.Skill, error) {
	if err := requireTextIfSet("name", p.Name); err != nil {
		return domain.Skill{}, fmt.Errorf("service.SkillService.Update: %w", err)
	}
	sk, err := s.skills.Update(ctx, id, func(sk *domain.Skill) error {
		p.Apply(sk)
		return validateSkill(*sk)
	})
	if err != nil {
		return domain.Skill{}, fmt.Errorf("service.SkillService.Update: %w", err)
	}
	return sk, nil
}

func (s *SkillService) Delete(ctx context.Context, id int64) error {
	if err := s.skills.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.SkillService.Delete: %w", err)
	}
	return nil
}

func validateSkill(sk domain.Skill) error {
	if err := requireText("name", sk.Name); err != nil {
		return err
	}
	if !sk.Category.Valid() {
		return fmt.Errorf("%w: category is required", domain.ErrValidation)
	}
	return nil
}
