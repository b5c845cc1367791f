package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pkordes/talentrail/internal/domain"
	"github.com/pkordes/talentrail/internal/dto"
)

// SkillStatsFetcher looks up market statistics for a batch of skill slugs.
type SkillStatsFetcher interface {
	FetchStats(ctx context.Context, slugs []string) ([]domain.SkillStats, error)
}

// PackingFetcher looks up the packing list of a lower-case trip category.
type PackingFetcher interface {
	FetchByCategory(ctx context.Context, category string) ([]domain.PackingItem, error)
}

// Enricher augments response DTOs with data from the external providers.
// Skill-stats enrichment is best-effort; packing-list enrichment is mandatory
// and fails the request when the provider does.
type Enricher struct {
	stats   SkillStatsFetcher
	packing PackingFetcher
	logger  *slog.Logger
}

// NewEnricher builds an Enricher. A nil stats fetcher disables stats
// enrichment.
func NewEnricher(stats SkillStatsFetcher, packing PackingFetcher, logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Enricher{stats: stats, packing: packing, logger: logger}
}

// EnrichCandidate fills PopularityScore and AverageSalary on every skill of c
// the provider knows, using one batched lookup. Failures are logged and
// never reach the caller; stats returned alongside a failure are still used.
func (e *Enricher) EnrichCandidate(ctx context.Context, c *dto.Candidate) {
	if c == nil || len(c.Skills) == 0 || e.stats == nil {
		return
	}

	bySlug, err := e.fetchBySlug(ctx, candidateSlugs(c.Skills))
	if err != nil {
		e.logger.WarnContext(ctx, "skill stats enrichment incomplete",
			"candidate_id", c.ID, "resolved", len(bySlug), "error", err)
	}

	for i := range c.Skills {
		st, ok := bySlug[skillSlug(c.Skills[i])]
		if !ok {
			continue
		}
		score, salary := st.PopularityScore, st.AverageSalary
		c.Skills[i].PopularityScore = &score
		c.Skills[i].AverageSalary = &salary
	}
}

// PackingItems returns the packing list for category. Any provider failure
// is returned wrapped in domain.ErrExternalService.
func (e *Enricher) PackingItems(ctx context.Context, category domain.TripCategory) ([]domain.PackingItem, error) {
	if e.packing == nil {
		return nil, fmt.Errorf("%w: packing provider not configured", domain.ErrExternalService)
	}
	items, err := e.packing.FetchByCategory(ctx, category.Lower())
	if err != nil {
		return nil, fmt.Errorf("packing list for %s: %w", category.Lower(), asExternal(err))
	}
	return items, nil
}

// PackingWeight sums a packing list into grams and kilograms. Negative
// weights count as zero and quantities below one count as one.
func PackingWeight(tripID int64, category domain.TripCategory, items []domain.PackingItem) domain.PackingWeight {
	grams := 0
	for _, it := range items {
		grams += max(0, it.WeightInGrams) * max(1, it.Quantity)
	}
	return domain.PackingWeight{
		TripID:           tripID,
		Category:         category,
		TotalWeightGrams: grams,
		TotalWeightKg:    float64(grams) / 1000,
	}
}

// TopByPopularity scores every candidate holding at least one skill by the
// mean popularity of the skills the provider reports, one lookup per
// candidate. The strictly highest mean wins and ties keep the candidate seen
// first. Candidates whose lookup fails or yields no scores are skipped.
// ok is false when no candidate could be scored.
func (e *Enricher) TopByPopularity(ctx context.Context, candidates []domain.Candidate) (top domain.TopCandidate, ok bool) {
	if e.stats == nil {
		return domain.TopCandidate{}, false
	}

	for _, c := range candidates {
		if len(c.Skills) == 0 {
			continue
		}
		slugs := make([]string, 0, len(c.Skills))
		for _, s := range c.Skills {
			slugs = append(slugs, dto.Slug(s.Name))
		}
		slugs = distinct(slugs)

		bySlug, err := e.fetchBySlug(ctx, slugs)
		if err != nil {
			e.logger.WarnContext(ctx, "skill stats unavailable for candidate, skipping",
				"candidate_id", c.ID, "error", err)
			continue
		}

		var sum, n int
		for _, slug := range slugs {
			if st, found := bySlug[slug]; found {
				sum += st.PopularityScore
				n++
			}
		}
		if n == 0 {
			continue
		}

		mean := float64(sum) / float64(n)
		if !ok || mean > top.AveragePopularityScore {
			top = domain.TopCandidate{CandidateID: c.ID, AveragePopularityScore: mean}
			ok = true
		}
	}
	return top, ok
}

// fetchBySlug indexes the fetched stats by slug. The map holds whatever the
// fetcher returned even when err is non-nil.
func (e *Enricher) fetchBySlug(ctx context.Context, slugs []string) (map[string]domain.SkillStats, error) {
	stats, err := e.stats.FetchStats(ctx, slugs)
	bySlug := make(map[string]domain.SkillStats, len(stats))
	for _, st := range stats {
		if _, dup := bySlug[st.Slug]; !dup {
			bySlug[st.Slug] = st
		}
	}
	return bySlug, err
}

func candidateSlugs(skills []dto.Skill) []string {
	slugs := make([]string, 0, len(skills))
	for _, s := range skills {
		slugs = append(slugs, skillSlug(s))
	}
	return distinct(slugs)
}

func skillSlug(s dto.Skill) string {
	if s.Slug != "" {
		return s.Slug
	}
	return dto.Slug(s.Name)
}

// asExternal makes sure err carries domain.ErrExternalService.
func asExternal(err error) error {
	if errors.Is(err, domain.ErrExternalService) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrExternalService, err)
}

func distinct(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
