package service_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/pkordes/talentrail/internal/domain"
	"github.com/pkordes/talentrail/internal/repo"
	"github.com/pkordes/talentrail/internal/service"
)

// The mocks below are hand-written test doubles. Each method is a function
// field; set only the ones a test needs.

type mockGuideRepo struct {
	list    func(ctx context.Context) ([]domain.Guide, error)
	getByID func(ctx context.Context, id int64) (domain.Guide, error)
	create  func(ctx context.Context, g domain.Guide) (domain.Guide, error)
	update  func(ctx context.Context, id int64, apply func(*domain.Guide) error) (domain.Guide, error)
	delete  func(ctx context.Context, id int64) error
}

func (m *mockGuideRepo) List(ctx context.Context) ([]domain.Guide, error) { return m.list(ctx) }
func (m *mockGuideRepo) GetByID(ctx context.Context, id int64) (domain.Guide, error) {
	return m.getByID(ctx, id)
}
func (m *mockGuideRepo) Create(ctx context.Context, g domain.Guide) (domain.Guide, error) {
	return m.create(ctx, g)
}
func (m *mockGuideRepo) Update(ctx context.Context, id int64, apply func(*domain.Guide) error) (domain.Guide, error) {
	return m.update(ctx, id, apply)
}
func (m *mockGuideRepo) Delete(ctx context.Context, id int64) error { return m.delete(ctx, id) }

var _ repo.GuideRepo = (*mockGuideRepo)(nil)

type mockTripRepo struct {
	list           func(ctx context.Context) ([]domain.Trip, error)
	listByCategory func(ctx context.Context, c domain.TripCategory) ([]domain.Trip, error)
	getByID        func(ctx context.Context, id int64) (domain.Trip, error)
	create         func(ctx context.Context, t domain.Trip) (domain.Trip, error)
	update         func(ctx context.Context, id int64, apply func(*domain.Trip) error) (domain.Trip, error)
	delete         func(ctx context.Context, id int64) error
	totals         func(ctx context.Context) ([]domain.GuideTotal, error)
}

func (m *mockTripRepo) List(ctx context.Context) ([]domain.Trip, error) { return m.list(ctx) }
func (m *mockTripRepo) ListByCategory(ctx context.Context, c domain.TripCategory) ([]domain.Trip, error) {
	return m.listByCategory(ctx, c)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripRepo) Update(ctx context.Context, id int64, apply func(*domain.Trip) error) (domain.Trip, error) {
	return m.update(ctx, id, apply)
}
func (m *mockTripRepo) Delete(ctx context.Context, id int64) error { return m.delete(ctx, id) }
func (m *mockTripRepo) TotalPricePerGuide(ctx context.Context) ([]domain.GuideTotal, error) {
	return m.totals(ctx)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockSkillRepo struct {
	list    func(ctx context.Context) ([]domain.Skill, error)
	getByID func(ctx context.Context, id int64) (domain.Skill, error)
	create  func(ctx context.Context, s domain.Skill) (domain.Skill, error)
	update  func(ctx context.Context, id int64, apply func(*domain.Skill) error) (domain.Skill, error)
	delete  func(ctx context.Context, id int64) error
}

func (m *mockSkillRepo) List(ctx context.Context) ([]domain.Skill, error) { return m.list(ctx) }
func (m *mockSkillRepo) GetByID(ctx context.Context, id int64) (domain.Skill, error) {
	return m.getByID(ctx, id)
}
func (m *mockSkillRepo) Create(ctx context.Context, s domain.Skill) (domain.Skill, error) {
	return m.create(ctx, s)
}
func (m *mockSkillRepo) Update(ctx context.Context, id int64, apply func(*domain.Skill) error) (domain.Skill, error) {
	return m.update(ctx, id, apply)
}
func (m *mockSkillRepo) Delete(ctx context.Context, id int64) error { return m.delete(ctx, id) }

var _ repo.SkillRepo = (*mockSkillRepo)(nil)

type mockCandidateRepo struct {
	list                func(ctx context.Context) ([]domain.Candidate, error)
	listBySkillCategory func(ctx context.Context, c domain.SkillCategory) ([]domain.Candidate, error)
	getByID             func(ctx context.Context, id int64) (domain.Candidate, error)
	create              func(ctx context.Context, c domain.Candidate) (domain.Candidate, error)
	update              func(ctx context.Context, id int64, apply func(*domain.Candidate) error) (domain.Candidate, error)
	addSkill            func(ctx context.Context, candidateID, skillID int64) error
	delete              func(ctx context.Context, id int64) error
}

func (m *mockCandidateRepo) List(ctx context.Context) ([]domain.Candidate, error) { return m.list(ctx) }
func (m *mockCandidateRepo) ListBySkillCategory(ctx context.Context, c domain.SkillCategory) ([]domain.Candidate, error) {
	return m.listBySkillCategory(ctx, c)
}
func (m *mockCandidateRepo) GetByID(ctx context.Context, id int64) (domain.Candidate, error) {
	return m.getByID(ctx, id)
}
func (m *mockCandidateRepo) Create(ctx context.Context, c domain.Candidate) (domain.Candidate, error) {
	return m.create(ctx, c)
}
func (m *mockCandidateRepo) Update(ctx context.Context, id int64, apply func(*domain.Candidate) error) (domain.Candidate, error) {
	return m.update(ctx, id, apply)
}
func (m *mockCandidateRepo) AddSkill(ctx context.Context, candidateID, skillID int64) error {
	return m.addSkill(ctx, candidateID, skillID)
}
func (m *mockCandidateRepo) Delete(ctx context.Context, id int64) error { return m.delete(ctx, id) }

var _ repo.CandidateRepo = (*mockCandidateRepo)(nil)

type mockUserRepo struct {
	create        func(ctx context.Context, u domain.User) (domain.User, error)
	getByUsername func(ctx context.Context, username string) (domain.User, error)
	addRole       func(ctx context.Context, username string, role domain.Role) (domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	return m.create(ctx, u)
}
func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return m.getByUsername(ctx, username)
}
func (m *mockUserRepo) AddRole(ctx context.Context, username string, role domain.Role) (domain.User, error) {
	return m.addRole(ctx, username, role)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

type mockStats struct {
	fetch func(ctx context.Context, slugs []string) ([]domain.SkillStats, error)
	calls int
}

func (m *mockStats) FetchStats(ctx context.Context, slugs []string) ([]domain.SkillStats, error) {
	m.calls++
	return m.fetch(ctx, slugs)
}

var _ service.SkillStatsFetcher = (*mockStats)(nil)

type mockPacking struct {
	fetch func(ctx context.Context, category string) ([]domain.PackingItem, error)
}

func (m *mockPacking) FetchByCategory(ctx context.Context, category string) ([]domain.PackingItem, error) {
	return m.fetch(ctx, category)
}

var _ service.PackingFetcher = (*mockPacking)(nil)

// ---- shared fixtures -------------------------------------------------------

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakePackingItems mirrors the beach list used across tests: 300 g x 2 and
// 200 g x 1, 800 g in total.
func fakePackingItems() []domain.PackingItem {
	return []domain.PackingItem{
		{Name: "Towel", WeightInGrams: 300, Quantity: 2, Category: "beach"},
		{Name: "Sunscreen", WeightInGrams: 200, Quantity: 1, Category: "beach"},
	}
}

func fixedPacking() *mockPacking {
	return &mockPacking{fetch: func(context.Context, string) ([]domain.PackingItem, error) {
		return fakePackingItems(), nil
	}}
}

// statsTable returns a fetcher answering from a fixed slug table.
func statsTable(table map[string]domain.SkillStats) *mockStats {
	return &mockStats{fetch: func(_ context.Context, slugs []string) ([]domain.SkillStats, error) {
		var out []domain.SkillStats
		for _, s := range slugs {
			if st, ok := table[s]; ok {
				out = append(out, st)
			}
		}
		return out, nil
	}}
}
