// Package seed fills an empty database with sample guides, trips, skills and
// candidates, and optionally makes sure an admin account exists.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkordes/talentrail/internal/domain"
)

// GuideCreator creates guides.
type GuideCreator interface {
	Create(ctx context.Context, g domain.Guide) (domain.Guide, error)
}

// TripCreator creates trips.
type TripCreator interface {
	Create(ctx context.Context, t domain.Trip) (domain.Trip, error)
}

// SkillStore creates and lists skills.
type SkillStore interface {
	Create(ctx context.Context, s domain.Skill) (domain.Skill, error)
	List(ctx context.Context) ([]domain.Skill, error)
}

// CandidateStore creates candidates and links skills to them.
type CandidateStore interface {
	Create(ctx context.Context, c domain.Candidate) (domain.Candidate, error)
	LinkSkill(ctx context.Context, candidateID, skillID int64) (bool, error)
}

// AdminEnsurer makes sure an ADMIN account exists.
type AdminEnsurer interface {
	EnsureAdmin(ctx context.Context, username, password string) (domain.User, error)
}

// Populator writes the sample data set through the service layer, so every
// record passes the same validation as one created over HTTP.
type Populator struct {
	guides     GuideCreator
	trips      TripCreator
	skills     SkillStore
	candidates CandidateStore
	admins     AdminEnsurer
	log        *slog.Logger
	now        func() time.Time
}

// NewPopulator returns a Populator. admins may be nil when no admin account
// is wanted.
func NewPopulator(guides GuideCreator, trips TripCreator, skills SkillStore, candidates CandidateStore, admins AdminEnsurer, log *slog.Logger) *Populator {
	return &Populator{
		guides:     guides,
		trips:      trips,
		skills:     skills,
		candidates: candidates,
		admins:     admins,
		log:        log,
		now:        time.Now,
	}
}

// Result reports what Run created.
type Result struct {
	// Skipped is true when the database already held skills and nothing
	// was written.
	Skipped      bool
	GuideID      int64
	TripIDs      map[string]int64
	SkillIDs     map[string]int64
	CandidateIDs map[string]int64
}

type candidateSeed struct {
	candidate domain.Candidate
	skills    []string
}

func sampleSkills() []domain.Skill {
	return []domain.Skill{
		{Name: "Java", Description: "Programming language", Category: domain.SkillProgLang},
		{Name: "Docker", Description: "Containerization technology", Category: domain.SkillDevOps},
		{Name: "SQL", Description: "Database querying", Category: domain.SkillDB},
		{Name: "Project Management", Description: "Managing projects", Category: domain.SkillFrontend},
	}
}

func sampleCandidates() []candidateSeed {
	return []candidateSeed{
		{
			candidate: domain.Candidate{Name: "Alice Johnson", Phone: "123456789", Education: "B.Sc. in Computer Science"},
			skills:    []string{"Java", "Docker"},
		},
		{
			candidate: domain.Candidate{Name: "Bob Smith", Phone: "987654321", Education: "M.Sc. in Information Systems"},
			skills:    []string{"SQL", "Project Management"},
		},
	}
}

// Run writes the sample data unless skills already exist. The admin account
// is ensured either way when credentials are given.
func (p *Populator) Run(ctx context.Context, adminUser, adminPassword string) (Result, error) {
	if err := p.ensureAdmin(ctx, adminUser, adminPassword); err != nil {
		return Result{}, err
	}

	existing, err := p.skills.List(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("seed.Populator.Run: %w", err)
	}
	if len(existing) > 0 {
		p.log.InfoContext(ctx, "database already populated; skipping sample data", "skills", len(existing))
		return Result{Skipped: true}, nil
	}

	res := Result{
		TripIDs:      map[string]int64{},
		SkillIDs:     map[string]int64{},
		CandidateIDs: map[string]int64{},
	}

	if err := p.seedTrips(ctx, &res); err != nil {
		return Result{}, err
	}
	if err := p.seedCandidates(ctx, &res); err != nil {
		return Result{}, err
	}

	p.log.InfoContext(ctx, "sample data inserted",
		"trips", len(res.TripIDs),
		"skills", len(res.SkillIDs),
		"candidates", len(res.CandidateIDs),
	)
	return res, nil
}

func (p *Populator) ensureAdmin(ctx context.Context, username, password string) error {
	if p.admins == nil || username == "" || password == "" {
		return nil
	}
	u, err := p.admins.EnsureAdmin(ctx, username, password)
	if err != nil {
		return fmt.Errorf("seed.Populator.ensureAdmin: %w", err)
	}
	p.log.InfoContext(ctx, "admin account ensured", "username", u.Username)
	return nil
}

func (p *Populator) seedTrips(ctx context.Context, res *Result) error {
	guide, err := p.guides.Create(ctx, domain.Guide{
		Name:              "Test Guide",
		Email:             "guide@test.com",
		Phone:             "12345678",
		YearsOfExperience: 5,
	})
	if err != nil {
		return fmt.Errorf("seed.Populator.seedTrips: guide: %w", err)
	}
	res.GuideID = guide.ID

	today := p.now().UTC().Truncate(24 * time.Hour)
	days := func(n int) *time.Time {
		d := today.AddDate(0, 0, n)
		return &d
	}
	trips := []domain.Trip{
		{
			Name: "Sunny Beach", StartDate: days(0), EndDate: days(3),
			Location: "55.6761,12.5683", Price: 3000, Category: domain.TripBeach, GuideID: guide.ID,
		},
		{
			Name: "Deep Forest", StartDate: days(5), EndDate: days(8),
			Location: "56.0000,11.0000", Price: 4500, Category: domain.TripForest, GuideID: guide.ID,
		},
	}
	for _, t := range trips {
		created, err := p.trips.Create(ctx, t)
		if err != nil {
			return fmt.Errorf("seed.Populator.seedTrips: %s: %w", t.Name, err)
		}
		res.TripIDs[created.Name] = created.ID
	}
	return nil
}

func (p *Populator) seedCandidates(ctx context.Context, res *Result) error {
	for _, s := range sampleSkills() {
		created, err := p.skills.Create(ctx, s)
		if err != nil {
			return fmt.Errorf("seed.Populator.seedCandidates: skill %s: %w", s.Name, err)
		}
		res.SkillIDs[created.Name] = created.ID
	}

	for _, cs := range sampleCandidates() {
		created, err := p.candidates.Create(ctx, cs.candidate)
		if err != nil {
			return fmt.Errorf("seed.Populator.seedCandidates: %s: %w", cs.candidate.Name, err)
		}
		res.CandidateIDs[created.Name] = created.ID

		for _, name := range cs.skills {
			ok, err := p.candidates.LinkSkill(ctx, created.ID, res.SkillIDs[name])
			if err != nil {
				return fmt.Errorf("seed.Populator.seedCandidates: link %s: %w", name, err)
			}
			if !ok {
				return fmt.Errorf("seed.Populator.seedCandidates: link %s to %s: %w", name, created.Name, domain.ErrNotFound)
			}
		}
	}
	return nil
}
