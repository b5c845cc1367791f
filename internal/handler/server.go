// Package handler implements the HTTP surface of the Talentrail API.
// All handlers are methods on Server. Methods are split into
// resource-specific files (guide.go, trip.go, ...) but share the same
// Server struct so they can reach its services and logger.
package handler

import (
	"context"
	"log/slog"

	"github.com/pkordes/talentrail/internal/domain"
	"github.com/pkordes/talentrail/internal/dto"
)

// The Servicer interfaces are declared here, in the consumer package, so
// handler tests can inject mocks without a database.

// GuideServicer defines the guide operations the handlers depend on.
type GuideServicer interface {
	Create(ctx context.Context, g domain.Guide) (domain.Guide, error)
	GetByID(ctx context.Context, id int64) (domain.Guide, error)
	List(ctx context.Context) ([]domain.Guide, error)
	Update(ctx context.Context, id int64, p domain.GuidePatch) (domain.Guide, error)
	Delete(ctx context.Context, id int64) error
}

// SkillServicer defines the skill operations the handlers depend on.
type SkillServicer interface {
	Create(ctx context.Context, s domain.Skill) (domain.Skill, error)
	GetByID(ctx context.Context, id int64) (domain.Skill, error)
	List(ctx context.Context) ([]domain.Skill, error)
	Update(ctx context.Context, id int64, p domain.SkillPatch) (domain.Skill, error)
	Delete(ctx context.Context, id int64) error
}

// TripServicer defines the trip operations the handlers depend on.
type TripServicer interface {
	Create(ctx context.Context, t domain.Trip) (domain.Trip, error)
	GetEnriched(ctx context.Context, id int64) (dto.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	ListByCategory(ctx context.Context, category domain.TripCategory) ([]domain.Trip, error)
	Update(ctx context.Context, id int64, p domain.TripPatch) (domain.Trip, error)
	Delete(ctx context.Context, id int64) error
	LinkGuide(ctx context.Context, tripID, guideID int64) (domain.Trip, error)
	TotalPricePerGuide(ctx context.Context) ([]domain.GuideTotal, error)
	PackingWeight(ctx context.Context, id int64) (domain.PackingWeight, error)
}

// CandidateServicer defines the candidate operations the handlers depend on.
type CandidateServicer interface {
	Create(ctx context.Context, c domain.Candidate) (domain.Candidate, error)
	GetEnriched(ctx context.Context, id int64) (dto.Candidate, error)
	List(ctx context.Context) ([]domain.Candidate, error)
	ListBySkillCategory(ctx context.Context, category domain.SkillCategory) ([]domain.Candidate, error)
	Update(ctx context.Context, id int64, p domain.CandidatePatch) (domain.Candidate, error)
	Delete(ctx context.Context, id int64) error
	LinkSkill(ctx context.Context, candidateID, skillID int64) (bool, error)
	TopByPopularity(ctx context.Context) (domain.TopCandidate, bool, error)
}

// AuthServicer defines the account operations the handlers depend on.
type AuthServicer interface {
	Register(ctx context.Context, username, password string) (domain.User, string, error)
	Login(ctx context.Context, username, password string) (domain.User, string, error)
}

// Services bundles the dependencies of a Server.
type Services struct {
	Guides     GuideServicer
	Skills     SkillServicer
	Trips      TripServicer
	Candidates CandidateServicer
	Auth       AuthServicer
}

// Server serves every API endpoint.
type Server struct {
	guides     GuideServicer
	skills     SkillServicer
	trips      TripServicer
	candidates CandidateServicer
	auth       AuthServicer
	log        *slog.Logger
}

// NewServer constructs the Server with all its dependencies. A nil logger
// falls back to slog.Default.
func NewServer(svc Services, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		guides:     svc.Guides,
		skills:     svc.Skills,
		trips:      svc.Trips,
		candidates: svc.Candidates,
		auth:       svc.Auth,
		log:        log,
	}
}
