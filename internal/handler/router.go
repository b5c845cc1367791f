package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/talentrail/internal/domain"
	"github.com/pkordes/talentrail/internal/middleware"
)

// BasePath prefixes every API route.
const BasePath = "/api/v1"

// RouterOptions configures the middleware stack built by NewRouter.
type RouterOptions struct {
	Tokens       middleware.TokenVerifier
	CORSOrigins  []string
	MaxBodyBytes int64
}

// NewRouter returns the complete HTTP handler: the middleware stack
// followed by the routes mounted under BasePath.
//
// Middleware order: RequestID → RealIP → SlogLogger → Recoverer → CORS →
// MaxBodySize → Authenticate. The logger wraps the recoverer so a recovered
// panic is still logged with its 500 status.
func NewRouter(s *Server, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(s.log))
	r.Use(middleware.NewRecoverer(s.log))
	if len(opts.CORSOrigins) > 0 {
		r.Use(middleware.NewCORSHandler(opts.CORSOrigins))
	}
	if opts.MaxBodyBytes > 0 {
		r.Use(middleware.NewMaxBodySizeHandler(opts.MaxBodyBytes))
	}
	r.Use(middleware.Authenticate(opts.Tokens))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody("not_found", "no route for "+r.Method+" "+r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("method_not_allowed", r.Method+" is not allowed on "+r.URL.Path))
	})

	r.Route(BasePath, s.Routes)
	return r
}

// Routes registers every endpoint on r together with its role guard.
func (s *Server) Routes(r chi.Router) {
	user := middleware.RequireRole(domain.RoleUser)
	admin := middleware.RequireRole(domain.RoleAdmin)
	member := middleware.RequireRole(domain.RoleUser, domain.RoleAdmin)

	r.Get("/healthz", s.getHealth)
	r.Get("/openapi.yaml", s.getOpenAPI)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.register)
		r.Post("/login", s.login)
	})

	r.Route("/candidate", func(r chi.Router) {
		r.Get("/", s.listCandidates)
		r.Get("/reports/top-by-popularity", s.topCandidate)
		r.Get("/{id}", s.getCandidate)
		r.With(member).Post("/", s.createCandidate)
		r.With(member).Put("/{id}", s.updateCandidate)
		r.With(member).Delete("/{id}", s.deleteCandidate)
		r.With(member).Put("/{id}/skills/{skillId}", s.linkSkill)
	})

	r.Route("/skill", func(r chi.Router) {
		r.Get("/", s.listSkills)
		r.Get("/{id}", s.getSkill)
		r.With(member).Post("/", s.createSkill)
		r.With(member).Put("/{id}", s.updateSkill)
		r.With(member).Delete("/{id}", s.deleteSkill)
	})

	r.Route("/guide", func(r chi.Router) {
		r.Get("/", s.listGuides)
		r.Get("/{id}", s.getGuide)
		r.With(member).Post("/", s.createGuide)
		r.With(member).Put("/{id}", s.updateGuide)
		r.With(member).Delete("/{id}", s.deleteGuide)
	})

	r.Route("/trip", func(r chi.Router) {
		r.Get("/", s.listTrips)
		r.With(admin).Get("/guides/totalprice", s.totalPricePerGuide)
		r.Get("/{id}", s.getTrip)
		r.Get("/{id}/packing/weight", s.packingWeight)
		r.With(member).Post("/", s.createTrip)
		r.With(member).Put("/{id}", s.updateTrip)
		r.With(user).Delete("/{id}", s.deleteTrip)
		r.With(user).Put("/{id}/guides/{guideId}", s.linkGuide)
	})
}
