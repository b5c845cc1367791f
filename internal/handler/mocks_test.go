package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/talentrail/internal/auth"
	"github.com/pkordes/talentrail/internal/domain"
	"github.com/pkordes/talentrail/internal/dto"
	"github.com/pkordes/talentrail/internal/handler"
)

// The mocks below are test doubles for the handler.Servicer interfaces.
// Set only the function fields a test needs; calling an unset one panics,
// which the router turns into a 500 and fails the status assertion.

type mockGuides struct {
	create  func(ctx context.Context, g domain.Guide) (domain.Guide, error)
	getByID func(ctx context.Context, id int64) (domain.Guide, error)
	list    func(ctx context.Context) ([]domain.Guide, error)
	update  func(ctx context.Context, id int64, p domain.GuidePatch) (domain.Guide, error)
	delete  func(ctx context.Context, id int64) error
}

func (m *mockGuides) Create(ctx context.Context, g domain.Guide) (domain.Guide, error) {
	return m.create(ctx, g)
}
func (m *mockGuides) GetByID(ctx context.Context, id int64) (domain.Guide, error) {
	return m.getByID(ctx, id)
}
func (m *mockGuides) List(ctx context.Context) ([]domain.Guide, error) { return m.list(ctx) }
func (m *mockGuides) Update(ctx context.Context, id int64, p domain.GuidePatch) (domain.Guide, error) {
	return m.update(ctx, id, p)
}
func (m *mockGuides) Delete(ctx context.Context, id int64) error { return m.delete(ctx, id) }

var _ handler.GuideServicer = (*mockGuides)(nil)

type mockSkills struct {
	create  func(ctx context.Context, s domain.Skill) (domain.Skill, error)
	getByID func(ctx context.Context, id int64) (domain.Skill, error)
	list    func(ctx context.Context) ([]domain.Skill, error)
	update  func(ctx context.Context, id int64, p domain.SkillPatch) (domain.Skill, error)
	delete  func(ctx context.Context, id int64) error
}

func (m *mockSkills) Create(ctx context.Context, s domain.Skill) (domain.Skill, error) {
	return m.create(ctx, s)
}
func (m *mockSkills) GetByID(ctx context.Context, id int64) (domain.Skill, error) {
	return m.getByID(ctx, id)
}
func (m *mockSkills) List(ctx context.Context) ([]domain.Skill, error) { return m.list(ctx) }
func (m *mockSkills) Update(ctx context.Context, id int64, p domain.SkillPatch) (domain.Skill, error) {
	return m.update(ctx, id, p)
}
func (m *mockSkills) Delete(ctx context.Context, id int64) error { return m.delete(ctx, id) }

var _ handler.SkillServicer = (*mockSkills)(nil)

type mockTrips struct {
	create         func(ctx context.Context, t domain.Trip) (domain.Trip, error)
	getEnriched    func(ctx context.Context, id int64) (dto.Trip, error)
	list           func(ctx context.Context) ([]domain.Trip, error)
	listByCategory func(ctx context.Context, c domain.TripCategory) ([]domain.Trip, error)
	update         func(ctx context.Context, id int64, p domain.TripPatch) (domain.Trip, error)
	delete         func(ctx context.Context, id int64) error
	linkGuide      func(ctx context.Context, tripID, guideID int64) (domain.Trip, error)
	totals         func(ctx context.Context) ([]domain.GuideTotal, error)
	packingWeight  func(ctx context.Context, id int64) (domain.PackingWeight, error)
}

func (m *mockTrips) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTrips) GetEnriched(ctx context.Context, id int64) (dto.Trip, error) {
	return m.getEnriched(ctx, id)
}
func (m *mockTrips) List(ctx context.Context) ([]domain.Trip, error) { return m.list(ctx) }
func (m *mockTrips) ListByCategory(ctx context.Context, c domain.TripCategory) ([]domain.Trip, error) {
	return m.listByCategory(ctx, c)
}
func (m *mockTrips) Update(ctx context.Context, id int64, p domain.TripPatch) (domain.Trip, error) {
	return m.update(ctx, id, p)
}
func (m *mockTrips) Delete(ctx context.Context, id int64) error { return m.delete(ctx, id) }
func (m *mockTrips) LinkGuide(ctx context.Context, tripID, guideID int64) (domain.Trip, error) {
	return m.linkGuide(ctx, tripID, guideID)
}
func (m *mockTrips) TotalPricePerGuide(ctx context.Context) ([]domain.GuideTotal, error) {
	return m.totals(ctx)
}
func (m *mockTrips) PackingWeight(ctx context.Context, id int64) (domain.PackingWeight, error) {
	return m.packingWeight(ctx, id)
}

var _ handler.TripServicer = (*mockTrips)(nil)

type mockCandidates struct {
	create              func(ctx context.Context, c domain.Candidate) (domain.Candidate, error)
	getEnriched         func(ctx context.Context, id int64) (dto.Candidate, error)
	list                func(ctx context.Context) ([]domain.Candidate, error)
	listBySkillCategory func(ctx context.Context, c domain.SkillCategory) ([]domain.Candidate, error)
	update              func(ctx context.Context, id int64, p domain.CandidatePatch) (domain.Candidate, error)
	delete              func(ctx context.Context, id int64) error
	linkSkill           func(ctx context.Context, candidateID, skillID int64) (bool, error)
	top                 func(ctx context.Context) (domain.TopCandidate, bool, error)
}

func (m *mockCandidates) Create(ctx context.Context, c domain.Candidate) (domain.Candidate, error) {
	return m.create(ctx, c)
}
func (m *mockCandidates) GetEnriched(ctx context.Context, id int64) (dto.Candidate, error) {
	return m.getEnriched(ctx, id)
}
func (m *mockCandidates) List(ctx context.Context) ([]domain.Candidate, error) { return m.list(ctx) }
func (m *mockCandidates) ListBySkillCategory(ctx context.Context, c domain.SkillCategory) ([]domain.Candidate, error) {
	return m.listBySkillCategory(ctx, c)
}
func (m *mockCandidates) Update(ctx context.Context, id int64, p domain.CandidatePatch) (domain.Candidate, error) {
	return m.update(ctx, id, p)
}
func (m *mockCandidates) Delete(ctx context.Context, id int64) error { return m.delete(ctx, id) }
func (m *mockCandidates) LinkSkill(ctx context.Context, candidateID, skillID int64) (bool, error) {
	return m.linkSkill(ctx, candidateID, skillID)
}
func (m *mockCandidates) TopByPopularity(ctx context.Context) (domain.TopCandidate, bool, error) {
	return m.top(ctx)
}

var _ handler.CandidateServicer = (*mockCandidates)(nil)

type mockAuth struct {
	register func(ctx context.Context, username, password string) (domain.User, string, error)
	login    func(ctx context.Context, username, password string) (domain.User, string, error)
}

func (m *mockAuth) Register(ctx context.Context, u, p string) (domain.User, string, error) {
	return m.register(ctx, u, p)
}
func (m *mockAuth) Login(ctx context.Context, u, p string) (domain.User, string, error) {
	return m.login(ctx, u, p)
}

var _ handler.AuthServicer = (*mockAuth)(nil)

// ---- helpers ---------------------------------------------------------------

const (
	userToken  = "user-token"
	adminToken = "admin-token"
)

// fakeTokens accepts two fixed tokens: one granting USER, one granting ADMIN.
type fakeTokens struct{}

func (fakeTokens) Verify(token string) (auth.Claims, error) {
	switch token {
	case userToken:
		return auth.Claims{Username: "user", Roles: []domain.Role{domain.RoleUser}}, nil
	case adminToken:
		return auth.Claims{Username: "admin", Roles: []domain.Role{domain.RoleAdmin}}, nil
	}
	return auth.Claims{}, auth.ErrTokenInvalid
}

// newTestRouter wires svc into the full router the way main.go does.
func newTestRouter(svc handler.Services) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return handler.NewRouter(handler.NewServer(svc, log), handler.RouterOptions{
		Tokens:       fakeTokens{},
		MaxBodyBytes: 1 << 20,
	})
}

// do sends one request through h. A non-nil body is JSON-encoded unless it
// is already a string; token, when set, goes in a Bearer header.
func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	}
	req := httptest.NewRequest(method, handler.BasePath+path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), "body: %s", rec.Body.String())
	return v
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorDetail {
	t.Helper()
	return decode[dto.ErrorResponse](t, rec).Error
}

func ptr[T any](v T) *T { return &v }
