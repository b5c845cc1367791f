package seed

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/talentrail/internal/domain"
)

// memStore is an in-memory stand-in for the services the populator writes
// through. It implements every seed interface.
type memStore struct {
	nextID     int64
	guides     []domain.Guide
	trips      []domain.Trip
	skills     []domain.Skill
	candidates map[int64]*domain.Candidate
	admins     []string
	tripErr    error
}

func newMemStore() *memStore {
	return &memStore{candidates: map[int64]*domain.Candidate{}}
}

func (m *memStore) id() int64 { m.nextID++; return m.nextID }

type guideStore struct{ *memStore }

func (s guideStore) Create(_ context.Context, g domain.Guide) (domain.Guide, error) {
	g.ID = s.id()
	s.guides = append(s.guides, g)
	return g, nil
}

type tripStore struct{ *memStore }

func (s tripStore) Create(_ context.Context, t domain.Trip) (domain.Trip, error) {
	if s.tripErr != nil {
		return domain.Trip{}, s.tripErr
	}
	t.ID = s.id()
	s.trips = append(s.trips, t)
	return t, nil
}

type skillStore struct{ *memStore }

func (s skillStore) Create(_ context.Context, sk domain.Skill) (domain.Skill, error) {
	sk.ID = s.id()
	s.skills = append(s.skills, sk)
	return sk, nil
}

func (s skillStore) List(context.Context) ([]domain.Skill, error) { return s.skills, nil }

type candidateStore struct{ *memStore }

func (s candidateStore) Create(_ context.Context, c domain.Candidate) (domain.Candidate, error) {
	c.ID = s.id()
	s.candidates[c.ID] = &c
	return c, nil
}

func (s candidateStore) LinkSkill(_ context.Context, cid, sid int64) (bool, error) {
	c, ok := s.candidates[cid]
	if !ok {
		return false, nil
	}
	for _, sk := range s.skills {
		if sk.ID == sid {
			c.AddSkill(sk)
			return true, nil
		}
	}
	return false, nil
}

type adminStore struct{ *memStore }

func (s adminStore) EnsureAdmin(_ context.Context, u, _ string) (domain.User, error) {
	s.admins = append(s.admins, u)
	return domain.User{Username: u, Roles: []domain.Role{domain.RoleUser, domain.RoleAdmin}}, nil
}

func newTestPopulator(m *memStore) *Populator {
	p := NewPopulator(guideStore{m}, tripStore{m}, skillStore{m}, candidateStore{m}, adminStore{m},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	p.now = func() time.Time { return time.Date(2025, 7, 1, 15, 30, 0, 0, time.UTC) }
	return p
}

func TestRun_populatesEmptyDatabase(t *testing.T) {
	m := newMemStore()

	res, err := newTestPopulator(m).Run(context.Background(), "admin", "changeme")

	require.NoError(t, err)
	assert.False(t, res.Skipped)
	assert.Equal(t, []string{"admin"}, m.admins)

	require.Len(t, m.guides, 1)
	require.Len(t, m.trips, 2)
	for _, tr := range m.trips {
		assert.Equal(t, res.GuideID, tr.GuideID)
		require.NotNil(t, tr.StartDate)
		require.NotNil(t, tr.EndDate)
		assert.Equal(t, 3*24*time.Hour, tr.EndDate.Sub(*tr.StartDate))
	}
	assert.Equal(t, "2025-07-01", m.trips[0].StartDate.Format(time.DateOnly))
	assert.Equal(t, domain.TripForest, m.trips[1].Category)
	assert.Contains(t, res.TripIDs, "Sunny Beach")
	assert.Contains(t, res.TripIDs, "Deep Forest")

	assert.Len(t, m.skills, 4)
	alice := m.candidates[res.CandidateIDs["Alice Johnson"]]
	require.NotNil(t, alice)
	assert.Equal(t, []int64{res.SkillIDs["Java"], res.SkillIDs["Docker"]}, alice.SkillIDs())
	bob := m.candidates[res.CandidateIDs["Bob Smith"]]
	require.NotNil(t, bob)
	assert.True(t, bob.HasSkill(res.SkillIDs["SQL"]))
	assert.True(t, bob.HasSkill(res.SkillIDs["Project Management"]))
}

func TestRun_skipsWhenSkillsExist(t *testing.T) {
	m := newMemStore()
	m.skills = []domain.Skill{{ID: 1, Name: "Go", Category: domain.SkillProgLang}}

	res, err := newTestPopulator(m).Run(context.Background(), "", "")

	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Empty(t, m.guides)
	assert.Empty(t, m.admins, "no credentials, no admin")
}

func TestRun_propagatesErrors(t *testing.T) {
	m := newMemStore()
	m.tripErr = errors.New("boom")

	_, err := newTestPopulator(m).Run(context.Background(), "", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Sunny Beach")
}
