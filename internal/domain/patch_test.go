package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/talentrail/internal/domain"
)

func TestTripPatch_Apply_OnlyProvidedFields(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	trip := domain.Trip{
		ID:        7,
		Name:      "Sunny Beach",
		StartDate: &start,
		Price:     3000,
		Category:  domain.TripBeach,
		GuideID:   1,
		Guide:     &domain.Guide{ID: 1, Name: "Test Guide"},
	}

	price := 3500.0
	domain.TripPatch{Price: &price}.Apply(&trip)

	assert.Equal(t, int64(7), trip.ID)
	assert.Equal(t, "Sunny Beach", trip.Name)
	assert.InDelta(t, 3500.0, trip.Price, 0.001)
	assert.Equal(t, domain.TripBeach, trip.Category)
	assert.NotNil(t, trip.Guide, "guide is kept when not re-pointed")
}

func TestTripPatch_Apply_RepointGuideDropsStaleGuide(t *testing.T) {
	trip := domain.Trip{GuideID: 1, Guide: &domain.Guide{ID: 1}}
	other := int64(2)

	domain.TripPatch{GuideID: &other}.Apply(&trip)

	assert.Equal(t, int64(2), trip.GuideID)
	assert.Nil(t, trip.Guide)
}

func TestCandidatePatch_Apply_LeavesSkillsAlone(t *testing.T) {
	c := domain.Candidate{Name: "Alice", Phone: "1", Education: "BSc", Skills: []domain.Skill{{ID: 1}}}
	phone := "2"

	domain.CandidatePatch{Phone: &phone}.Apply(&c)

	assert.Equal(t, "Alice", c.Name)
	assert.Equal(t, "2", c.Phone)
	assert.Len(t, c.Skills, 1)
}

func TestGuidePatch_Apply(t *testing.T) {
	g := domain.Guide{Name: "Test Guide", Email: "guide@test.com", YearsOfExperience: 5}
	years := 6

	domain.GuidePatch{YearsOfExperience: &years}.Apply(&g)

	assert.Equal(t, 6, g.YearsOfExperience)
	assert.Equal(t, "guide@test.com", g.Email)
}
