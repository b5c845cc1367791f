package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/talentrail/internal/domain"
	"github.com/pkordes/talentrail/internal/repo"
	"github.com/pkordes/talentrail/testutil"
)

// newTestTx returns a rolled-back-on-cleanup transaction on the migrated
// test database.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	return testutil.NewTx(t)
}

func guideFixture() domain.Guide {
	return domain.Guide{
		Name:              "Test Guide",
		Email:             "guide@test.com",
		Phone:             "12345678",
		YearsOfExperience: 5,
	}
}

func tripFixture(guideID int64) domain.Trip {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)
	return domain.Trip{
		Name:      "Sunny Beach",
		StartDate: &start,
		EndDate:   &end,
		Location:  "55.6761,12.5683",
		Price:     3000,
		Category:  domain.TripBeach,
		GuideID:   guideID,
	}
}

func createGuide(t *testing.T, tx pgx.Tx) domain.Guide {
	t.Helper()
	g, err := repo.NewGuideRepo(tx).Create(context.Background(), guideFixture())
	require.NoError(t, err)
	return g
}

func createSkill(t *testing.T, tx pgx.Tx, name string, category domain.SkillCategory) domain.Skill {
	t.Helper()
	s, err := repo.NewSkillRepo(tx).Create(context.Background(), domain.Skill{
		Name:        name,
		Description: name + " description",
		Category:    category,
	})
	require.NoError(t, err)
	return s
}
