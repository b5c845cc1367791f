package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/talentrail/internal/domain"
)

func TestParseTripCategory(t *testing.T) {
	tests := []struct {
		raw  string
		want domain.TripCategory
	}{
		{"BEACH", domain.TripBeach},
		{"beach", domain.TripBeach},
		{"  Forest ", domain.TripForest},
		{"snow", domain.TripSnow},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := domain.ParseTripCategory(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseTripCategory_Unknown(t *testing.T) {
	_, err := domain.ParseTripCategory("desert")

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), `"desert"`)
	assert.Contains(t, err.Error(), "BEACH, CITY, FOREST, LAKE, SEA, SNOW")
}

func TestParseSkillCategory(t *testing.T) {
	for _, raw := range []string{"PROG_LANG", "prog_lang", "prog-lang", "Prog-Lang"} {
		got, err := domain.ParseSkillCategory(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, domain.SkillProgLang, got, raw)
	}
}

func TestParseSkillCategory_Unknown(t *testing.T) {
	_, err := domain.ParseSkillCategory("")

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "PROG_LANG")
}

func TestTripCategory_Lower(t *testing.T) {
	assert.Equal(t, "beach", domain.TripBeach.Lower())
}

func TestParseRole(t *testing.T) {
	r, err := domain.ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, r)

	_, err = domain.ParseRole("ANYONE")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
