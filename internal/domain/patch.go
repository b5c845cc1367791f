package domain

import "time"

// The patch types carry a partial update: nil fields are left untouched when
// the patch is applied to the stored entity.

// GuidePatch is a partial update of a Guide.
type GuidePatch struct {
	Name              *string
	Email             *string
	Phone             *string
	YearsOfExperience *int
}

// Apply merges the provided fields into g.
func (p GuidePatch) Apply(g *Guide) {
	setIf(&g.Name, p.Name)
	setIf(&g.Email, p.Email)
	setIf(&g.Phone, p.Phone)
	setIf(&g.YearsOfExperience, p.YearsOfExperience)
}

// TripPatch is a partial update of a Trip. A non-nil GuideID re-points the
// trip at another guide.
type TripPatch struct {
	Name      *string
	StartDate *time.Time
	EndDate   *time.Time
	Location  *string
	Price     *float64
	Category  *TripCategory
	GuideID   *int64
}

// Apply merges the provided fields into t.
func (p TripPatch) Apply(t *Trip) {
	setIf(&t.Name, p.Name)
	if p.StartDate != nil {
		v := *p.StartDate
		t.StartDate = &v
	}
	if p.EndDate != nil {
		v := *p.EndDate
		t.EndDate = &v
	}
	setIf(&t.Location, p.Location)
	setIf(&t.Price, p.Price)
	setIf(&t.Category, p.Category)
	if p.GuideID != nil && *p.GuideID != t.GuideID {
		t.GuideID = *p.GuideID
		t.Guide = nil
	}
}

// SkillPatch is a partial update of a Skill.
type SkillPatch struct {
	Name        *string
	Description *string
	Category    *SkillCategory
}

// Apply merges the provided fields into s.
func (p SkillPatch) Apply(s *Skill) {
	setIf(&s.Name, p.Name)
	setIf(&s.Description, p.Description)
	setIf(&s.Category, p.Category)
}

// CandidatePatch is a partial update of a Candidate's scalar fields. Skills
// are only changed through explicit linking.
type CandidatePatch struct {
	Name      *string
	Phone     *string
	Education *string
}

// Apply merges the provided fields into c.
func (p CandidatePatch) Apply(c *Candidate) {
	setIf(&c.Name, p.Name)
	setIf(&c.Phone, p.Phone)
	setIf(&c.Education, p.Education)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
