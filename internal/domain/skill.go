package domain

// Skill is an independently managed capability that candidates reference.
type Skill struct {
	ID          int64
	Name        string
	Description string
	Category    SkillCategory
}
