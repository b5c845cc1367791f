package domain

import "sort"

// Candidate is a job candidate with a set of skills.
type Candidate struct {
	ID        int64
	Name      string
	Phone     string
	Education string

	// Skills has set semantics keyed by skill id and is kept ordered by id.
	Skills []Skill
}

// HasSkill reports whether a skill with the given id is already in the set.
func (c *Candidate) HasSkill(id int64) bool {
	for _, s := range c.Skills {
		if s.ID == id {
			return true
		}
	}
	return false
}

// AddSkill inserts s into the skill set. It returns false when a skill with
// the same id is already present, leaving the set unchanged.
func (c *Candidate) AddSkill(s Skill) bool {
	if c.HasSkill(s.ID) {
		return false
	}
	c.Skills = append(c.Skills, s)
	sort.Slice(c.Skills, func(i, j int) bool { return c.Skills[i].ID < c.Skills[j].ID })
	return true
}

// SkillIDs returns the ids of every skill in the set.
func (c *Candidate) SkillIDs() []int64 {
	ids := make([]int64, len(c.Skills))
	for i, s := range c.Skills {
		ids[i] = s.ID
	}
	return ids
}
