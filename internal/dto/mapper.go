package dto

import (
	"strings"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/talentrail/internal/domain"
)

// GuideFromDomain copies every field of g.
func GuideFromDomain(g domain.Guide) Guide {
	return Guide{
		ID:                g.ID,
		Name:              g.Name,
		Email:             g.Email,
		Phone:             g.Phone,
		YearsOfExperience: g.YearsOfExperience,
	}
}

// GuideFromDomainPtr is GuideFromDomain for optional guides; nil maps to nil.
func GuideFromDomainPtr(g *domain.Guide) *Guide {
	if g == nil {
		return nil
	}
	out := GuideFromDomain(*g)
	return &out
}

// TripFromDomain embeds the trip's full guide. PackingItems starts empty.
func TripFromDomain(t domain.Trip) Trip {
	guide := GuideFromDomainPtr(t.Guide)
	if guide == nil && t.GuideID != 0 {
		guide = &Guide{ID: t.GuideID}
	}
	return Trip{
		ID:                  t.ID,
		Name:                t.Name,
		StartDate:           dateFromTime(t.StartDate),
		EndDate:             dateFromTime(t.EndDate),
		LocationCoordinates: t.Location,
		Price:               t.Price,
		Category:            string(t.Category),
		Guide:               guide,
		PackingItems:        []PackingItem{},
	}
}

// TripsFromDomain maps a slice of trips, never returning nil.
func TripsFromDomain(ts []domain.Trip) []Trip {
	out := make([]Trip, len(ts))
	for i, t := range ts {
		out[i] = TripFromDomain(t)
	}
	return out
}

// SkillFromDomain derives the slug from the skill name. Stats stay unset.
func SkillFromDomain(s domain.Skill) Skill {
	return Skill{
		ID:          s.ID,
		Name:        s.Name,
		Slug:        Slug(s.Name),
		Description: s.Description,
		Category:    string(s.Category),
	}
}

// SkillsFromDomain maps a slice of skills, never returning nil.
func SkillsFromDomain(ss []domain.Skill) []Skill {
	out := make([]Skill, len(ss))
	for i, s := range ss {
		out[i] = SkillFromDomain(s)
	}
	return out
}

// CandidateFromDomain embeds the candidate's skill set.
func CandidateFromDomain(c domain.Candidate) Candidate {
	return Candidate{
		ID:                  c.ID,
		Name:                c.Name,
		Phone:               c.Phone,
		EducationBackground: c.Education,
		Skills:              SkillsFromDomain(c.Skills),
	}
}

// CandidatesFromDomain maps a slice of candidates, never returning nil.
func CandidatesFromDomain(cs []domain.Candidate) []Candidate {
	out := make([]Candidate, len(cs))
	for i, c := range cs {
		out[i] = CandidateFromDomain(c)
	}
	return out
}

// PackingItemsFromDomain maps a packing list, never returning nil.
func PackingItemsFromDomain(items []domain.PackingItem) []PackingItem {
	out := make([]PackingItem, len(items))
	for i, it := range items {
		opts := make([]BuyingOption, len(it.BuyingOptions))
		for j, o := range it.BuyingOptions {
			opts[j] = BuyingOption{ShopName: o.ShopName, ShopURL: o.ShopURL, Price: o.Price}
		}
		out[i] = PackingItem{
			Name:          it.Name,
			WeightInGrams: it.WeightInGrams,
			Quantity:      it.Quantity,
			Description:   it.Description,
			Category:      it.Category,
			BuyingOptions: opts,
		}
	}
	return out
}

// GuideTotalsFromDomain maps the per-guide price report.
func GuideTotalsFromDomain(totals []domain.GuideTotal) []GuideTotal {
	out := make([]GuideTotal, len(totals))
	for i, gt := range totals {
		out[i] = GuideTotal{GuideID: gt.GuideID, TotalPrice: gt.TotalPrice}
	}
	return out
}

// PackingWeightFromDomain maps a packing weight aggregate. The category is
// reported lower-cased, the form the packing provider was queried with.
func PackingWeightFromDomain(w domain.PackingWeight) PackingWeight {
	return PackingWeight{
		TripID:           w.TripID,
		Category:         strings.ToLower(string(w.Category)),
		TotalWeightGrams: w.TotalWeightGrams,
		TotalWeightKg:    w.TotalWeightKg,
	}
}

// TopCandidateFromDomain builds the report for a scored candidate.
func TopCandidateFromDomain(tc domain.TopCandidate) TopCandidateReport {
	id, avg := tc.CandidateID, tc.AveragePopularityScore
	return TopCandidateReport{CandidateID: &id, AveragePopularityScore: &avg}
}

func dateFromTime(t *time.Time) *openapi_types.Date {
	if t == nil {
		return nil
	}
	return &openapi_types.Date{Time: *t}
}

func timeFromDate(d *openapi_types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
