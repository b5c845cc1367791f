package dto

import (
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/talentrail/internal/domain"
)

// The request types decode POST and PUT bodies. Pointer fields tell an
// omitted field apart from a zero value so PUT can merge only what the
// client sent. ID, when present, must match the path id.

// GuideRequest is the body of guide create and update requests.
type GuideRequest struct {
	ID                *int64  `json:"id,omitempty"`
	Name              *string `json:"name,omitempty"`
	Email             *string `json:"email,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	YearsOfExperience *int    `json:"yearsOfExperience,omitempty"`
}

// ToDomain builds a new guide from the provided fields.
func (r GuideRequest) ToDomain() domain.Guide {
	var g domain.Guide
	r.ToPatch().Apply(&g)
	return g
}

// ToPatch converts the request into a partial update.
func (r GuideRequest) ToPatch() domain.GuidePatch {
	return domain.GuidePatch{
		Name:              r.Name,
		Email:             r.Email,
		Phone:             r.Phone,
		YearsOfExperience: r.YearsOfExperience,
	}
}

// TripRequest is the body of trip create and update requests.
type TripRequest struct {
	ID                  *int64              `json:"id,omitempty"`
	Name                *string             `json:"name,omitempty"`
	StartDate           *openapi_types.Date `json:"startDate,omitempty"`
	EndDate             *openapi_types.Date `json:"endDate,omitempty"`
	LocationCoordinates *string             `json:"locationCoordinates,omitempty"`
	Price               *float64            `json:"price,omitempty"`
	Category            *string             `json:"category,omitempty"`
	Guide               *GuideRef           `json:"guide,omitempty"`
}

// ToDomain builds a new trip from the provided fields. Only the guide id is
// read from the embedded guide.
func (r TripRequest) ToDomain() (domain.Trip, error) {
	p, err := r.ToPatch()
	if err != nil {
		return domain.Trip{}, err
	}
	var t domain.Trip
	p.Apply(&t)
	return t, nil
}

// ToPatch converts the request into a partial update, parsing the category
// when one is given.
func (r TripRequest) ToPatch() (domain.TripPatch, error) {
	p := domain.TripPatch{
		Name:      r.Name,
		StartDate: timeFromDate(r.StartDate),
		EndDate:   timeFromDate(r.EndDate),
		Location:  r.LocationCoordinates,
		Price:     r.Price,
	}
	if r.Category != nil {
		c, err := domain.ParseTripCategory(*r.Category)
		if err != nil {
			return domain.TripPatch{}, err
		}
		p.Category = &c
	}
	if r.Guide != nil {
		id := r.Guide.ID
		p.GuideID = &id
	}
	return p, nil
}

// SkillRequest is the body of skill create and update requests.
type SkillRequest struct {
	ID          *int64  `json:"id,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
}

// ToDomain builds a new skill from the provided fields.
func (r SkillRequest) ToDomain() (domain.Skill, error) {
	p, err := r.ToPatch()
	if err != nil {
		return domain.Skill{}, err
	}
	var s domain.Skill
	p.Apply(&s)
	return s, nil
}

// ToPatch converts the request into a partial update.
func (r SkillRequest) ToPatch() (domain.SkillPatch, error) {
	p := domain.SkillPatch{Name: r.Name, Description: r.Description}
	if r.Category != nil {
		c, err := domain.ParseSkillCategory(*r.Category)
		if err != nil {
			return domain.SkillPatch{}, err
		}
		p.Category = &c
	}
	return p, nil
}

// CandidateRequest is the body of candidate create and update requests.
// Skills are never read from it; they change only through skill linking.
type CandidateRequest struct {
	ID                  *int64  `json:"id,omitempty"`
	Name                *string `json:"name,omitempty"`
	Phone               *string `json:"phone,omitempty"`
	EducationBackground *string `json:"educationBackground,omitempty"`
}

// ToDomain builds a new candidate with an empty skill set.
func (r CandidateRequest) ToDomain() domain.Candidate {
	c := domain.Candidate{Skills: []domain.Skill{}}
	r.ToPatch().Apply(&c)
	return c
}

// ToPatch converts the request into a partial update.
func (r CandidateRequest) ToPatch() domain.CandidatePatch {
	return domain.CandidatePatch{
		Name:      r.Name,
		Phone:     r.Phone,
		Education: r.EducationBackground,
	}
}
