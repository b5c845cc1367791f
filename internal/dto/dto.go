// Package dto holds the JSON wire types of the HTTP API and the pure functions
// that map them to and from domain entities. Nothing here performs I/O.
package dto

import (
	"strings"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Guide is the wire form of a guide. Trips embed it in full.
type Guide struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	YearsOfExperience int    `json:"yearsOfExperience"`
}

// GuideRef identifies a guide inside a trip request. Only the id is read.
type GuideRef struct {
	ID int64 `json:"id"`
}

// Trip is the wire form of a trip. PackingItems is always present in
// responses, empty unless the trip was fetched individually.
type Trip struct {
	ID                  int64               `json:"id"`
	Name                string              `json:"name"`
	StartDate           *openapi_types.Date `json:"startDate,omitempty"`
	EndDate             *openapi_types.Date `json:"endDate,omitempty"`
	LocationCoordinates string              `json:"locationCoordinates"`
	Price               float64             `json:"price"`
	Category            string              `json:"category"`
	Guide               *Guide              `json:"guide"`
	PackingItems        []PackingItem       `json:"packingItems"`
}

// Skill is the wire form of a skill. PopularityScore and AverageSalary are
// filled in from the skill-stats provider when available.
type Skill struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	PopularityScore *int   `json:"popularityScore,omitempty"`
	AverageSalary   *int   `json:"averageSalary,omitempty"`
}

// Candidate is the wire form of a candidate with its skill set embedded.
type Candidate struct {
	ID                  int64   `json:"id"`
	Name                string  `json:"name"`
	Phone               string  `json:"phone"`
	EducationBackground string  `json:"educationBackground"`
	Skills              []Skill `json:"skills"`
}

// PackingItem is one entry of a trip's packing list.
type PackingItem struct {
	Name          string         `json:"name"`
	WeightInGrams int            `json:"weightInGrams"`
	Quantity      int            `json:"quantity"`
	Description   string         `json:"description"`
	Category      string         `json:"category"`
	BuyingOptions []BuyingOption `json:"buyingOptions"`
}

// BuyingOption is a shop offering a packing item.
type BuyingOption struct {
	ShopName string  `json:"shopName"`
	ShopURL  string  `json:"shopUrl"`
	Price    float64 `json:"price"`
}

// GuideTotal is one row of the per-guide price report.
type GuideTotal struct {
	GuideID    int64   `json:"guideId"`
	TotalPrice float64 `json:"totalPrice"`
}

// PackingWeight is the total weight of a trip's packing list.
type PackingWeight struct {
	TripID           int64   `json:"tripId"`
	Category         string  `json:"category"`
	TotalWeightGrams int     `json:"totalWeightGrams"`
	TotalWeightKg    float64 `json:"totalWeightKg"`
}

// TopCandidateReport carries either the winning candidate or, when no
// candidate could be scored, only a message.
type TopCandidateReport struct {
	CandidateID            *int64   `json:"candidateId,omitempty"`
	AveragePopularityScore *float64 `json:"averagePopularityScore,omitempty"`
	Message                string   `json:"message,omitempty"`
}

// Credentials is the body of register and login requests.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is returned by register and login.
type TokenResponse struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorDetail describes one failed request.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope of every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// Slug derives the URL-safe key the skill-stats provider uses for a skill
// name: lower-cased, with every space replaced by a hyphen. Repeated or
// trailing spaces are kept as hyphens so the key matches the provider's.
func Slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
