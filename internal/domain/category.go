package domain

import (
	"fmt"
	"strings"
)

// TripCategory is the closed set of trip categories. The packing-list
// provider is keyed by the lower-case form of these values.
type TripCategory string

const (
	TripBeach  TripCategory = "BEACH"
	TripCity   TripCategory = "CITY"
	TripForest TripCategory = "FOREST"
	TripLake   TripCategory = "LAKE"
	TripSea    TripCategory = "SEA"
	TripSnow   TripCategory = "SNOW"
)

// TripCategories lists every legal TripCategory in declaration order.
var TripCategories = []TripCategory{TripBeach, TripCity, TripForest, TripLake, TripSea, TripSnow}

// Valid reports whether c is a member of the closed set.
func (c TripCategory) Valid() bool {
	switch c {
	case TripBeach, TripCity, TripForest, TripLake, TripSea, TripSnow:
		return true
	}
	return false
}

// Lower returns the lower-case key used by the packing-list provider.
func (c TripCategory) Lower() string {
	return strings.ToLower(string(c))
}

// ParseTripCategory normalizes raw (case-insensitive, "-" treated as "_")
// and returns the matching TripCategory. Unknown values are rejected with
// ErrValidation naming every legal value.
func ParseTripCategory(raw string) (TripCategory, error) {
	c := TripCategory(normalizeEnum(raw))
	if !c.Valid() {
		return "", fmt.Errorf("%w: invalid category %q; allowed values: %s",
			ErrValidation, raw, joinEnum(TripCategories))
	}
	return c, nil
}

// SkillCategory is the closed set of skill categories.
type SkillCategory string

const (
	SkillProgLang  SkillCategory = "PROG_LANG"
	SkillDB        SkillCategory = "DB"
	SkillDevOps    SkillCategory = "DEVOPS"
	SkillFrontend  SkillCategory = "FRONTEND"
	SkillTesting   SkillCategory = "TESTING"
	SkillData      SkillCategory = "DATA"
	SkillFramework SkillCategory = "FRAMEWORK"
)

// SkillCategories lists every legal SkillCategory in declaration order.
var SkillCategories = []SkillCategory{
	SkillProgLang, SkillDB, SkillDevOps, SkillFrontend, SkillTesting, SkillData, SkillFramework,
}

// Valid reports whether c is a member of the closed set.
func (c SkillCategory) Valid() bool {
	switch c {
	case SkillProgLang, SkillDB, SkillDevOps, SkillFrontend, SkillTesting, SkillData, SkillFramework:
		return true
	}
	return false
}

// ParseSkillCategory normalizes raw the same way as ParseTripCategory.
func ParseSkillCategory(raw string) (SkillCategory, error) {
	c := SkillCategory(normalizeEnum(raw))
	if !c.Valid() {
		return "", fmt.Errorf("%w: invalid category %q; allowed values: %s",
			ErrValidation, raw, joinEnum(SkillCategories))
	}
	return c, nil
}

func normalizeEnum(raw string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(raw)), "-", "_")
}

func joinEnum[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
