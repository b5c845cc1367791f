package domain

import "time"

// Trip is a bookable trip led by exactly one Guide.
type Trip struct {
	ID        int64
	Name      string
	StartDate *time.Time // nil when not scheduled yet
	EndDate   *time.Time
	Location  string
	Price     float64
	Category  TripCategory
	GuideID   int64

	// Guide is populated on every read. Writes only look at GuideID.
	Guide *Guide
}
