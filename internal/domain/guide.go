// Package domain contains the core data types for the Talentrail API.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, external, handler).
package domain

// Guide leads zero or more trips. A guide cannot be removed while any trip
// still references it.
type Guide struct {
	ID                int64
	Name              string
	Email             string
	Phone             string
	YearsOfExperience int
}
