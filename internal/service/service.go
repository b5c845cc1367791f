// Package service contains the business logic for the Talentrail API.
// Services validate inputs, enforce cross-entity rules, and orchestrate repo
// calls, mapping and enrichment. No SQL lives here; services depend on repo
// interfaces, not implementations.
package service

import (
	"fmt"
	"strings"

	"github.com/pkordes/talentrail/internal/domain"
)

// requireText fails with ErrValidation when value is empty or only whitespace.
func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", domain.ErrValidation, field)
	}
	return nil
}

// requireTextIfSet is requireText for optional patch fields.
func requireTextIfSet(field string, value *string) error {
	if value == nil {
		return nil
	}
	return requireText(field, *value)
}

// firstErr returns the first non-nil error.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
