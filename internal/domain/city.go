package domain

import (
	"strings"
	"unicode/utf8"
)

// Field length limits shared by cities and points of interest.
const (
	MaxNameLength        = 50
	MaxDescriptionLength = 200
)

// City is a top-level named entity that owns zero or more points of interest.
// PointsOfInterest is only populated when explicitly requested from the store.
type City struct {
	ID               int64
	Name             string
	Description      string
	PointsOfInterest []PointOfInterest
}

// Validate checks if the City has valid data.
func (c *City) Validate() error {
	errs := &ValidationErrors{}
	validateName(errs, c.Name)
	validateDescription(errs, c.Description)
	return errs.ErrOrNil()
}

func validateName(errs *ValidationErrors, name string) {
	if strings.TrimSpace(name) == "" {
		errs.Add("name", "is required")
		return
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		errs.Add("name", "must be at most 50 characters")
	}
}

func validateDescription(errs *ValidationErrors, description string) {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		errs.Add("description", "must be at most 200 characters")
	}
}
