package domain

import "fmt"

// PointOfInterest is a named sub-entity owned by exactly one City.
type PointOfInterest struct {
	ID          int64
	CityID      int64
	Name        string
	Description string
}

// NewPointOfInterest creates an unsaved PointOfInterest for the given city.
// The identifier is assigned by the store on creation.
// Returns an error if validation fails.
func NewPointOfInterest(cityID int64, name, description string) (*PointOfInterest, error) {
	poi := &PointOfInterest{
		CityID:      cityID,
		Name:        name,
		Description: description,
	}

	if err := poi.Validate(); err != nil {
		return nil, err
	}

	return poi, nil
}

// Validate checks the mutable fields against the creation constraints.
func (p *PointOfInterest) Validate() error {
	errs := &ValidationErrors{}
	validateName(errs, p.Name)
	validateDescription(errs, p.Description)
	return errs.ErrOrNil()
}

// PointOfInterestPatch carries only the fields a caller intends to change.
// A nil field is left untouched.
//
// ExpectName and ExpectDescription are preconditions on the stored point.
// Stores evaluate them in ApplyTo while holding the point, so a patch is
// never applied over a value the caller did not expect.
type PointOfInterestPatch struct {
	Name        *string
	Description *string

	ExpectName        *string
	ExpectDescription *string
}

// IsEmpty reports whether the patch changes nothing.
func (p PointOfInterestPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil
}

// ApplyTo returns a copy of poi with the patch merged in, re-validated
// against the same constraints as creation. poi itself is never modified.
// A failed precondition returns an error wrapping ErrInvalidPatch.
func (p PointOfInterestPatch) ApplyTo(poi PointOfInterest) (PointOfInterest, error) {
	if p.ExpectName != nil && *p.ExpectName != poi.Name {
		return poi, preconditionFailed("name")
	}
	if p.ExpectDescription != nil && *p.ExpectDescription != poi.Description {
		return poi, preconditionFailed("description")
	}

	patched := poi
	if p.Name != nil {
		patched.Name = *p.Name
	}
	if p.Description != nil {
		patched.Description = *p.Description
	}

	if err := patched.Validate(); err != nil {
		return poi, err
	}
	return patched, nil
}

func preconditionFailed(field string) error {
	return fmt.Errorf("%w: %w", ErrInvalidPatch, NewValidationError(field, "does not match the expected value"))
}
