// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// It is wrapped by ValidationErrors, which carries the field-level detail.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an identifier is malformed or not positive.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidPatch is returned when a partial update document cannot be applied.
	ErrInvalidPatch = errors.New("invalid patch document")

	// ErrUnauthorized is returned when the caller's identity is missing or invalid.
	ErrUnauthorized = errors.New("unauthorized operation")

	// ErrForbidden is returned when the caller's identity does not cover the target city.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError describes a single failed constraint on a field.
type ValidationError struct {
	Field   string
	Message string
}

// ValidationErrors collects field-level validation failures.
// It unwraps to ErrValidation so callers can use errors.Is.
type ValidationErrors struct {
	Errors []ValidationError
}

// NewValidationError creates a ValidationErrors holding a single field failure.
func NewValidationError(field, message string) *ValidationErrors {
	v := &ValidationErrors{}
	v.Add(field, message)
	return v
}

// Add records a failure for field.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{Field: field, Message: message})
}

// HasErrors reports whether any failure was recorded.
func (v *ValidationErrors) HasErrors() bool {
	return v != nil && len(v.Errors) > 0
}

// ErrOrNil returns v as an error when it holds failures, nil otherwise.
func (v *ValidationErrors) ErrOrNil() error {
	if !v.HasErrors() {
		return nil
	}
	return v
}

// Fields groups messages by field name.
func (v *ValidationErrors) Fields() map[string][]string {
	fields := make(map[string][]string, len(v.Errors))
	for _, e := range v.Errors {
		fields[e.Field] = append(fields[e.Field], e.Message)
	}
	return fields
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	parts := make([]string, 0, len(v.Errors))
	for _, e := range v.Errors {
		parts = append(parts, fmt.Sprintf("%s %s", e.Field, e.Message))
	}
	sort.Strings(parts)
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

// Unwrap returns ErrValidation to support errors.Is.
func (v *ValidationErrors) Unwrap() error {
	return ErrValidation
}
