package store

import (
	"errors"
	"fmt"
)

// Store sentinels. Implementations return (or wrap) these so services can
// branch with errors.Is without knowing the backend.
var (
	// ErrNotFound is the parent of every not-found error below.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidEntity marks data the backend refused to persist.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed marks a transaction that could not begin or commit.
	ErrTransactionFailed = errors.New("transaction failed")

	ErrCityNotFound = fmt.Errorf("%w: city", ErrNotFound)

	// ErrPointOfInterestNotFound is also returned for a point that exists
	// under a different city.
	ErrPointOfInterestNotFound = fmt.Errorf("%w: point of interest", ErrNotFound)
)

// IsNotFoundError reports whether err is a city or point-of-interest miss.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError records which entity operation failed in a backend.
type StoreError struct {
	Entity    string // "city" or "point_of_interest"
	Operation string // "list", "get", "create", ...
	Message   string
	Err       error
}

func (e *StoreError) Error() string {
	msg := fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError builds a StoreError wrapping err.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{Entity: entity, Operation: operation, Message: message, Err: err}
}
