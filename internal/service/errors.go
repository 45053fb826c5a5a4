package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/cityinfo-api/internal/domain"
	"github.com/phrazzld/cityinfo-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in ServiceError
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrCityNotFound indicates the addressed city does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrCityNotFound = errors.New("city not found")

	// ErrPointOfInterestNotFound indicates the addressed point of interest does
	// not exist within the addressed city.
	// API layer should map this to HTTP 404 Not Found.
	ErrPointOfInterestNotFound = errors.New("point of interest not found")
)

// ServiceError wraps unexpected errors from the services with context.
type ServiceError struct {
	// Service is the service that failed (e.g., "city", "point_of_interest")
	Service string
	// Operation is the operation that failed (e.g., "list_cities", "delete_point_of_interest")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError translates err for the caller.
// Store not-found errors become the matching service sentinel, validation
// errors are returned as they are, and anything else is wrapped in a ServiceError.
func NewServiceError(service, operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrCityNotFound), errors.Is(err, ErrPointOfInterestNotFound):
		return err
	case errors.Is(err, store.ErrCityNotFound):
		return ErrCityNotFound
	case errors.Is(err, store.ErrPointOfInterestNotFound):
		return ErrPointOfInterestNotFound
	case errors.Is(err, domain.ErrValidation):
		return err
	}

	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// IsNotFound reports whether err means the addressed resource does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCityNotFound) ||
		errors.Is(err, ErrPointOfInterestNotFound) ||
		errors.Is(err, store.ErrNotFound)
}
