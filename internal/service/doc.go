// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and the stores
// (defined in internal/store) to fulfill application features.
//
// Key components:
//
//   - CityService: filtered, paginated city listing and city detail access.
//   - PointOfInterestService: city-scoped CRUD and partial updates of points
//     of interest, raising a notification when a point is deleted.
//
// Services receive their stores and collaborators through constructor
// injection and never depend on a specific storage implementation.
// Store-level not-found errors are translated into the service sentinels
// below; validation errors pass through unchanged so callers keep the
// field-level detail.
package service
