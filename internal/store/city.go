package store

import (
	"context"

	"github.com/phrazzld/cityinfo-api/internal/domain"
)

// CityStore defines the read operations on cities, including the
// filtered, paginated listing.
type CityStore interface {
	// ListCities returns the cities matching the query's filters, sorted by
	// name then id, sliced to the requested page. The metadata counts the
	// filtered set before pagination. Pages past the end yield an empty slice.
	// Returned cities never carry points of interest.
	ListCities(ctx context.Context, query domain.CityQuery) ([]domain.City, domain.PaginationMetadata, error)

	// GetCity retrieves a city by id. Points of interest are loaded only when
	// includePointsOfInterest is true.
	// Returns ErrCityNotFound if the city does not exist.
	GetCity(ctx context.Context, id int64, includePointsOfInterest bool) (*domain.City, error)

	// CityExists reports whether a city with the given id exists.
	CityExists(ctx context.Context, id int64) (bool, error)

	// CityNameMatchesCityID reports whether the city with the given id exists
	// and has exactly the given name.
	CityNameMatchesCityID(ctx context.Context, name string, id int64) (bool, error)
}

// PointOfInterestStore defines persistence for points of interest.
// Every operation is scoped by the owning city.
type PointOfInterestStore interface {
	// ListPointsOfInterest returns the points of the city ordered by id.
	// Returns ErrCityNotFound if the city does not exist.
	ListPointsOfInterest(ctx context.Context, cityID int64) ([]domain.PointOfInterest, error)

	// GetPointOfInterest retrieves a point by id within the given city.
	// Returns ErrPointOfInterestNotFound if no point with that id belongs to the city.
	GetPointOfInterest(ctx context.Context, cityID, pointOfInterestID int64) (*domain.PointOfInterest, error)

	// CreatePointOfInterest saves a new point under poi.CityID and assigns
	// poi.ID. Identifiers are unique across the whole store.
	// Returns ErrCityNotFound if the city does not exist.
	CreatePointOfInterest(ctx context.Context, poi *domain.PointOfInterest) error

	// UpdatePointOfInterest replaces the mutable fields of an existing point.
	// Returns ErrPointOfInterestNotFound if the point does not belong to poi.CityID.
	UpdatePointOfInterest(ctx context.Context, poi *domain.PointOfInterest) error

	// PatchPointOfInterest atomically loads the point, applies the patch and
	// saves the result. When the patched point fails validation nothing is
	// written and the validation error is returned.
	PatchPointOfInterest(
		ctx context.Context,
		cityID, pointOfInterestID int64,
		patch domain.PointOfInterestPatch,
	) (*domain.PointOfInterest, error)

	// DeletePointOfInterest removes the point from the store and from its city.
	// Returns the deleted point, or ErrPointOfInterestNotFound.
	DeletePointOfInterest(ctx context.Context, cityID, pointOfInterestID int64) (*domain.PointOfInterest, error)
}

// Store is the full entity store used by the services.
type Store interface {
	CityStore
	PointOfInterestStore

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}
