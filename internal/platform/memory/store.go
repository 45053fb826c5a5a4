package memory

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/phrazzld/cityinfo-api/internal/domain"
	"github.com/phrazzld/cityinfo-api/internal/store"
)

// Store is an in-process implementation of store.Store. Cities are held in
// insertion order and guarded by a single RWMutex, so every call is atomic.
type Store struct {
	mu     sync.RWMutex
	cities []*domain.City
	logger *slog.Logger
}

// NewStore creates an empty in-memory store.
// If logger is nil, a default logger will be used.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		logger: logger.With(slog.String("component", "memory_store")),
	}
}

// NewSeededStore creates an in-memory store holding the sample data set.
func NewSeededStore(logger *slog.Logger) *Store {
	s := NewStore(logger)
	s.cities = SeedCities()
	return s
}

// NewStoreWithCities creates a store holding copies of the given cities.
func NewStoreWithCities(logger *slog.Logger, cities []domain.City) *Store {
	s := NewStore(logger)
	for i := range cities {
		c := cloneCity(&cities[i], true)
		s.cities = append(s.cities, &c)
	}
	return s
}

// SeedCities returns the sample data set served when no database is configured.
func SeedCities() []*domain.City {
	return []*domain.City{
		{
			ID:          1,
			Name:        "Kiev",
			Description: "The one in Ukraine.",
			PointsOfInterest: []domain.PointOfInterest{
				{ID: 1, CityID: 1, Name: "Place 1", Description: "Description 1"},
				{ID: 2, CityID: 1, Name: "Place 2", Description: "Description 2"},
			},
		},
		{
			ID:          2,
			Name:        "Moscow",
			Description: "The one in Russia.",
			PointsOfInterest: []domain.PointOfInterest{
				{ID: 3, CityID: 2, Name: "Place 3", Description: "Description 3"},
				{ID: 4, CityID: 2, Name: "Place 4", Description: "Description 4"},
			},
		},
		{
			ID:          3,
			Name:        "London",
			Description: "The one in England.",
		},
	}
}

// Ensure Store implements store.Store interface
var _ store.Store = (*Store)(nil)

// Ping implements store.Store.Ping
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// ListCities implements store.CityStore.ListCities
func (s *Store) ListCities(
	ctx context.Context,
	query domain.CityQuery,
) ([]domain.City, domain.PaginationMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.PaginationMetadata{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	name := strings.TrimSpace(query.Name)
	search := strings.TrimSpace(query.SearchQuery)

	filtered := make([]domain.City, 0, len(s.cities))
	for _, c := range s.cities {
		if name != "" && c.Name != name {
			continue
		}
		if search != "" && !strings.Contains(c.Name, search) && !strings.Contains(c.Description, search) {
			continue
		}
		filtered = append(filtered, cloneCity(c, false))
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Name != filtered[j].Name {
			return filtered[i].Name < filtered[j].Name
		}
		return filtered[i].ID < filtered[j].ID
	})

	metadata := domain.NewPaginationMetadata(len(filtered), query.PageSize, query.PageNumber)

	start := query.Offset()
	if start >= len(filtered) || query.PageSize < 1 {
		return []domain.City{}, metadata, nil
	}
	end := len(filtered)
	if query.PageSize < end-start {
		end = start + query.PageSize
	}

	return filtered[start:end], metadata, nil
}

// GetCity implements store.CityStore.GetCity
func (s *Store) GetCity(ctx context.Context, id int64, includePointsOfInterest bool) (*domain.City, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c := s.findCity(id)
	if c == nil {
		return nil, store.ErrCityNotFound
	}
	clone := cloneCity(c, includePointsOfInterest)
	return &clone, nil
}

// CityExists implements store.CityStore.CityExists
func (s *Store) CityExists(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.findCity(id) != nil, nil
}

// CityNameMatchesCityID implements store.CityStore.CityNameMatchesCityID
func (s *Store) CityNameMatchesCityID(ctx context.Context, name string, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c := s.findCity(id)
	return c != nil && c.Name == name, nil
}

// ListPointsOfInterest implements store.PointOfInterestStore.ListPointsOfInterest
func (s *Store) ListPointsOfInterest(ctx context.Context, cityID int64) ([]domain.PointOfInterest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c := s.findCity(cityID)
	if c == nil {
		return nil, store.ErrCityNotFound
	}

	points := make([]domain.PointOfInterest, len(c.PointsOfInterest))
	copy(points, c.PointsOfInterest)
	sort.Slice(points, func(i, j int) bool { return points[i].ID < points[j].ID })
	return points, nil
}

// GetPointOfInterest implements store.PointOfInterestStore.GetPointOfInterest
func (s *Store) GetPointOfInterest(
	ctx context.Context,
	cityID, pointOfInterestID int64,
) (*domain.PointOfInterest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c := s.findCity(cityID)
	if c == nil {
		return nil, store.ErrCityNotFound
	}
	i := indexOfPoint(c, pointOfInterestID)
	if i < 0 {
		return nil, store.ErrPointOfInterestNotFound
	}
	poi := c.PointsOfInterest[i]
	return &poi, nil
}

// CreatePointOfInterest implements store.PointOfInterestStore.CreatePointOfInterest
func (s *Store) CreatePointOfInterest(ctx context.Context, poi *domain.PointOfInterest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := poi.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findCity(poi.CityID)
	if c == nil {
		return store.ErrCityNotFound
	}

	poi.ID = s.maxPointOfInterestID() + 1
	c.PointsOfInterest = append(c.PointsOfInterest, *poi)

	s.logger.Debug("point of interest created",
		slog.Int64("city_id", poi.CityID),
		slog.Int64("point_of_interest_id", poi.ID))
	return nil
}

// UpdatePointOfInterest implements store.PointOfInterestStore.UpdatePointOfInterest
func (s *Store) UpdatePointOfInterest(ctx context.Context, poi *domain.PointOfInterest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := poi.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findCity(poi.CityID)
	if c == nil {
		return store.ErrCityNotFound
	}
	i := indexOfPoint(c, poi.ID)
	if i < 0 {
		return store.ErrPointOfInterestNotFound
	}

	c.PointsOfInterest[i].Name = poi.Name
	c.PointsOfInterest[i].Description = poi.Description
	return nil
}

// PatchPointOfInterest implements store.PointOfInterestStore.PatchPointOfInterest
func (s *Store) PatchPointOfInterest(
	ctx context.Context,
	cityID, pointOfInterestID int64,
	patch domain.PointOfInterestPatch,
) (*domain.PointOfInterest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findCity(cityID)
	if c == nil {
		return nil, store.ErrCityNotFound
	}
	i := indexOfPoint(c, pointOfInterestID)
	if i < 0 {
		return nil, store.ErrPointOfInterestNotFound
	}

	patched, err := patch.ApplyTo(c.PointsOfInterest[i])
	if err != nil {
		return nil, err
	}
	c.PointsOfInterest[i] = patched
	return &patched, nil
}

// DeletePointOfInterest implements store.PointOfInterestStore.DeletePointOfInterest
func (s *Store) DeletePointOfInterest(
	ctx context.Context,
	cityID, pointOfInterestID int64,
) (*domain.PointOfInterest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findCity(cityID)
	if c == nil {
		return nil, store.ErrCityNotFound
	}
	i := indexOfPoint(c, pointOfInterestID)
	if i < 0 {
		return nil, store.ErrPointOfInterestNotFound
	}

	deleted := c.PointsOfInterest[i]
	c.PointsOfInterest = append(c.PointsOfInterest[:i:i], c.PointsOfInterest[i+1:]...)

	s.logger.Debug("point of interest deleted",
		slog.Int64("city_id", cityID),
		slog.Int64("point_of_interest_id", pointOfInterestID))
	return &deleted, nil
}

// findCity must be called with s.mu held.
func (s *Store) findCity(id int64) *domain.City {
	for _, c := range s.cities {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// maxPointOfInterestID must be called with s.mu held.
func (s *Store) maxPointOfInterestID() int64 {
	var maxID int64
	for _, c := range s.cities {
		for _, p := range c.PointsOfInterest {
			if p.ID > maxID {
				maxID = p.ID
			}
		}
	}
	return maxID
}

func indexOfPoint(c *domain.City, id int64) int {
	for i := range c.PointsOfInterest {
		if c.PointsOfInterest[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneCity(c *domain.City, withPoints bool) domain.City {
	clone := domain.City{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
	if withPoints {
		clone.PointsOfInterest = make([]domain.PointOfInterest, len(c.PointsOfInterest))
		copy(clone.PointsOfInterest, c.PointsOfInterest)
	}
	return clone
}
