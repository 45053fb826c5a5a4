package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/phrazzld/cityinfo-api/internal/domain"
	"github.com/phrazzld/cityinfo-api/internal/mocks"
	"github.com/phrazzld/cityinfo-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCities(t *testing.T) {
	t.Run("defaults and pagination header", func(t *testing.T) {
		cities := &mocks.MockCityService{
			ListCitiesFn: func(ctx context.Context, q domain.CityQuery) ([]domain.City, domain.PaginationMetadata, error) {
				return []domain.City{{ID: 3, Name: "London", Description: "The one in England."}},
					domain.NewPaginationMetadata(1, q.PageSize, q.PageNumber), nil
			},
		}
		router := newTestRouter(cities, &mocks.MockPointOfInterestService{})

		rr := doRequest(t, router, http.MethodGet, "/api/v1/cities", "")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, domain.CityQuery{PageNumber: 1, PageSize: 10}, cities.LastQuery)

		var body []CitySummary
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, []CitySummary{{ID: 3, Name: "London", Description: "The one in England."}}, body)

		var meta domain.PaginationMetadata
		require.NoError(t, json.Unmarshal([]byte(rr.Header().Get(PaginationHeader)), &meta))
		assert.Equal(t, domain.PaginationMetadata{TotalItemCount: 1, PageSize: 10, CurrentPage: 1, TotalPageCount: 1}, meta)
	})

	t.Run("filters are passed through", func(t *testing.T) {
		cities := &mocks.MockCityService{}
		router := newTestRouter(cities, &mocks.MockPointOfInterestService{})

		rr := doRequest(t, router, http.MethodGet,
			"/api/v1/cities?name=Paris&searchQuery=light&pageNumber=2&pageSize=5", "")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, domain.CityQuery{Name: "Paris", SearchQuery: "light", PageNumber: 2, PageSize: 5}, cities.LastQuery)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("non-integer window", func(t *testing.T) {
		router := newTestRouter(&mocks.MockCityService{}, &mocks.MockPointOfInterestService{})

		rr := doRequest(t, router, http.MethodGet, "/api/v1/cities?pageNumber=first&pageSize=x", "")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "pageNumber")
		assert.Contains(t, rr.Body.String(), "pageSize")
	})

	t.Run("service validation error", func(t *testing.T) {
		cities := &mocks.MockCityService{
			ListCitiesFn: func(ctx context.Context, q domain.CityQuery) ([]domain.City, domain.PaginationMetadata, error) {
				return nil, domain.PaginationMetadata{}, domain.NewValidationError("pageNumber", "must be at least 1")
			},
		}
		router := newTestRouter(cities, &mocks.MockPointOfInterestService{})

		rr := doRequest(t, router, http.MethodGet, "/api/v1/cities?pageNumber=0", "")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Empty(t, rr.Header().Get(PaginationHeader))
	})

	t.Run("store failure", func(t *testing.T) {
		cities := &mocks.MockCityService{
			ListCitiesFn: func(ctx context.Context, q domain.CityQuery) ([]domain.City, domain.PaginationMetadata, error) {
				return nil, domain.PaginationMetadata{}, errors.New("connection reset")
			},
		}
		router := newTestRouter(cities, &mocks.MockPointOfInterestService{})

		rr := doRequest(t, router, http.MethodGet, "/api/v1/cities", "")

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "Failed to list cities")
	})
}

func TestGetCity(t *testing.T) {
	london := &domain.City{
		ID:          3,
		Name:        "London",
		Description: "The one in England.",
		PointsOfInterest: []domain.PointOfInterest{
			{ID: 5, CityID: 3, Name: "Big Ben", Description: "Clock tower"},
		},
	}

	var gotInclude bool
	cities := &mocks.MockCityService{
		GetCityFn: func(ctx context.Context, id int64, include bool) (*domain.City, error) {
			gotInclude = include
			if id != 3 {
				return nil, service.ErrCityNotFound
			}
			c := *london
			if !include {
				c.PointsOfInterest = nil
			}
			return &c, nil
		},
	}
	router := newTestRouter(cities, &mocks.MockPointOfInterestService{})

	t.Run("summary by default", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodGet, "/api/v1/cities/3", "")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.False(t, gotInclude)
		assert.JSONEq(t, `{"id":3,"name":"London","description":"The one in England."}`, rr.Body.String())
	})

	t.Run("detail with points of interest", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodGet, "/api/v1/cities/3?includePointsOfInterest=true", "")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, gotInclude)
		assert.JSONEq(t, `{"id":3,"name":"London","description":"The one in England.",
			"pointsOfInterest":[{"id":5,"name":"Big Ben","description":"Clock tower"}]}`, rr.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodGet, "/api/v1/cities/42", "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodGet, "/api/v1/cities/abc", "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("invalid include flag", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodGet, "/api/v1/cities/3?includePointsOfInterest=maybe", "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestNewCityHandlerPanics(t *testing.T) {
	assert.Panics(t, func() { NewCityHandler(nil, testLogger()) })
	assert.Panics(t, func() { NewCityHandler(&mocks.MockCityService{}, nil) })
}
