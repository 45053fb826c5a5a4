package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/phrazzld/cityinfo-api/internal/api/shared"
	"github.com/phrazzld/cityinfo-api/internal/domain"
	"github.com/phrazzld/cityinfo-api/internal/platform/logger"
	"github.com/phrazzld/cityinfo-api/internal/service"
)

// PaginationHeader carries the pagination metadata of a city listing as JSON.
const PaginationHeader = "X-Pagination"

// Defaults applied when a listing omits its window parameters.
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
)

// CityHandler handles city-related HTTP requests
type CityHandler struct {
	cityService service.CityService
	logger      *slog.Logger
}

// NewCityHandler creates a new CityHandler
func NewCityHandler(cityService service.CityService, logger *slog.Logger) *CityHandler {
	if cityService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cityService cannot be nil for CityHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CityHandler")
	}

	return &CityHandler{
		cityService: cityService,
		logger:      logger.With(slog.String("component", "city_handler")),
	}
}

// ListCities handles GET /cities requests.
// It supports exact name filtering, a case-sensitive substring search over
// name and description, and pagination reported in the X-Pagination header.
func (h *CityHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	query, err := cityQueryFromRequest(r)
	if err != nil {
		log.Debug("invalid city listing parameters", slog.String("query", r.URL.RawQuery))
		HandleAPIError(w, r, err, "")
		return
	}

	cities, meta, err := h.cityService.ListCities(r.Context(), query)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list cities")
		return
	}

	header, err := json.Marshal(meta)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list cities")
		return
	}
	w.Header().Set(PaginationHeader, string(header))

	resp := make([]CitySummary, 0, len(cities))
	for _, c := range cities {
		resp = append(resp, citySummaryFromDomain(c))
	}

	log.Debug("listed cities",
		slog.Int("count", len(resp)),
		slog.Int("total_item_count", meta.TotalItemCount))
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetCity handles GET /cities/{cityId} requests.
// Points of interest are included only when includePointsOfInterest=true.
func (h *CityHandler) GetCity(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	cityID, err := getPathID(r, CityIDParam)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	include, err := getQueryBool(r, "includePointsOfInterest", false)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	city, err := h.cityService.GetCity(r.Context(), cityID, include)
	if err != nil {
		if service.IsNotFound(err) {
			log.Info("city not found", slog.Int64("city_id", cityID))
		}
		HandleAPIError(w, r, err, "Failed to get city")
		return
	}

	if include {
		shared.RespondWithJSON(w, r, http.StatusOK, cityDetailFromDomain(*city))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, citySummaryFromDomain(*city))
}

func cityQueryFromRequest(r *http.Request) (domain.CityQuery, error) {
	errs := &domain.ValidationErrors{}

	pageNumber, err := getQueryInt(r, "pageNumber", DefaultPageNumber)
	if err != nil {
		errs.Add("pageNumber", "must be an integer")
	}
	pageSize, err := getQueryInt(r, "pageSize", DefaultPageSize)
	if err != nil {
		errs.Add("pageSize", "must be an integer")
	}
	if err := errs.ErrOrNil(); err != nil {
		return domain.CityQuery{}, err
	}

	q := r.URL.Query()
	return domain.CityQuery{
		Name:        q.Get("name"),
		SearchQuery: q.Get("searchQuery"),
		PageNumber:  pageNumber,
		PageSize:    pageSize,
	}, nil
}
