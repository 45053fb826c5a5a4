package api

import (
	"log/slog"
	"net/http"
	"path"
	"strconv"

	"github.com/phrazzld/cityinfo-api/internal/api/shared"
	"github.com/phrazzld/cityinfo-api/internal/platform/logger"
	"github.com/phrazzld/cityinfo-api/internal/service"
)

// PointOfInterestHandler handles city-scoped point-of-interest requests.
type PointOfInterestHandler struct {
	pointService service.PointOfInterestService
	logger       *slog.Logger
}

// NewPointOfInterestHandler creates a new PointOfInterestHandler
func NewPointOfInterestHandler(
	pointService service.PointOfInterestService,
	logger *slog.Logger,
) *PointOfInterestHandler {
	if pointService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("pointService cannot be nil for PointOfInterestHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PointOfInterestHandler")
	}

	return &PointOfInterestHandler{
		pointService: pointService,
		logger:       logger.With(slog.String("component", "point_of_interest_handler")),
	}
}

// ListPointsOfInterest handles GET /cities/{cityId}/pointsofinterest requests.
func (h *PointOfInterestHandler) ListPointsOfInterest(w http.ResponseWriter, r *http.Request) {
	cityID, err := getPathID(r, CityIDParam)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	points, err := h.pointService.ListPointsOfInterest(r.Context(), cityID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get points of interest")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, pointsOfInterestFromDomain(points))
}

// GetPointOfInterest handles GET /cities/{cityId}/pointsofinterest/{pointOfInterestId} requests.
func (h *PointOfInterestHandler) GetPointOfInterest(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	cityID, pointID, err := getCityAndPointIDs(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	point, err := h.pointService.GetPointOfInterest(r.Context(), cityID, pointID)
	if err != nil {
		if service.IsNotFound(err) {
			log.Info("point of interest not found",
				slog.Int64("city_id", cityID),
				slog.Int64("point_of_interest_id", pointID))
		}
		HandleAPIError(w, r, err, "Failed to get point of interest")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, pointOfInterestFromDomain(*point))
}

// CreatePointOfInterest handles POST /cities/{cityId}/pointsofinterest requests.
// It responds 201 Created with the new point and its Location.
func (h *PointOfInterestHandler) CreatePointOfInterest(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	cityID, err := getPathID(r, CityIDParam)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req PointOfInterestRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	point, err := h.pointService.CreatePointOfInterest(r.Context(), cityID, req.Name, req.Description)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create point of interest")
		return
	}

	log.Info("point of interest created",
		slog.Int64("city_id", cityID),
		slog.Int64("point_of_interest_id", point.ID))

	w.Header().Set("Location", path.Join(r.URL.Path, strconv.FormatInt(point.ID, 10)))
	shared.RespondWithJSON(w, r, http.StatusCreated, pointOfInterestFromDomain(*point))
}

// UpdatePointOfInterest handles PUT /cities/{cityId}/pointsofinterest/{pointOfInterestId}
// requests, fully replacing the point's fields.
func (h *PointOfInterestHandler) UpdatePointOfInterest(w http.ResponseWriter, r *http.Request) {
	cityID, pointID, err := getCityAndPointIDs(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req PointOfInterestRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.pointService.UpdatePointOfInterest(r.Context(), cityID, pointID, req.Name, req.Description); err != nil {
		HandleAPIError(w, r, err, "Failed to update point of interest")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PatchPointOfInterest handles PATCH /cities/{cityId}/pointsofinterest/{pointOfInterestId}
// requests carrying a JSON Patch document limited to /name and /description.
func (h *PointOfInterestHandler) PatchPointOfInterest(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	cityID, pointID, err := getCityAndPointIDs(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var ops []PatchOperation
	if err := shared.DecodeJSON(r, &ops); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	patch, err := patchFromDocument(ops)
	if err != nil {
		log.Debug("rejected patch document",
			slog.Int64("point_of_interest_id", pointID),
			slog.Int("operation_count", len(ops)))
		HandleAPIError(w, r, err, "")
		return
	}

	if _, err := h.pointService.PatchPointOfInterest(r.Context(), cityID, pointID, patch); err != nil {
		HandleAPIError(w, r, err, "Failed to patch point of interest")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeletePointOfInterest handles DELETE /cities/{cityId}/pointsofinterest/{pointOfInterestId} requests.
func (h *PointOfInterestHandler) DeletePointOfInterest(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	cityID, pointID, err := getCityAndPointIDs(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.pointService.DeletePointOfInterest(r.Context(), cityID, pointID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete point of interest")
		return
	}

	log.Info("point of interest deleted",
		slog.Int64("city_id", cityID),
		slog.Int64("point_of_interest_id", pointID))
	w.WriteHeader(http.StatusNoContent)
}
