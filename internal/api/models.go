package api

import (
	"encoding/json"

	"github.com/phrazzld/cityinfo-api/internal/domain"
)

// CitySummary is a city without its points of interest.
type CitySummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CityDetail is a city together with its points of interest.
type CityDetail struct {
	ID               int64                     `json:"id"`
	Name             string                    `json:"name"`
	Description      string                    `json:"description"`
	PointsOfInterest []PointOfInterestResponse `json:"pointsOfInterest"`
}

// PointOfInterestResponse represents the response data for a point of interest
type PointOfInterestResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PointOfInterestRequest is the payload for creating or replacing a point of interest.
type PointOfInterestRequest struct {
	Name        string `json:"name"        validate:"required,max=50"`
	Description string `json:"description" validate:"max=200"`
}

// PatchOperation is one operation of an RFC 6902 JSON Patch document.
type PatchOperation struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	From  string          `json:"from,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
}

func citySummaryFromDomain(c domain.City) CitySummary {
	return CitySummary{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}

func cityDetailFromDomain(c domain.City) CityDetail {
	points := make([]PointOfInterestResponse, 0, len(c.PointsOfInterest))
	for _, p := range c.PointsOfInterest {
		points = append(points, pointOfInterestFromDomain(p))
	}

	return CityDetail{
		ID:               c.ID,
		Name:             c.Name,
		Description:      c.Description,
		PointsOfInterest: points,
	}
}

func pointOfInterestFromDomain(p domain.PointOfInterest) PointOfInterestResponse {
	return PointOfInterestResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
	}
}

func pointsOfInterestFromDomain(points []domain.PointOfInterest) []PointOfInterestResponse {
	resp := make([]PointOfInterestResponse, 0, len(points))
	for _, p := range points {
		resp = append(resp, pointOfInterestFromDomain(p))
	}
	return resp
}
