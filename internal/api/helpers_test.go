package api

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/cityinfo-api/internal/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestRouter mounts the handlers on the same paths the server uses.
func newTestRouter(cities service.CityService, points service.PointOfInterestService) http.Handler {
	cityHandler := NewCityHandler(cities, testLogger())
	pointHandler := NewPointOfInterestHandler(points, testLogger())

	r := chi.NewRouter()
	r.Get("/api/v1/cities", cityHandler.ListCities)
	r.Get("/api/v1/cities/{cityId}", cityHandler.GetCity)
	r.Route("/api/v1/cities/{cityId}/pointsofinterest", func(r chi.Router) {
		r.Get("/", pointHandler.ListPointsOfInterest)
		r.Post("/", pointHandler.CreatePointOfInterest)
		r.Get("/{pointOfInterestId}", pointHandler.GetPointOfInterest)
		r.Put("/{pointOfInterestId}", pointHandler.UpdatePointOfInterest)
		r.Patch("/{pointOfInterestId}", pointHandler.PatchPointOfInterest)
		r.Delete("/{pointOfInterestId}", pointHandler.DeletePointOfInterest)
	})
	return r
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
