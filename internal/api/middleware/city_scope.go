package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/cityinfo-api/internal/api/shared"
	"github.com/phrazzld/cityinfo-api/internal/domain"
	"github.com/phrazzld/cityinfo-api/internal/platform/logger"
)

// CityMatcher reports whether the city with the given id is named name.
type CityMatcher interface {
	CityNameMatchesCityID(ctx context.Context, name string, id int64) (bool, error)
}

// CityScopeMiddleware restricts access to a city's points of interest based
// on the city claim of the authenticated caller. It must run after Authenticate.
type CityScopeMiddleware struct {
	cities       CityMatcher
	requiredCity string
	cityIDParam  string
	logger       *slog.Logger
}

// NewCityScopeMiddleware creates a CityScopeMiddleware. requiredCity may be
// empty, in which case RequireConfiguredCity lets every caller through.
// cityIDParam names the chi route parameter holding the city id.
func NewCityScopeMiddleware(
	cities CityMatcher,
	requiredCity string,
	cityIDParam string,
	logger *slog.Logger,
) *CityScopeMiddleware {
	if cities == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cities cannot be nil for CityScopeMiddleware")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CityScopeMiddleware{
		cities:       cities,
		requiredCity: requiredCity,
		cityIDParam:  cityIDParam,
		logger:       logger.With(slog.String("component", "city_scope_middleware")),
	}
}

// RequireConfiguredCity rejects callers whose city claim differs from the
// configured required city.
func (m *CityScopeMiddleware) RequireConfiguredCity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.requiredCity == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, ok := GetClaims(r)
		if !ok {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Authentication required", domain.ErrUnauthorized)
			return
		}

		if claims.City != m.requiredCity {
			logger.FromContextOrDefault(r.Context(), m.logger).Info("caller city does not satisfy policy",
				slog.String("city", claims.City),
				slog.String("required_city", m.requiredCity))
			shared.RespondWithErrorAndLog(w, r, http.StatusForbidden,
				"You are not allowed to access this city", domain.ErrForbidden, shared.WithElevatedLogLevel())
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireCityMatch rejects callers whose city claim does not name the city
// addressed by the route. The check runs before any existence check, so a
// missing city is reported as forbidden.
func (m *CityScopeMiddleware) RequireCityMatch(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContextOrDefault(r.Context(), m.logger)

		claims, ok := GetClaims(r)
		if !ok {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Authentication required", domain.ErrUnauthorized)
			return
		}

		cityID, err := strconv.ParseInt(chi.URLParam(r, m.cityIDParam), 10, 64)
		if err != nil || cityID < 1 {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid ID", domain.ErrInvalidID,
				shared.WithFields(map[string][]string{m.cityIDParam: {"must be a positive integer"}}))
			return
		}

		matches, err := m.cities.CityNameMatchesCityID(r.Context(), claims.City, cityID)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to authorize request", err)
			return
		}
		if !matches {
			log.Info("city claim does not match target city",
				slog.String("city", claims.City),
				slog.Int64("city_id", cityID))
			shared.RespondWithErrorAndLog(w, r, http.StatusForbidden,
				"You are not allowed to access this city", domain.ErrForbidden, shared.WithElevatedLogLevel())
			return
		}

		next.ServeHTTP(w, r)
	})
}
