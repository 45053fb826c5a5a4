package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/cityinfo-api/internal/api"
	"github.com/phrazzld/cityinfo-api/internal/api/middleware"
	"github.com/phrazzld/cityinfo-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if app.config.Server.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.NewTraceMiddleware(app.logger))
	r.Use(chimw.Recoverer)
	r.Use(app.metrics.InstrumentHandler)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Server.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", shared.TraceIDHeader},
		ExposedHeaders:   []string{api.PaginationHeader, "Location", shared.TraceIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if app.rateLimiter != nil {
		r.Use(app.rateLimiter.Handler)
	}

	cityHandler := api.NewCityHandler(app.cityService, app.logger)
	pointHandler := api.NewPointOfInterestHandler(app.pointService, app.logger)
	authMiddleware := middleware.NewAuthMiddleware(app.jwtService)
	cityScope := middleware.NewCityScopeMiddleware(
		app.cityService,
		app.config.Auth.RequiredCity,
		api.CityIDParam,
		app.logger,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/cities", cityHandler.ListCities)
		r.Get("/cities/{cityId}", cityHandler.GetCity)

		r.Route("/cities/{cityId}/pointsofinterest", func(r chi.Router) {
			r.Use(cityScope.RequireConfiguredCity)

			r.Get("/", pointHandler.ListPointsOfInterest)
			r.Get("/{pointOfInterestId}", pointHandler.GetPointOfInterest)

			r.Group(func(r chi.Router) {
				r.Use(cityScope.RequireCityMatch)

				r.Post("/", pointHandler.CreatePointOfInterest)
				r.Put("/{pointOfInterestId}", pointHandler.UpdatePointOfInterest)
				r.Patch("/{pointOfInterestId}", pointHandler.PatchPointOfInterest)
				r.Delete("/{pointOfInterestId}", pointHandler.DeletePointOfInterest)
			})
		})
	})

	r.Get("/health", app.handleHealth)
	r.Method(http.MethodGet, "/metrics", app.metrics.Handler())

	return r
}

// handleHealth reports 200 when the store answers a ping and 503 otherwise.
func (app *application) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := app.store.Ping(ctx); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable, "Store unavailable", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
