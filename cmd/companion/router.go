package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/lecture-companion/internal/api"
	apiMiddleware "github.com/phrazzld/lecture-companion/internal/api/middleware"
	"github.com/phrazzld/lecture-companion/internal/api/shared"
)

// setupRouter creates the application router with the generation endpoints
// and the health check.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	// Set before mounting so the /api subrouter inherits them
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	handler := api.NewArtifactHandler(app.pipeline, app.config.Server.RequestTimeout(), app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/summary", handler.Summary)
		r.Post("/quiz", handler.Quiz)
		r.Post("/flashcards", handler.Flashcards)
	})

	r.Get("/health", handler.Health)

	return r
}
