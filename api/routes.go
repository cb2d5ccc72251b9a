package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the board API under /api.
func setupRoutes(r chi.Router, handlers *routeHandlers) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Route("/api", func(r chi.Router) {
			// Board document endpoints
			r.Get("/board", handlers.boardHandler.getBoard())
			r.Get("/board/export", handlers.boardHandler.exportBoard())
			r.Post("/board/import", handlers.boardHandler.importBoard())

			// Card endpoints
			r.Post("/card", handlers.cardHandler.createCard())
			r.Put("/card/{cardID}", handlers.cardHandler.updateCard())
			r.Delete("/card/{cardID}", handlers.cardHandler.deleteCard())

			// Column endpoints
			r.Get("/columns", handlers.columnHandler.getColumns())
			r.Post("/column", handlers.columnHandler.createColumn())
			r.Put("/column/{columnID}", handlers.columnHandler.updateColumn())
			r.Delete("/column/{columnID}", handlers.columnHandler.deleteColumn())

			// Project endpoints (addressed by positional index)
			r.Get("/projects", handlers.projectHandler.getProjects())
			r.Post("/project", handlers.projectHandler.createProject())
			r.Put("/project/{projectIndex}", handlers.projectHandler.updateProject())
			r.Delete("/project/{projectIndex}", handlers.projectHandler.deleteProject())
		})
	})
}
