package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public read surface, the auth endpoints and the
// gate-protected admin mutation surface
func setupRoutes(r chi.Router, handlers *routeHandlers, gate accessGate) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Public read endpoints
		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/projects/grouped", handlers.projectHandler.getGroupedProjects())
		r.Get("/projects/category/{category}", handlers.projectHandler.getProjectsByCategory())
		r.Get("/project/{projectID}", handlers.projectHandler.getProject())

		// Identity endpoints
		r.Post("/auth/login", handlers.authHandler.login())
		r.Post("/auth/logout", handlers.authHandler.logout())
		r.Get("/auth/session", handlers.authHandler.getSession())

		// Admin mutation surface, behind the access gate
		r.Group(func(r chi.Router) {
			r.Use(gate.requireAdmin)

			r.Post("/project", handlers.projectHandler.createProject())
			r.Put("/project/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/project/{projectID}", handlers.projectHandler.deleteProject())

			r.Get("/project/{projectID}/media", handlers.mediaHandler.listMedia())
			r.Delete("/project/{projectID}/media", handlers.mediaHandler.deleteMedia())

			r.Post("/admin/migrate", handlers.adminHandler.migrateSnapshot())
		})
	})
}
