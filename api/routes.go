package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(LoggerMiddleware(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.SetHeader("Content-Type", "application/json"))

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			s.respondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Route("/definitions", func(r chi.Router) {
			r.Get("/", s.handleListDefinitions)
			r.Post("/", s.handleDefinePreference)
			r.Get("/{key}", s.handleGetDefinition)
		})

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Route("/preferences", func(r chi.Router) {
				r.Get("/", s.handleGetAllUserPreferences)
				r.Get("/{key}", s.handleGetUserPreference)
				r.Put("/{key}", s.handleSetUserPreference)
				r.Delete("/{key}", s.handleDeleteUserPreference)
			})
			r.Route("/organization", func(r chi.Router) {
				r.Post("/check", s.handleCheckOrganization)
				r.Post("/apply", s.handleApplyOrganization)
			})
		})
	})
}
