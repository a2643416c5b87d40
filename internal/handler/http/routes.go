package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withLogging)

	router.Get("/api/session", h.currentSession)

	router.Route("/api/admin", func(r chi.Router) {
		r.Get("/users", h.listUsers)
		r.Delete("/users/{email}", h.revokeUser)
	})

	return router
}
