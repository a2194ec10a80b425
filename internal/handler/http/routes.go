package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
	})

	router.Route("/api/credentials", func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/", h.listCredentials)
		r.Post("/", h.createCredential)

		r.Route("/{credentialID}", func(r chi.Router) {
			r.Get("/", h.getCredential)
			r.Put("/", h.updateCredential)
			r.Patch("/", h.updateCredential)
			r.Delete("/", h.deleteCredential)
			r.Post("/reveal", h.revealCredential)
		})
	})

	return router
}
