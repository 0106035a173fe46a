package handlers

import (
	"os"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Route("/v1", func(r chi.Router) {

		// public routes
		r.Get("/health", h.HealthHandler)
		r.Post("/cards", h.CreateCard)
		r.Put("/cards/edit", h.EditCard)
		r.Post("/cards/verify", h.VerifyCard)

		// Secure routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Get("/internal/cards", h.ListSalesCards)
		})
	})

	// server-rendered pages
	r.Get("/", h.HomePage)
	r.Get("/create", h.CreatePage)
	r.Get("/user/{id}", h.CardPage)
	r.Get("/user/{id}/edit", h.EditPage)
	r.Get("/c/{id}", h.SalesCardPage)
}

func (h *Handler) InitAuth() {
	var jwtKey = os.Getenv("JWT_SECRET_KEY")
	h.tokenAuth = jwtauth.New("HS256", []byte(jwtKey), nil)
}
