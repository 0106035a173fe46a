package handlers

import (
	"net/http"

	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"

	"github.com/eventx/namecard-services/internal/cardsvc/web"
)

func (h *Handler) HomePage(w http.ResponseWriter, r *http.Request) {
	h.pages.Render(w, http.StatusOK, "index.html", nil)
}

func (h *Handler) CreatePage(w http.ResponseWriter, r *http.Request) {
	h.pages.Render(w, http.StatusOK, "create.html", nil)
}

// CardPage renders the public card view for GET /user/{id}.
func (h *Handler) CardPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	card, err := h.cards.Public(r.Context(), id)
	if err != nil {
		h.notFound(w, err)
		return
	}
	h.pages.Render(w, http.StatusOK, "card.html", web.NewCardPage(*card))
}

// EditPage serves the verify-then-edit form for GET /user/{id}/edit.
// The form talks to the verify and edit endpoints itself.
func (h *Handler) EditPage(w http.ResponseWriter, r *http.Request) {
	h.pages.Render(w, http.StatusOK, "edit.html", struct{ ID string }{ID: chi.URLParam(r, "id")})
}

// SalesCardPage renders an internal sales-team card for GET /c/{id}.
func (h *Handler) SalesCardPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	card, err := h.sales.Get(r.Context(), id)
	if err != nil {
		h.notFound(w, err)
		return
	}
	h.pages.Render(w, http.StatusOK, "sales_card.html", web.NewCardPage(*card))
}

// notFound is the page-side failure path: unknown ids and storage errors
// both end on the 404 page, with the detail logged.
func (h *Handler) notFound(w http.ResponseWriter, err error) {
	log.Warnf("card page: %v", err)
	h.pages.Render(w, http.StatusNotFound, "notfound.html", nil)
}
