package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"

	"github.com/eventx/namecard-services/internal/cardsvc/models"
	"github.com/eventx/namecard-services/internal/cardsvc/ratelimit"
	"github.com/eventx/namecard-services/internal/cardsvc/service"
	"github.com/eventx/namecard-services/internal/cardsvc/store"
	"github.com/eventx/namecard-services/internal/cardsvc/web"
)

type Handler struct {
	cards     *service.CardService
	sales     *service.SalesService
	limiter   *ratelimit.Limiter
	pages     *web.Renderer
	tokenAuth *jwtauth.JWTAuth
}

func NewHandler(cards *service.CardService, sales *service.SalesService, limiter *ratelimit.Limiter, pages *web.Renderer) *Handler {
	return &Handler{
		cards:   cards,
		sales:   sales,
		limiter: limiter,
		pages:   pages,
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// apiError maps service and store failures onto the wire contract.
// Storage details stay in the log; clients get a generic 500.
func apiError(w http.ResponseWriter, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "Card not found")
	case errors.Is(err, service.ErrWrongPassword):
		writeError(w, http.StatusForbidden, "Incorrect Password")
	default:
		log.Errorf("card api error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

// clientKey identifies a caller for the create limiter: first hop of
// X-Forwarded-For, or a shared placeholder when the proxy header is absent.
func clientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if ip := strings.TrimSpace(strings.Split(fwd, ",")[0]); ip != "" {
			return ip
		}
	}
	return "unknown"
}

// CreateCard handles POST /v1/cards.
func (h *Handler) CreateCard(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(clientKey(r)) {
		writeError(w, http.StatusTooManyRequests, "Please wait 1 minute before creating another card.")
		return
	}

	var input models.CardInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := h.cards.Create(r.Context(), input)
	if err != nil {
		apiError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

type editRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
	models.CardPatch
}

// EditCard handles PUT /v1/cards/edit.
func (h *Handler) EditCard(w http.ResponseWriter, r *http.Request) {
	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ID == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Missing ID or Password")
		return
	}

	if err := h.cards.Update(r.Context(), req.ID, req.Password, req.CardPatch); err != nil {
		apiError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "id": req.ID})
}

type verifyRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

// VerifyCard handles POST /v1/cards/verify. Read-only owner check that
// returns the card for the edit form.
func (h *Handler) VerifyCard(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ID == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Missing ID or Password")
		return
	}

	card, err := h.cards.Verify(r.Context(), req.ID, req.Password)
	if err != nil {
		apiError(w, err)
		return
	}
	card.ID = ""

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "card": card})
}

// ListSalesCards handles GET /v1/internal/cards, for internal tooling only.
func (h *Handler) ListSalesCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.sales.List(r.Context())
	if err != nil {
		apiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"cards": cards})
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
