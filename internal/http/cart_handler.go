package http

import (
	"encoding/json"
	"net/http"

	"github.com/SerhiiL06/feathered-friends-marketplace/internal/service"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	cart *service.CartService
}

func NewCartHandler(cart *service.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

type addItemRequest struct {
	Quantity int64 `json:"quantity"`
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionKey := sessionKeyFromContext(r.Context())

	snapshot, err := h.cart.Snapshot(r.Context(), sessionKey)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if snapshot == nil {
		respondJSON(w, http.StatusOK, map[string]string{"message": "cart is empty"})
		return
	}

	respondJSON(w, http.StatusOK, snapshot)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionKey := sessionKeyFromContext(r.Context())
	slug := chi.URLParam(r, "slug")

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.cart.AddItem(r.Context(), sessionKey, slug, req.Quantity); err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"message": "added to cart"})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionKey := sessionKeyFromContext(r.Context())
	slug := chi.URLParam(r, "slug")

	if err := h.cart.RemoveItem(r.Context(), sessionKey, slug); err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "removed from cart"})
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sessionKey := sessionKeyFromContext(r.Context())

	if err := h.cart.Clear(r.Context(), sessionKey); err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "cart cleared"})
}
