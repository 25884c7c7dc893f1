package http

import (
	"encoding/json"
	"net/http"

	"github.com/SerhiiL06/feathered-friends-marketplace/internal/domain"
	"github.com/SerhiiL06/feathered-friends-marketplace/internal/service"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type checkoutRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	City      string `json:"city"`
	ZipCode   string `json:"zip_code"`
}

func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sessionKey := sessionKeyFromContext(r.Context())

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	recipient := domain.Recipient{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		City:      req.City,
		ZipCode:   req.ZipCode,
	}

	link, err := h.orders.Checkout(r.Context(), sessionKey, recipient)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"payment_link": link})
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.Orders(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Order(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) PaymentStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.orders.VerifyPayment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": status})
}
