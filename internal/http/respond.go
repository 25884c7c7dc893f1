package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SerhiiL06/feathered-friends-marketplace/internal/cache"
	"github.com/SerhiiL06/feathered-friends-marketplace/internal/repository"
	"github.com/SerhiiL06/feathered-friends-marketplace/internal/service"
)

type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// handleServiceError translates service outcomes into HTTP responses.
// Business results get specific statuses; anything unrecognized is an
// infrastructure fault and maps to 500 without leaking details.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  "validation failed",
			Code:   "validation_failed",
			Fields: verr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrCartEmpty):
		respondError(w, http.StatusBadRequest, "cart_empty", "cart is empty")
	case errors.Is(err, repository.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "not_found", "product not found")
	case errors.Is(err, repository.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "not_found", "order not found")
	case errors.Is(err, repository.ErrUserNotFound):
		respondError(w, http.StatusNotFound, "not_found", "user not found")
	case errors.Is(err, repository.ErrEmailTaken):
		respondError(w, http.StatusConflict, "email_taken", "email already registered")
	case errors.Is(err, cache.ErrBlocked):
		respondError(w, http.StatusTooManyRequests, "too_many_attempts", err.Error())
	case errors.Is(err, service.ErrWrongPassword):
		respondError(w, http.StatusBadRequest, "wrong_password", "password was wrong")
	default:
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
