package http

import (
	"net/http"

	"github.com/SerhiiL06/feathered-friends-marketplace/internal/service"
	"github.com/go-chi/chi/v5"
)

type BookmarkHandler struct {
	bookmarks *service.BookmarkService
}

func NewBookmarkHandler(bookmarks *service.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{bookmarks: bookmarks}
}

func (h *BookmarkHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	sessionKey := sessionKeyFromContext(r.Context())

	added, err := h.bookmarks.Toggle(r.Context(), sessionKey, chi.URLParam(r, "slug"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	if added {
		respondJSON(w, http.StatusCreated, map[string]string{"message": "bookmark added"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "bookmark removed"})
}

func (h *BookmarkHandler) List(w http.ResponseWriter, r *http.Request) {
	sessionKey := sessionKeyFromContext(r.Context())

	products, err := h.bookmarks.List(r.Context(), sessionKey)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}
