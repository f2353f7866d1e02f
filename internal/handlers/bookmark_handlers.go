package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/streetpulse/api/internal/domain"
)

func (h *Handlers) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	businessID, err := parseID(chi.URLParam(r, "businessId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid business ID", "INVALID_INPUT")
		return
	}

	claims := getClaims(r)

	result, err := h.bookmarkService.Toggle(r.Context(), businessID, claims.Sub)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)

	items, err := h.bookmarkService.ListSaved(r.Context(), claims.Sub)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if items == nil {
		items = []domain.Business{}
	}

	writeJSON(w, http.StatusOK, listResponse{Items: items})
}
