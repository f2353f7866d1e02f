package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/streetpulse/api/internal/domain"
)

const defaultBusinessPageSize = 9

func (h *Handlers) ListBusinesses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.BusinessFilter{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		OpenNow:  q.Get("openNow") == "true",
	}
	sortBy := domain.BusinessSort(q.Get("sort"))
	page, pageSize := parsePage(r, defaultBusinessPageSize)

	items, pagination, err := h.directoryService.ListBusinesses(r.Context(), filter, sortBy, page, pageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if items == nil {
		items = []domain.Business{}
	}

	writeJSON(w, http.StatusOK, listResponse{Items: items, Pagination: &pagination})
}

func (h *Handlers) GetBusiness(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid business ID", "INVALID_INPUT")
		return
	}

	business, err := h.directoryService.GetBusiness(r.Context(), id)
	if err != nil {
		if err == domain.ErrNotFound {
			writeError(w, http.StatusNotFound, "Business not found.", "NOT_FOUND")
			return
		}
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, business)
}

func (h *Handlers) CreateBusiness(w http.ResponseWriter, r *http.Request) {
	var in domain.BusinessInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format", "INVALID_INPUT")
		return
	}

	business, err := h.directoryService.CreateBusiness(r.Context(), &in)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, business)
}

func (h *Handlers) UpdateBusiness(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid business ID", "INVALID_INPUT")
		return
	}

	var in domain.BusinessInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format", "INVALID_INPUT")
		return
	}

	if err := h.directoryService.UpdateBusiness(r.Context(), id, &in); err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handlers) DeleteBusiness(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid business ID", "INVALID_INPUT")
		return
	}

	if err := h.directoryService.DeleteBusiness(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
