package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/streetpulse/api/internal/domain"
)

const defaultDealPageSize = 6

func (h *Handlers) ListDeals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.DealFilter{
		Category:     q.Get("category"),
		ExpiringSoon: q.Get("expiringSoon") == "true",
	}
	if v := q.Get("businessId"); v != "" {
		if id, err := parseID(v); err == nil {
			filter.BusinessID = id
		}
	}
	page, pageSize := parsePage(r, defaultDealPageSize)

	items, pagination, err := h.dealService.ListDeals(r.Context(), filter, page, pageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if items == nil {
		items = []domain.Deal{}
	}

	writeJSON(w, http.StatusOK, listResponse{Items: items, Pagination: &pagination})
}

func (h *Handlers) CreateDeal(w http.ResponseWriter, r *http.Request) {
	var in domain.DealInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format", "INVALID_INPUT")
		return
	}

	deal, err := h.dealService.CreateDeal(r.Context(), &in)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, deal)
}

func (h *Handlers) UpdateDeal(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid deal ID", "INVALID_INPUT")
		return
	}

	var in domain.DealInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format", "INVALID_INPUT")
		return
	}

	if err := h.dealService.UpdateDeal(r.Context(), id, &in); err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handlers) DeleteDeal(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid deal ID", "INVALID_INPUT")
		return
	}

	if err := h.dealService.DeleteDeal(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// RecordDealView counts a view for anonymous and signed-in users alike.
// The route sits behind OptionalAuth so claims may be absent.
func (h *Handlers) RecordDealView(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid deal ID", "INVALID_INPUT")
		return
	}

	var userID *int64
	if claims := getClaims(r); claims != nil {
		userID = &claims.Sub
	}

	if err := h.dealService.RecordView(r.Context(), id, userID); err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handlers) RecordDealCopy(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid deal ID", "INVALID_INPUT")
		return
	}

	claims := getClaims(r)

	if err := h.dealService.RecordCopy(r.Context(), id, claims.Sub); err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
