package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/streetpulse/api/internal/domain"
)

const defaultReviewPageSize = 5

func (h *Handlers) ListReviews(w http.ResponseWriter, r *http.Request) {
	businessID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid business ID", "INVALID_INPUT")
		return
	}

	page, pageSize := parsePage(r, defaultReviewPageSize)

	items, pagination, err := h.reviewService.ListReviews(r.Context(), businessID, page, pageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if items == nil {
		items = []domain.Review{}
	}

	writeJSON(w, http.StatusOK, listResponse{Items: items, Pagination: &pagination})
}

func (h *Handlers) SubmitReview(w http.ResponseWriter, r *http.Request) {
	businessID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid business ID", "INVALID_INPUT")
		return
	}

	claims := getClaims(r)

	var req domain.SubmitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format", "INVALID_INPUT")
		return
	}

	review, err := h.reviewService.SubmitReview(r.Context(), businessID, claims.Sub, &req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, review)
}

func (h *Handlers) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid review ID", "INVALID_INPUT")
		return
	}

	if err := h.reviewService.DeleteReview(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handlers) ListAllReviews(w http.ResponseWriter, r *http.Request) {
	items, err := h.reviewService.ListAllReviews(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if items == nil {
		items = []domain.AdminReview{}
	}

	writeJSON(w, http.StatusOK, items)
}
