package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/streetpulse/api/internal/domain"
)

const defaultMinReviews = 3

func (h *Handlers) TopRatedReport(w http.ResponseWriter, r *http.Request) {
	minReviews := defaultMinReviews
	if v := r.URL.Query().Get("minReviews"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			minReviews = n
		}
	}

	rows, err := h.reportService.TopRated(r.Context(), minReviews)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if rows == nil {
		rows = []domain.TopRatedRow{}
	}

	writeJSON(w, http.StatusOK, listResponse{Items: rows})
}

func (h *Handlers) MostReviewedReport(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportService.MostReviewed(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if rows == nil {
		rows = []domain.MostReviewedRow{}
	}

	writeJSON(w, http.StatusOK, listResponse{Items: rows})
}

func (h *Handlers) FavoritesReport(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportService.Favorites(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if rows == nil {
		rows = []domain.FavoritesRow{}
	}

	writeJSON(w, http.StatusOK, listResponse{Items: rows})
}

func (h *Handlers) DealPerformanceReport(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportService.DealPerformance(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if rows == nil {
		rows = []domain.DealPerformanceRow{}
	}

	writeJSON(w, http.StatusOK, listResponse{Items: rows})
}

func (h *Handlers) CategoryDistributionReport(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportService.CategoryDistribution(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if rows == nil {
		rows = []domain.CategoryCountRow{}
	}

	writeJSON(w, http.StatusOK, listResponse{Items: rows})
}

func (h *Handlers) WeeklyActivityReport(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportService.WeeklyActivity(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if rows == nil {
		rows = []domain.WeeklyActivityRow{}
	}

	writeJSON(w, http.StatusOK, listResponse{Items: rows})
}

// ExportReportCSV serves the same rows as the JSON reports, as a CSV
// download keyed by the {type} path segment.
func (h *Handlers) ExportReportCSV(w http.ResponseWriter, r *http.Request) {
	reportType := chi.URLParam(r, "type")

	var header []string
	var records [][]string

	switch reportType {
	case "top-rated":
		rows, err := h.reportService.TopRated(r.Context(), defaultMinReviews)
		if err != nil {
			respondError(w, r, err)
			return
		}
		header = []string{"name", "category", "average_rating", "review_count"}
		for _, row := range rows {
			records = append(records, []string{
				row.Name,
				row.Category,
				strconv.FormatFloat(row.AverageRating, 'f', 2, 64),
				strconv.Itoa(row.ReviewCount),
			})
		}
	case "most-reviewed":
		rows, err := h.reportService.MostReviewed(r.Context())
		if err != nil {
			respondError(w, r, err)
			return
		}
		header = []string{"name", "category", "review_count"}
		for _, row := range rows {
			records = append(records, []string{row.Name, row.Category, strconv.Itoa(row.ReviewCount)})
		}
	case "favorites":
		rows, err := h.reportService.Favorites(r.Context())
		if err != nil {
			respondError(w, r, err)
			return
		}
		header = []string{"name", "category", "favorite_count"}
		for _, row := range rows {
			records = append(records, []string{row.Name, row.Category, strconv.Itoa(row.FavoriteCount)})
		}
	case "deals":
		rows, err := h.reportService.DealPerformance(r.Context())
		if err != nil {
			respondError(w, r, err)
			return
		}
		header = []string{"title", "business", "copy_count", "view_count"}
		for _, row := range rows {
			records = append(records, []string{
				row.Title,
				row.Business,
				strconv.Itoa(row.CopyCount),
				strconv.Itoa(row.ViewCount),
			})
		}
	case "category-distribution":
		rows, err := h.reportService.CategoryDistribution(r.Context())
		if err != nil {
			respondError(w, r, err)
			return
		}
		header = []string{"category", "business_count"}
		for _, row := range rows {
			records = append(records, []string{row.Category, strconv.Itoa(row.BusinessCount)})
		}
	case "weekly-activity":
		rows, err := h.reportService.WeeklyActivity(r.Context())
		if err != nil {
			respondError(w, r, err)
			return
		}
		header = []string{"week", "count", "metric"}
		for _, row := range rows {
			records = append(records, []string{row.Week, strconv.Itoa(row.Count), row.Metric})
		}
	default:
		writeError(w, http.StatusNotFound, "Unknown report type.", "NOT_FOUND")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", reportType+".csv"))

	cw := csv.NewWriter(w)
	cw.Write(header)
	cw.WriteAll(records)
}
