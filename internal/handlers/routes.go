package handlers

import (
	"github.com/go-chi/chi/v5"
)

// Routes builds the API route tree. Mounted under /api by the server so
// tests exercise the same wiring production runs.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", h.APIHealth)

	r.With(h.RateLimit("verify", h.config.Verify.IssueLimit, h.config.Verify.IssueWindow)).
		Get("/verify-challenge", h.CreateChallenge)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.With(h.RequireAuth).Get("/me", h.Me)
	})

	r.Route("/businesses", func(r chi.Router) {
		r.Get("/", h.ListBusinesses)
		r.With(h.RequireAuth, h.RequireAdmin).Post("/", h.CreateBusiness)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetBusiness)
			r.With(h.RequireAuth, h.RequireAdmin).Put("/", h.UpdateBusiness)
			r.With(h.RequireAuth, h.RequireAdmin).Delete("/", h.DeleteBusiness)

			r.Get("/reviews", h.ListReviews)
			r.With(h.RequireAuth).Post("/reviews", h.SubmitReview)
		})
	})

	r.Route("/bookmarks", func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Get("/", h.ListBookmarks)
		r.Post("/{businessId}", h.ToggleBookmark)
	})

	r.Route("/deals", func(r chi.Router) {
		r.Get("/", h.ListDeals)
		r.With(h.RequireAuth, h.RequireAdmin).Post("/", h.CreateDeal)

		r.Route("/{id}", func(r chi.Router) {
			r.With(h.RequireAuth, h.RequireAdmin).Put("/", h.UpdateDeal)
			r.With(h.RequireAuth, h.RequireAdmin).Delete("/", h.DeleteDeal)

			r.With(h.OptionalAuth).Post("/view", h.RecordDealView)
			r.With(h.RequireAuth).Post("/copy", h.RecordDealCopy)
		})
	})

	r.With(h.RequireAuth, h.RequireAdmin).Delete("/reviews/{id}", h.DeleteReview)
	r.With(h.RequireAuth, h.RequireAdmin).Get("/admin/reviews", h.ListAllReviews)

	r.Route("/reports", func(r chi.Router) {
		r.Use(h.RequireAuth, h.RequireAdmin)
		r.Get("/top-rated", h.TopRatedReport)
		r.Get("/most-reviewed", h.MostReviewedReport)
		r.Get("/favorites", h.FavoritesReport)
		r.Get("/deals", h.DealPerformanceReport)
		r.Get("/category-distribution", h.CategoryDistributionReport)
		r.Get("/weekly-activity", h.WeeklyActivityReport)
		r.Get("/{type}.csv", h.ExportReportCSV)
	})

	return r
}
