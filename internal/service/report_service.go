package service

import (
	"context"

	"github.com/streetpulse/api/internal/domain"
	"github.com/streetpulse/api/internal/repository"
)

// defaultMinReviews is the review-count floor for the top-rated report.
const defaultMinReviews = 3

type ReportService interface {
	TopRated(ctx context.Context, minReviews int) ([]domain.TopRatedRow, error)
	MostReviewed(ctx context.Context) ([]domain.MostReviewedRow, error)
	Favorites(ctx context.Context) ([]domain.FavoritesRow, error)
	DealPerformance(ctx context.Context) ([]domain.DealPerformanceRow, error)
	CategoryDistribution(ctx context.Context) ([]domain.CategoryCountRow, error)
	WeeklyActivity(ctx context.Context) ([]domain.WeeklyActivityRow, error)
}

type reportService struct {
	reportRepo repository.ReportRepository
}

func NewReportService(reportRepo repository.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo}
}

func (s *reportService) TopRated(ctx context.Context, minReviews int) ([]domain.TopRatedRow, error) {
	if minReviews < 1 {
		minReviews = defaultMinReviews
	}
	return s.reportRepo.TopRated(ctx, minReviews)
}

func (s *reportService) MostReviewed(ctx context.Context) ([]domain.MostReviewedRow, error) {
	return s.reportRepo.MostReviewed(ctx)
}

func (s *reportService) Favorites(ctx context.Context) ([]domain.FavoritesRow, error) {
	return s.reportRepo.Favorites(ctx)
}

func (s *reportService) DealPerformance(ctx context.Context) ([]domain.DealPerformanceRow, error) {
	return s.reportRepo.DealPerformance(ctx)
}

func (s *reportService) CategoryDistribution(ctx context.Context) ([]domain.CategoryCountRow, error) {
	return s.reportRepo.CategoryDistribution(ctx)
}

func (s *reportService) WeeklyActivity(ctx context.Context) ([]domain.WeeklyActivityRow, error) {
	return s.reportRepo.WeeklyActivity(ctx)
}
