package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streetpulse/api/internal/domain"
)

type ReportRepository interface {
	TopRated(ctx context.Context, minReviews int) ([]domain.TopRatedRow, error)
	MostReviewed(ctx context.Context) ([]domain.MostReviewedRow, error)
	Favorites(ctx context.Context) ([]domain.FavoritesRow, error)
	DealPerformance(ctx context.Context) ([]domain.DealPerformanceRow, error)
	CategoryDistribution(ctx context.Context) ([]domain.CategoryCountRow, error)
	WeeklyActivity(ctx context.Context) ([]domain.WeeklyActivityRow, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

func (r *reportRepository) TopRated(ctx context.Context, minReviews int) ([]domain.TopRatedRow, error) {
	const q = `
SELECT b.name, b.category,
       ROUND(AVG(r.rating), 2)::float8 AS average_rating,
       COUNT(r.id)::int AS review_count
FROM businesses b
JOIN reviews r ON r.business_id = b.id
GROUP BY b.id
HAVING COUNT(r.id) >= $1
ORDER BY average_rating DESC, review_count DESC, b.name ASC
LIMIT 10`

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, minReviews)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.TopRatedRow
	for rows.Next() {
		var row domain.TopRatedRow
		if err := rows.Scan(&row.Name, &row.Category, &row.AverageRating, &row.ReviewCount); err != nil {
			return nil, err
		}
		items = append(items, row)
	}
	return items, rows.Err()
}

func (r *reportRepository) MostReviewed(ctx context.Context) ([]domain.MostReviewedRow, error) {
	const q = `
SELECT b.name, b.category, COUNT(r.id)::int AS review_count
FROM businesses b
LEFT JOIN reviews r ON r.business_id = b.id
GROUP BY b.id
ORDER BY review_count DESC, b.name ASC
LIMIT 10`

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.MostReviewedRow
	for rows.Next() {
		var row domain.MostReviewedRow
		if err := rows.Scan(&row.Name, &row.Category, &row.ReviewCount); err != nil {
			return nil, err
		}
		items = append(items, row)
	}
	return items, rows.Err()
}

func (r *reportRepository) Favorites(ctx context.Context) ([]domain.FavoritesRow, error) {
	const q = `
SELECT b.name, b.category, COUNT(bm.id)::int AS favorite_count
FROM businesses b
LEFT JOIN bookmarks bm ON bm.business_id = b.id
GROUP BY b.id
ORDER BY favorite_count DESC, b.name ASC
LIMIT 10`

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.FavoritesRow
	for rows.Next() {
		var row domain.FavoritesRow
		if err := rows.Scan(&row.Name, &row.Category, &row.FavoriteCount); err != nil {
			return nil, err
		}
		items = append(items, row)
	}
	return items, rows.Err()
}

func (r *reportRepository) DealPerformance(ctx context.Context) ([]domain.DealPerformanceRow, error) {
	const q = `
SELECT d.title, b.name AS business, d.copy_count, d.view_count
FROM deals d
JOIN businesses b ON b.id = d.business_id
ORDER BY d.copy_count DESC, d.view_count DESC, d.title ASC
LIMIT 10`

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.DealPerformanceRow
	for rows.Next() {
		var row domain.DealPerformanceRow
		if err := rows.Scan(&row.Title, &row.Business, &row.CopyCount, &row.ViewCount); err != nil {
			return nil, err
		}
		items = append(items, row)
	}
	return items, rows.Err()
}

func (r *reportRepository) CategoryDistribution(ctx context.Context) ([]domain.CategoryCountRow, error) {
	const q = `
SELECT category, COUNT(id)::int AS business_count
FROM businesses
GROUP BY category
ORDER BY business_count DESC, category ASC`

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CategoryCountRow
	for rows.Next() {
		var row domain.CategoryCountRow
		if err := rows.Scan(&row.Category, &row.BusinessCount); err != nil {
			return nil, err
		}
		items = append(items, row)
	}
	return items, rows.Err()
}

// WeeklyActivity buckets signups, reviews, bookmarks and deal interactions by
// ISO year-week over a trailing 56-day window.
func (r *reportRepository) WeeklyActivity(ctx context.Context) ([]domain.WeeklyActivityRow, error) {
	const q = `
SELECT to_char(created_at, 'IYYY-IW') AS week, COUNT(id)::int AS count, 'users' AS metric
FROM users
WHERE created_at >= now() - interval '56 days'
GROUP BY week
UNION ALL
SELECT to_char(created_at, 'IYYY-IW') AS week, COUNT(id)::int AS count, 'reviews' AS metric
FROM reviews
WHERE created_at >= now() - interval '56 days'
GROUP BY week
UNION ALL
SELECT to_char(created_at, 'IYYY-IW') AS week, COUNT(id)::int AS count, 'favorites' AS metric
FROM bookmarks
WHERE created_at >= now() - interval '56 days'
GROUP BY week
UNION ALL
SELECT to_char(created_at, 'IYYY-IW') AS week, COUNT(id)::int AS count, 'deal_interactions' AS metric
FROM deal_interactions
WHERE created_at >= now() - interval '56 days'
GROUP BY week
ORDER BY week ASC, metric ASC`

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.WeeklyActivityRow
	for rows.Next() {
		var row domain.WeeklyActivityRow
		if err := rows.Scan(&row.Week, &row.Count, &row.Metric); err != nil {
			return nil, err
		}
		items = append(items, row)
	}
	return items, rows.Err()
}
