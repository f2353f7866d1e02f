package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streetpulse/api/internal/domain"
)

type ReviewRepository interface {
	// Create inserts a review. The UNIQUE(business_id, user_id) constraint is
	// the only duplicate guard; a violation comes back as ErrDuplicateReview.
	Create(ctx context.Context, businessID, userID int64, rating int, text string) (*domain.Review, error)
	ListByBusiness(ctx context.Context, businessID int64) ([]domain.Review, error)
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context, limit int) ([]domain.AdminReview, error)
}

type reviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &reviewRepository{pool: pool}
}

func (r *reviewRepository) Create(ctx context.Context, businessID, userID int64, rating int, text string) (*domain.Review, error) {
	const q = `INSERT INTO reviews (business_id, user_id, rating, review_text)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rev := domain.Review{
		BusinessID: businessID,
		UserID:     userID,
		Rating:     rating,
		ReviewText: text,
	}
	err := r.pool.QueryRow(ctx, q, businessID, userID, rating, text).Scan(&rev.ID, &rev.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateReview
		}
		return nil, err
	}
	return &rev, nil
}

func (r *reviewRepository) ListByBusiness(ctx context.Context, businessID int64) ([]domain.Review, error) {
	const q = `
SELECT r.id, r.business_id, r.user_id, r.rating, r.review_text, r.created_at,
       u.full_name, u.email
FROM reviews r
JOIN users u ON u.id = r.user_id
WHERE r.business_id = $1
ORDER BY r.created_at DESC, r.id DESC`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rev domain.Review
		if err := rows.Scan(
			&rev.ID, &rev.BusinessID, &rev.UserID, &rev.Rating, &rev.ReviewText, &rev.CreatedAt,
			&rev.UserName, &rev.UserEmail,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func (r *reviewRepository) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM reviews WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tag, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *reviewRepository) ListAll(ctx context.Context, limit int) ([]domain.AdminReview, error) {
	const q = `
SELECT r.id, r.rating, r.review_text, r.created_at,
       b.name AS business_name,
       u.full_name AS reviewer_name,
       u.email AS reviewer_email
FROM reviews r
JOIN businesses b ON b.id = r.business_id
JOIN users u ON u.id = r.user_id
ORDER BY r.created_at DESC, r.id DESC
LIMIT $1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.AdminReview
	for rows.Next() {
		var rev domain.AdminReview
		if err := rows.Scan(
			&rev.ID, &rev.Rating, &rev.ReviewText, &rev.CreatedAt,
			&rev.BusinessName, &rev.ReviewerName, &rev.ReviewerEmail,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}
