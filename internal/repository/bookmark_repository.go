package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streetpulse/api/internal/domain"
)

type BookmarkRepository interface {
	Find(ctx context.Context, businessID, userID int64) (*domain.Bookmark, error)
	Create(ctx context.Context, businessID, userID int64) (*domain.Bookmark, error)
	Delete(ctx context.Context, id int64) error
}

type bookmarkRepository struct {
	pool *pgxpool.Pool
}

func NewBookmarkRepository(pool *pgxpool.Pool) BookmarkRepository {
	return &bookmarkRepository{pool: pool}
}

func (r *bookmarkRepository) Find(ctx context.Context, businessID, userID int64) (*domain.Bookmark, error) {
	const q = `SELECT id, business_id, user_id, created_at
FROM bookmarks WHERE business_id = $1 AND user_id = $2`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var bm domain.Bookmark
	err := r.pool.QueryRow(ctx, q, businessID, userID).Scan(
		&bm.ID, &bm.BusinessID, &bm.UserID, &bm.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &bm, nil
}

// Create inserts a bookmark. The UNIQUE(business_id, user_id) constraint
// guarantees at most one row per pair even when two toggles race; the loser's
// insert fails and is treated as already-saved.
func (r *bookmarkRepository) Create(ctx context.Context, businessID, userID int64) (*domain.Bookmark, error) {
	const q = `INSERT INTO bookmarks (business_id, user_id)
VALUES ($1, $2)
RETURNING id, business_id, user_id, created_at`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var bm domain.Bookmark
	err := r.pool.QueryRow(ctx, q, businessID, userID).Scan(
		&bm.ID, &bm.BusinessID, &bm.UserID, &bm.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// Raced with a concurrent save; the row exists, which is the
			// outcome the caller wanted.
			return nil, nil
		}
		return nil, err
	}
	return &bm, nil
}

func (r *bookmarkRepository) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM bookmarks WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, q, id)
	return err
}
