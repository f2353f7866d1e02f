package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streetpulse/api/internal/domain"
)

type DealRepository interface {
	// List returns deals joined with their business name. Category is a valid
	// category or empty; businessID narrows to one business when non-zero.
	List(ctx context.Context, category string, businessID int64) ([]domain.Deal, error)
	GetByID(ctx context.Context, id int64) (*domain.Deal, error)
	Create(ctx context.Context, in *domain.DealInput) (*domain.Deal, error)
	Update(ctx context.Context, id int64, in *domain.DealInput) error
	Delete(ctx context.Context, id int64) error
	// RecordInteraction bumps the matching counter and appends a log row.
	// Counter increments are single-statement and eventually correct; they are
	// not linearizable under concurrent load, which is acceptable for
	// view/copy counts.
	RecordInteraction(ctx context.Context, dealID int64, userID *int64, itype string) error
}

type dealRepository struct {
	pool *pgxpool.Pool
}

func NewDealRepository(pool *pgxpool.Pool) DealRepository {
	return &dealRepository{pool: pool}
}

const dealCols = `d.id, d.business_id, d.title, d.description, d.discount_value,
d.start_date, d.end_date, d.terms, d.coupon_code, d.redemption_instructions,
d.category, d.view_count, d.copy_count, d.created_at`

func (r *dealRepository) List(ctx context.Context, category string, businessID int64) ([]domain.Deal, error) {
	const q = `
SELECT ` + dealCols + `, COALESCE(b.name, '') AS business_name
FROM deals d
LEFT JOIN businesses b ON b.id = d.business_id
WHERE ($1 = '' OR d.category = $1)
  AND ($2 = 0 OR d.business_id = $2)`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, category, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deals []domain.Deal
	for rows.Next() {
		var d domain.Deal
		if err := rows.Scan(
			&d.ID, &d.BusinessID, &d.Title, &d.Description, &d.DiscountValue,
			&d.StartDate, &d.EndDate, &d.Terms, &d.CouponCode, &d.RedemptionInstructions,
			&d.Category, &d.ViewCount, &d.CopyCount, &d.CreatedAt,
			&d.BusinessName,
		); err != nil {
			return nil, err
		}
		deals = append(deals, d)
	}
	return deals, rows.Err()
}

func (r *dealRepository) GetByID(ctx context.Context, id int64) (*domain.Deal, error) {
	const q = `
SELECT ` + dealCols + `, COALESCE(b.name, '') AS business_name
FROM deals d
LEFT JOIN businesses b ON b.id = d.business_id
WHERE d.id = $1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var d domain.Deal
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&d.ID, &d.BusinessID, &d.Title, &d.Description, &d.DiscountValue,
		&d.StartDate, &d.EndDate, &d.Terms, &d.CouponCode, &d.RedemptionInstructions,
		&d.Category, &d.ViewCount, &d.CopyCount, &d.CreatedAt,
		&d.BusinessName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *dealRepository) Create(ctx context.Context, in *domain.DealInput) (*domain.Deal, error) {
	const q = `INSERT INTO deals (
	business_id, title, description, discount_value, start_date, end_date,
	terms, coupon_code, redemption_instructions, category
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
RETURNING id, created_at`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	d := domain.Deal{
		BusinessID:             in.BusinessID,
		Title:                  in.Title,
		Description:            in.Description,
		DiscountValue:          in.DiscountValue,
		StartDate:              in.StartDate,
		EndDate:                *in.EndDate,
		Terms:                  in.Terms,
		CouponCode:             in.CouponCode,
		RedemptionInstructions: in.RedemptionInstructions,
		Category:               in.Category,
	}
	err := r.pool.QueryRow(ctx, q,
		in.BusinessID, in.Title, in.Description, in.DiscountValue, in.StartDate, in.EndDate,
		in.Terms, in.CouponCode, in.RedemptionInstructions, in.Category,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *dealRepository) Update(ctx context.Context, id int64, in *domain.DealInput) error {
	const q = `UPDATE deals SET
	business_id = $2, title = $3, description = $4, discount_value = $5,
	start_date = $6, end_date = $7, terms = $8, coupon_code = $9,
	redemption_instructions = $10, category = $11
WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tag, err := r.pool.Exec(ctx, q, id,
		in.BusinessID, in.Title, in.Description, in.DiscountValue,
		in.StartDate, in.EndDate, in.Terms, in.CouponCode,
		in.RedemptionInstructions, in.Category,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *dealRepository) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM deals WHERE id = $1`

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

func (r *dealRepository) RecordInteraction(ctx context.Context, dealID int64, userID *int64, itype string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var counterQ string
	if itype == domain.InteractionCopy {
		counterQ = `UPDATE deals SET copy_count = copy_count + 1 WHERE id = $1`
	} else {
		counterQ = `UPDATE deals SET view_count = view_count + 1 WHERE id = $1`
	}

	tag, err := r.pool.Exec(ctx, counterQ, dealID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO deal_interactions (deal_id, user_id, itype) VALUES ($1, $2, $3)`,
		dealID, userID, itype,
	)
	return err
}
