package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streetpulse/api/internal/domain"
)

type BusinessRepository interface {
	// List returns every business matching the filter, with rating aggregates
	// computed from review rows. Search is a pre-lowercased LIKE pattern
	// ("%term%") or empty; category is a valid category or empty.
	List(ctx context.Context, category, search string) ([]domain.Business, error)
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
	Create(ctx context.Context, in *domain.BusinessInput) (*domain.Business, error)
	Update(ctx context.Context, id int64, in *domain.BusinessInput) error
	Delete(ctx context.Context, id int64) error
	ListBookmarked(ctx context.Context, userID int64) ([]domain.Business, error)
}

type businessRepository struct {
	pool *pgxpool.Pool
}

func NewBusinessRepository(pool *pgxpool.Pool) BusinessRepository {
	return &businessRepository{pool: pool}
}

const businessSelect = `
SELECT b.id, b.name, b.category, b.address, b.city, b.state, b.zip, b.phone, b.website,
       b.hours_text, b.hours_json, b.price_level, b.tags, b.description, b.verified_badge,
       b.image_url, b.gallery, b.latitude, b.longitude, b.created_at,
       COALESCE(AVG(r.rating), 0)::float8 AS average_rating,
       COUNT(r.id)::int AS review_count
FROM businesses b
LEFT JOIN reviews r ON r.business_id = b.id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBusiness(row rowScanner) (*domain.Business, error) {
	var b domain.Business
	err := row.Scan(
		&b.ID, &b.Name, &b.Category, &b.Address, &b.City, &b.State, &b.Zip, &b.Phone, &b.Website,
		&b.Hours, &b.HoursJSON, &b.PriceLevel, &b.Tags, &b.Description, &b.VerifiedBadge,
		&b.ImageURL, &b.Gallery, &b.Latitude, &b.Longitude, &b.CreatedAt,
		&b.AverageRating, &b.ReviewCount,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *businessRepository) List(ctx context.Context, category, search string) ([]domain.Business, error) {
	q := businessSelect + `
WHERE ($1 = '' OR b.category = $1)
  AND ($2 = ''
       OR lower(b.name) LIKE $2
       OR lower(b.description) LIKE $2
       OR lower(b.city) LIKE $2
       OR lower(b.tags::text) LIKE $2)
GROUP BY b.id`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, category, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var businesses []domain.Business
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		businesses = append(businesses, *b)
	}
	return businesses, rows.Err()
}

func (r *businessRepository) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	q := businessSelect + `
WHERE b.id = $1
GROUP BY b.id`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	b, err := scanBusiness(r.pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *businessRepository) Create(ctx context.Context, in *domain.BusinessInput) (*domain.Business, error) {
	const q = `INSERT INTO businesses (
	name, category, address, city, state, zip, phone, website,
	hours_text, hours_json, price_level, tags, description, verified_badge,
	image_url, gallery, latitude, longitude
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
RETURNING id, created_at`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var (
		id        int64
		createdAt time.Time
	)
	err := r.pool.QueryRow(ctx, q,
		in.Name, in.Category, in.Address, in.City, in.State, in.Zip, in.Phone, in.Website,
		in.Hours, in.HoursJSON, in.PriceLevel, in.Tags, in.Description, in.VerifiedBadge,
		in.ImageURL, in.Gallery, in.Latitude, in.Longitude,
	).Scan(&id, &createdAt)
	if err != nil {
		return nil, err
	}

	return &domain.Business{
		ID:            id,
		Name:          in.Name,
		Category:      in.Category,
		Address:       in.Address,
		City:          in.City,
		State:         in.State,
		Zip:           in.Zip,
		Phone:         in.Phone,
		Website:       in.Website,
		Hours:         in.Hours,
		HoursJSON:     in.HoursJSON,
		PriceLevel:    in.PriceLevel,
		Tags:          in.Tags,
		Description:   in.Description,
		VerifiedBadge: in.VerifiedBadge,
		ImageURL:      in.ImageURL,
		Gallery:       in.Gallery,
		Latitude:      in.Latitude,
		Longitude:     in.Longitude,
		CreatedAt:     createdAt,
	}, nil
}

func (r *businessRepository) Update(ctx context.Context, id int64, in *domain.BusinessInput) error {
	const q = `UPDATE businesses SET
	name = $2, category = $3, address = $4, city = $5, state = $6, zip = $7,
	phone = $8, website = $9, hours_text = $10, hours_json = $11, price_level = $12,
	tags = $13, description = $14, verified_badge = $15, image_url = $16,
	gallery = $17, latitude = $18, longitude = $19
WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tag, err := r.pool.Exec(ctx, q, id,
		in.Name, in.Category, in.Address, in.City, in.State, in.Zip,
		in.Phone, in.Website, in.Hours, in.HoursJSON, in.PriceLevel,
		in.Tags, in.Description, in.VerifiedBadge, in.ImageURL,
		in.Gallery, in.Latitude, in.Longitude,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *businessRepository) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM businesses WHERE id = $1`

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

func (r *businessRepository) ListBookmarked(ctx context.Context, userID int64) ([]domain.Business, error) {
	const q = `
SELECT b.id, b.name, b.category, b.address, b.city, b.state, b.zip, b.phone, b.website,
       b.hours_text, b.hours_json, b.price_level, b.tags, b.description, b.verified_badge,
       b.image_url, b.gallery, b.latitude, b.longitude, b.created_at,
       COALESCE(AVG(r.rating), 0)::float8 AS average_rating,
       COUNT(r.id)::int AS review_count
FROM bookmarks bm
JOIN businesses b ON b.id = bm.business_id
LEFT JOIN reviews r ON r.business_id = b.id
WHERE bm.user_id = $1
GROUP BY b.id, bm.created_at
ORDER BY bm.created_at DESC`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var businesses []domain.Business
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		businesses = append(businesses, *b)
	}
	return businesses, rows.Err()
}
