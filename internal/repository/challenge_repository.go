package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ChallengeRepository interface {
	Create(ctx context.Context, token, answer, purpose string, expiresAt time.Time) error
	// DeleteExpired sweeps every expired challenge row. Validation piggybacks
	// this; there is no background job.
	DeleteExpired(ctx context.Context) (int64, error)
	// Consume deletes the challenge iff token, purpose and answer all match
	// and it has not expired, reporting whether a row was consumed. The
	// single-statement delete keeps the challenge single-use under concurrent
	// validation, while a wrong answer leaves the row for another try.
	Consume(ctx context.Context, token, purpose, answer string) (bool, error)
}

type challengeRepository struct {
	pool *pgxpool.Pool
}

func NewChallengeRepository(pool *pgxpool.Pool) ChallengeRepository {
	return &challengeRepository{pool: pool}
}

func (r *challengeRepository) Create(ctx context.Context, token, answer, purpose string, expiresAt time.Time) error {
	const q = `INSERT INTO verification_challenges (token, answer, purpose, expires_at)
VALUES ($1, $2, $3, $4)`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, q, token, answer, purpose, expiresAt)
	return err
}

func (r *challengeRepository) DeleteExpired(ctx context.Context) (int64, error) {
	const q = `DELETE FROM verification_challenges WHERE expires_at <= now()`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tag, err := r.pool.Exec(ctx, q)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *challengeRepository) Consume(ctx context.Context, token, purpose, answer string) (bool, error) {
	const q = `DELETE FROM verification_challenges
WHERE token = $1 AND purpose = $2 AND answer = $3 AND expires_at > now()
RETURNING id`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var id int64
	err := r.pool.QueryRow(ctx, q, token, purpose, answer).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
