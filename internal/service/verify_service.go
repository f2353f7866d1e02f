package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/streetpulse/api/internal/domain"
	"github.com/streetpulse/api/internal/repository"
	"github.com/streetpulse/api/pkg/logger"
)

// VerifyService issues and validates the arithmetic human-verification
// challenges gating signup and review submission.
type VerifyService interface {
	CreateChallenge(ctx context.Context, purpose string) (*domain.IssuedChallenge, error)
	// ValidateChallenge consumes the challenge on success. A wrong answer
	// leaves it in place so the caller may retry until expiry; a missing
	// token, purpose mismatch or expired challenge all fail the same way.
	ValidateChallenge(ctx context.Context, token, answer, purpose string) (bool, error)
}

type verifyService struct {
	challengeRepo repository.ChallengeRepository
	ttl           time.Duration
	now           func() time.Time
}

func NewVerifyService(challengeRepo repository.ChallengeRepository, ttl time.Duration) VerifyService {
	return &verifyService{
		challengeRepo: challengeRepo,
		ttl:           ttl,
		now:           time.Now,
	}
}

func (s *verifyService) CreateChallenge(ctx context.Context, purpose string) (*domain.IssuedChallenge, error) {
	if !domain.IsValidPurpose(purpose) {
		purpose = domain.PurposeSignup
	}

	a := rand.Intn(8) + 2
	b := rand.Intn(8) + 2
	token := uuid.NewString()
	expiresAt := s.now().Add(s.ttl)

	if err := s.challengeRepo.Create(ctx, token, fmt.Sprintf("%d", a+b), purpose, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to store challenge: %w", err)
	}

	return &domain.IssuedChallenge{
		Token:     token,
		Question:  fmt.Sprintf("What is %d + %d?", a, b),
		ExpiresAt: expiresAt,
	}, nil
}

func (s *verifyService) ValidateChallenge(ctx context.Context, token, answer, purpose string) (bool, error) {
	if token == "" || !domain.IsValidPurpose(purpose) {
		return false, nil
	}

	// Garbage collection piggybacks on validation; there is no sweeper job.
	if swept, err := s.challengeRepo.DeleteExpired(ctx); err != nil {
		logger.WarnContext(ctx, "Failed to sweep expired challenges", "error", err)
	} else if swept > 0 {
		logger.DebugContext(ctx, "Swept expired challenges", "count", swept)
	}

	return s.challengeRepo.Consume(ctx, token, purpose, strings.TrimSpace(answer))
}
