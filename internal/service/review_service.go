package service

import (
	"context"
	"fmt"

	"github.com/streetpulse/api/internal/domain"
	"github.com/streetpulse/api/internal/repository"
	"github.com/streetpulse/api/pkg/events"
	"github.com/streetpulse/api/pkg/logger"
)

// adminReviewLimit caps the moderation listing.
const adminReviewLimit = 200

type ReviewService interface {
	// SubmitReview inserts one review per (user, business). Duplicates fail
	// with ErrDuplicateReview from the storage constraint; there is no
	// check-then-insert window.
	SubmitReview(ctx context.Context, businessID, userID int64, req *domain.SubmitReviewRequest) (*domain.Review, error)
	ListReviews(ctx context.Context, businessID int64, page, pageSize int) ([]domain.Review, domain.Pagination, error)
	DeleteReview(ctx context.Context, id int64) error
	ListAllReviews(ctx context.Context) ([]domain.AdminReview, error)
}

type reviewService struct {
	reviewRepo   repository.ReviewRepository
	businessRepo repository.BusinessRepository
	verify       VerifyService
	publisher    events.Publisher
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	businessRepo repository.BusinessRepository,
	verify VerifyService,
	publisher events.Publisher,
) ReviewService {
	return &reviewService{
		reviewRepo:   reviewRepo,
		businessRepo: businessRepo,
		verify:       verify,
		publisher:    publisher,
	}
}

func (s *reviewService) SubmitReview(ctx context.Context, businessID, userID int64, req *domain.SubmitReviewRequest) (*domain.Review, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ok, err := s.verify.ValidateChallenge(ctx, req.ChallengeToken, req.ChallengeAnswer, domain.PurposeReview)
	if err != nil {
		return nil, fmt.Errorf("failed to validate challenge: %w", err)
	}
	if !ok {
		return nil, domain.ErrVerificationFailed
	}

	if _, err := s.businessRepo.GetByID(ctx, businessID); err != nil {
		return nil, err
	}

	review, err := s.reviewRepo.Create(ctx, businessID, userID, req.Rating, req.ReviewText)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(ctx, events.SubjectReviewSubmitted, map[string]any{
		"business_id": businessID,
		"user_id":     userID,
		"rating":      req.Rating,
	}); err != nil {
		logger.WarnContext(ctx, "Failed to publish review event", "error", err)
	}

	return review, nil
}

func (s *reviewService) ListReviews(ctx context.Context, businessID int64, page, pageSize int) ([]domain.Review, domain.Pagination, error) {
	reviews, err := s.reviewRepo.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	pageItems, pagination := domain.Paginate(reviews, page, pageSize)
	return pageItems, pagination, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, id int64) error {
	return s.reviewRepo.Delete(ctx, id)
}

func (s *reviewService) ListAllReviews(ctx context.Context) ([]domain.AdminReview, error) {
	return s.reviewRepo.ListAll(ctx, adminReviewLimit)
}
