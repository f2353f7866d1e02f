package service

import (
	"context"
	"errors"

	"github.com/streetpulse/api/internal/domain"
	"github.com/streetpulse/api/internal/repository"
	"github.com/streetpulse/api/pkg/events"
	"github.com/streetpulse/api/pkg/logger"
)

type BookmarkService interface {
	// Toggle saves the business when no bookmark exists and removes it
	// otherwise. Two toggles racing on the same pair resolve last-write-wins;
	// the unique constraint keeps the pair down to at most one row.
	Toggle(ctx context.Context, businessID, userID int64) (*domain.ToggleResult, error)
	ListSaved(ctx context.Context, userID int64) ([]domain.Business, error)
}

type bookmarkService struct {
	bookmarkRepo repository.BookmarkRepository
	businessRepo repository.BusinessRepository
	publisher    events.Publisher
}

func NewBookmarkService(
	bookmarkRepo repository.BookmarkRepository,
	businessRepo repository.BusinessRepository,
	publisher events.Publisher,
) BookmarkService {
	return &bookmarkService{
		bookmarkRepo: bookmarkRepo,
		businessRepo: businessRepo,
		publisher:    publisher,
	}
}

func (s *bookmarkService) Toggle(ctx context.Context, businessID, userID int64) (*domain.ToggleResult, error) {
	if _, err := s.businessRepo.GetByID(ctx, businessID); err != nil {
		return nil, err
	}

	saved := false
	existing, err := s.bookmarkRepo.Find(ctx, businessID, userID)
	switch {
	case err == nil:
		if err := s.bookmarkRepo.Delete(ctx, existing.ID); err != nil {
			return nil, err
		}
	case errors.Is(err, domain.ErrNotFound):
		if _, err := s.bookmarkRepo.Create(ctx, businessID, userID); err != nil {
			return nil, err
		}
		saved = true
	default:
		return nil, err
	}

	if err := s.publisher.Publish(ctx, events.SubjectBookmarkToggled, map[string]any{
		"business_id": businessID,
		"user_id":     userID,
		"saved":       saved,
	}); err != nil {
		logger.WarnContext(ctx, "Failed to publish bookmark event", "error", err)
	}

	return &domain.ToggleResult{Saved: saved}, nil
}

func (s *bookmarkService) ListSaved(ctx context.Context, userID int64) ([]domain.Business, error) {
	return s.businessRepo.ListBookmarked(ctx, userID)
}
