package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/streetpulse/api/internal/domain"
	"github.com/streetpulse/api/internal/repository"
	"github.com/streetpulse/api/pkg/events"
	"github.com/streetpulse/api/pkg/logger"
)

// expiringSoonWindow is how far ahead the expiringSoon filter looks.
const expiringSoonWindow = 7 * 24 * time.Hour

type DealService interface {
	ListDeals(ctx context.Context, filter domain.DealFilter, page, pageSize int) ([]domain.Deal, domain.Pagination, error)
	CreateDeal(ctx context.Context, in *domain.DealInput) (*domain.Deal, error)
	UpdateDeal(ctx context.Context, id int64, in *domain.DealInput) error
	DeleteDeal(ctx context.Context, id int64) error
	// RecordView and RecordCopy bump the counters and append to the
	// interaction log; views may be anonymous.
	RecordView(ctx context.Context, dealID int64, userID *int64) error
	RecordCopy(ctx context.Context, dealID, userID int64) error
}

type dealService struct {
	dealRepo     repository.DealRepository
	businessRepo repository.BusinessRepository
	publisher    events.Publisher
	now          func() time.Time
}

func NewDealService(
	dealRepo repository.DealRepository,
	businessRepo repository.BusinessRepository,
	publisher events.Publisher,
) DealService {
	return &dealService{
		dealRepo:     dealRepo,
		businessRepo: businessRepo,
		publisher:    publisher,
		now:          time.Now,
	}
}

func (s *dealService) ListDeals(ctx context.Context, filter domain.DealFilter, page, pageSize int) ([]domain.Deal, domain.Pagination, error) {
	category := filter.Category
	if !domain.IsValidCategory(category) {
		category = ""
	}

	items, err := s.dealRepo.List(ctx, category, filter.BusinessID)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	now := s.now()
	for i := range items {
		items[i].Active = items[i].ActiveAt(now)
	}

	if filter.ExpiringSoon {
		soon := now.Add(expiringSoonWindow)
		filtered := items[:0]
		for _, d := range items {
			if !d.EndDate.Before(now) && !d.EndDate.After(soon) {
				filtered = append(filtered, d)
			}
		}
		items = filtered
	}

	// Soonest-ending first, stable across runs.
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].EndDate.Equal(items[j].EndDate) {
			return items[i].EndDate.Before(items[j].EndDate)
		}
		return items[i].ID < items[j].ID
	})

	pageItems, pagination := domain.Paginate(items, page, pageSize)
	return pageItems, pagination, nil
}

func (s *dealService) CreateDeal(ctx context.Context, in *domain.DealInput) (*domain.Deal, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.businessRepo.GetByID(ctx, in.BusinessID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Invalid("unknown business")
		}
		return nil, err
	}

	return s.dealRepo.Create(ctx, in)
}

func (s *dealService) UpdateDeal(ctx context.Context, id int64, in *domain.DealInput) error {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return err
	}
	return s.dealRepo.Update(ctx, id, in)
}

func (s *dealService) DeleteDeal(ctx context.Context, id int64) error {
	return s.dealRepo.Delete(ctx, id)
}

func (s *dealService) RecordView(ctx context.Context, dealID int64, userID *int64) error {
	if err := s.dealRepo.RecordInteraction(ctx, dealID, userID, domain.InteractionView); err != nil {
		return err
	}

	if err := s.publisher.Publish(ctx, events.SubjectDealViewed, map[string]any{
		"deal_id": dealID,
	}); err != nil {
		logger.WarnContext(ctx, "Failed to publish deal view event", "error", err)
	}
	return nil
}

func (s *dealService) RecordCopy(ctx context.Context, dealID, userID int64) error {
	if err := s.dealRepo.RecordInteraction(ctx, dealID, &userID, domain.InteractionCopy); err != nil {
		return err
	}

	if err := s.publisher.Publish(ctx, events.SubjectDealCopied, map[string]any{
		"deal_id": dealID,
		"user_id": userID,
	}); err != nil {
		logger.WarnContext(ctx, "Failed to publish deal copy event", "error", err)
	}
	return nil
}
