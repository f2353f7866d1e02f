package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/streetpulse/api/internal/domain"
	"github.com/streetpulse/api/internal/repository"
)

// DirectoryService answers business listing and lookup queries with derived
// aggregates, and owns admin-side business mutation.
type DirectoryService interface {
	ListBusinesses(ctx context.Context, filter domain.BusinessFilter, sortBy domain.BusinessSort, page, pageSize int) ([]domain.Business, domain.Pagination, error)
	GetBusiness(ctx context.Context, id int64) (*domain.Business, error)
	CreateBusiness(ctx context.Context, in *domain.BusinessInput) (*domain.Business, error)
	UpdateBusiness(ctx context.Context, id int64, in *domain.BusinessInput) error
	DeleteBusiness(ctx context.Context, id int64) error
}

type directoryService struct {
	businessRepo repository.BusinessRepository
	now          func() time.Time
}

func NewDirectoryService(businessRepo repository.BusinessRepository) DirectoryService {
	return &directoryService{
		businessRepo: businessRepo,
		now:          time.Now,
	}
}

func (s *directoryService) ListBusinesses(ctx context.Context, filter domain.BusinessFilter, sortBy domain.BusinessSort, page, pageSize int) ([]domain.Business, domain.Pagination, error) {
	category := filter.Category
	if !domain.IsValidCategory(category) {
		// Unknown categories are ignored, not rejected.
		category = ""
	}

	search := ""
	if filter.Search != "" {
		search = "%" + strings.ToLower(filter.Search) + "%"
	}

	items, err := s.businessRepo.List(ctx, category, search)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	now := s.now()
	for i := range items {
		items[i].OpenNow = items[i].HoursJSON.OpenAt(now)
	}

	if filter.OpenNow {
		// Unknown hours are excluded, not treated as open.
		filtered := items[:0]
		for _, b := range items {
			if b.OpenNow != nil && *b.OpenNow {
				filtered = append(filtered, b)
			}
		}
		items = filtered
	}

	sortBusinesses(items, sortBy)

	pageItems, pagination := domain.Paginate(items, page, pageSize)
	return pageItems, pagination, nil
}

// sortBusinesses orders the filtered set with deterministic tie-breaks so
// pagination never depends on storage-engine row order.
func sortBusinesses(items []domain.Business, sortBy domain.BusinessSort) {
	var less func(a, b *domain.Business) bool
	switch sortBy {
	case domain.SortRating:
		less = func(a, b *domain.Business) bool {
			if a.AverageRating != b.AverageRating {
				return a.AverageRating > b.AverageRating
			}
			if a.ReviewCount != b.ReviewCount {
				return a.ReviewCount > b.ReviewCount
			}
			return newerFirst(a, b)
		}
	case domain.SortReviews:
		less = func(a, b *domain.Business) bool {
			if a.ReviewCount != b.ReviewCount {
				return a.ReviewCount > b.ReviewCount
			}
			return newerFirst(a, b)
		}
	default:
		less = newerFirst
	}

	sort.SliceStable(items, func(i, j int) bool {
		return less(&items[i], &items[j])
	})
}

func newerFirst(a, b *domain.Business) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

func (s *directoryService) GetBusiness(ctx context.Context, id int64) (*domain.Business, error) {
	b, err := s.businessRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b.OpenNow = b.HoursJSON.OpenAt(s.now())
	return b, nil
}

func (s *directoryService) CreateBusiness(ctx context.Context, in *domain.BusinessInput) (*domain.Business, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.businessRepo.Create(ctx, in)
}

func (s *directoryService) UpdateBusiness(ctx context.Context, id int64, in *domain.BusinessInput) error {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return err
	}
	return s.businessRepo.Update(ctx, id, in)
}

func (s *directoryService) DeleteBusiness(ctx context.Context, id int64) error {
	// Dependent reviews, deals and bookmarks go with the business via
	// ON DELETE CASCADE foreign keys.
	return s.businessRepo.Delete(ctx, id)
}
