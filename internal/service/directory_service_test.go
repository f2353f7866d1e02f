package service

import (
	"context"
	"testing"
	"time"

	"github.com/streetpulse/api/internal/domain"
)

// ---------- Mocks ----------

type mockBusinessRepo struct {
	businesses   []domain.Business
	lastCategory string
	lastSearch   string
	listErr      error
}

func (m *mockBusinessRepo) List(_ context.Context, category, search string) ([]domain.Business, error) {
	m.lastCategory = category
	m.lastSearch = search
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]domain.Business, len(m.businesses))
	copy(out, m.businesses)
	return out, nil
}

func (m *mockBusinessRepo) GetByID(_ context.Context, id int64) (*domain.Business, error) {
	for i := range m.businesses {
		if m.businesses[i].ID == id {
			b := m.businesses[i]
			return &b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockBusinessRepo) Create(_ context.Context, in *domain.BusinessInput) (*domain.Business, error) {
	b := domain.Business{ID: int64(len(m.businesses) + 1), Name: in.Name, Category: in.Category}
	m.businesses = append(m.businesses, b)
	return &b, nil
}

func (m *mockBusinessRepo) Update(_ context.Context, id int64, _ *domain.BusinessInput) error {
	for i := range m.businesses {
		if m.businesses[i].ID == id {
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockBusinessRepo) Delete(_ context.Context, id int64) error {
	for i := range m.businesses {
		if m.businesses[i].ID == id {
			m.businesses = append(m.businesses[:i], m.businesses[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockBusinessRepo) ListBookmarked(_ context.Context, _ int64) ([]domain.Business, error) {
	return nil, nil
}

func newDirectoryService(repo *mockBusinessRepo, now time.Time) *directoryService {
	return &directoryService{
		businessRepo: repo,
		now:          func() time.Time { return now },
	}
}

// ---------- Tests ----------

func TestListBusinessesClearsUnknownCategory(t *testing.T) {
	repo := &mockBusinessRepo{}
	svc := newDirectoryService(repo, time.Now())

	_, _, err := svc.ListBusinesses(context.Background(), domain.BusinessFilter{Category: "spaceports"}, "", 1, 9)
	if err != nil {
		t.Fatalf("ListBusinesses: %v", err)
	}
	if repo.lastCategory != "" {
		t.Fatalf("unknown category should be ignored, repo saw %q", repo.lastCategory)
	}
}

func TestListBusinessesLowercasesSearch(t *testing.T) {
	repo := &mockBusinessRepo{}
	svc := newDirectoryService(repo, time.Now())

	_, _, err := svc.ListBusinesses(context.Background(), domain.BusinessFilter{Search: "Coffee"}, "", 1, 9)
	if err != nil {
		t.Fatalf("ListBusinesses: %v", err)
	}
	if repo.lastSearch != "%coffee%" {
		t.Fatalf("expected %%coffee%% pattern, repo saw %q", repo.lastSearch)
	}
}

func TestListBusinessesOpenNowExcludesUnknown(t *testing.T) {
	// Monday noon.
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.Local)
	repo := &mockBusinessRepo{businesses: []domain.Business{
		{ID: 1, Name: "Open", HoursJSON: domain.HoursMap{"mon": {Open: "09:00", Close: "17:00"}}},
		{ID: 2, Name: "Closed", HoursJSON: domain.HoursMap{"mon": {Open: "18:00", Close: "22:00"}}},
		{ID: 3, Name: "NoHours"},
	}}
	svc := newDirectoryService(repo, now)

	items, _, err := svc.ListBusinesses(context.Background(), domain.BusinessFilter{OpenNow: true}, "", 1, 9)
	if err != nil {
		t.Fatalf("ListBusinesses: %v", err)
	}
	if len(items) != 1 || items[0].ID != 1 {
		t.Fatalf("expected only the open business, got %v", items)
	}
}

func TestListBusinessesAnnotatesOpenNow(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.Local)
	repo := &mockBusinessRepo{businesses: []domain.Business{
		{ID: 1, HoursJSON: domain.HoursMap{"mon": {Open: "09:00", Close: "17:00"}}},
		{ID: 2},
	}}
	svc := newDirectoryService(repo, now)

	items, _, err := svc.ListBusinesses(context.Background(), domain.BusinessFilter{}, "", 1, 9)
	if err != nil {
		t.Fatalf("ListBusinesses: %v", err)
	}

	// The default sort reorders the fixtures, so look businesses up by ID.
	byID := make(map[int64]domain.Business, len(items))
	for _, b := range items {
		byID[b.ID] = b
	}

	withHours := byID[1]
	if withHours.OpenNow == nil || !*withHours.OpenNow {
		t.Fatalf("expected openNow=true for business 1, got %v", withHours.OpenNow)
	}
	noHours := byID[2]
	if noHours.OpenNow != nil {
		t.Fatalf("expected openNow=null for business without hours, got %v", *noHours.OpenNow)
	}
}

func TestListBusinessesSortRating(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := &mockBusinessRepo{businesses: []domain.Business{
		{ID: 1, AverageRating: 4.0, ReviewCount: 10, CreatedAt: base},
		{ID: 2, AverageRating: 4.5, ReviewCount: 3, CreatedAt: base},
		{ID: 3, AverageRating: 4.5, ReviewCount: 8, CreatedAt: base},
		{ID: 4, AverageRating: 4.5, ReviewCount: 8, CreatedAt: base.AddDate(0, 0, 1)},
	}}
	svc := newDirectoryService(repo, time.Now())

	items, _, err := svc.ListBusinesses(context.Background(), domain.BusinessFilter{}, domain.SortRating, 1, 9)
	if err != nil {
		t.Fatalf("ListBusinesses: %v", err)
	}

	want := []int64{4, 3, 2, 1}
	for i, id := range want {
		if items[i].ID != id {
			t.Fatalf("position %d: want ID %d, got %d (full order %v)", i, id, items[i].ID, ids(items))
		}
	}
}

func TestListBusinessesSortNewestDefault(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := &mockBusinessRepo{businesses: []domain.Business{
		{ID: 1, CreatedAt: base},
		{ID: 2, CreatedAt: base.AddDate(0, 0, 2)},
		{ID: 3, CreatedAt: base.AddDate(0, 0, 2)},
	}}
	svc := newDirectoryService(repo, time.Now())

	items, _, err := svc.ListBusinesses(context.Background(), domain.BusinessFilter{}, "", 1, 9)
	if err != nil {
		t.Fatalf("ListBusinesses: %v", err)
	}

	want := []int64{3, 2, 1}
	for i, id := range want {
		if items[i].ID != id {
			t.Fatalf("position %d: want ID %d, got %d (full order %v)", i, id, items[i].ID, ids(items))
		}
	}
}

func TestListBusinessesPaginates(t *testing.T) {
	var all []domain.Business
	for i := 1; i <= 20; i++ {
		all = append(all, domain.Business{ID: int64(i)})
	}
	repo := &mockBusinessRepo{businesses: all}
	svc := newDirectoryService(repo, time.Now())

	items, p, err := svc.ListBusinesses(context.Background(), domain.BusinessFilter{}, "", 2, 9)
	if err != nil {
		t.Fatalf("ListBusinesses: %v", err)
	}
	if len(items) != 9 {
		t.Fatalf("expected 9 items on page 2, got %d", len(items))
	}
	if p.Total != 20 || p.TotalPages != 3 || p.Page != 2 {
		t.Fatalf("unexpected pagination %+v", p)
	}
}

func TestCreateBusinessRejectsInvalid(t *testing.T) {
	repo := &mockBusinessRepo{}
	svc := newDirectoryService(repo, time.Now())

	_, err := svc.CreateBusiness(context.Background(), &domain.BusinessInput{Name: "No Category"})
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func ids(items []domain.Business) []int64 {
	out := make([]int64, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return out
}
