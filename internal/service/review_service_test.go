package service

import (
	"context"
	"errors"
	"testing"

	"github.com/streetpulse/api/internal/domain"
)

// ---------- Mocks ----------

type mockReviewRepo struct {
	reviews   []domain.Review
	createErr error
	nextID    int64
}

func (m *mockReviewRepo) Create(_ context.Context, businessID, userID int64, rating int, text string) (*domain.Review, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	for _, r := range m.reviews {
		if r.BusinessID == businessID && r.UserID == userID {
			return nil, domain.ErrDuplicateReview
		}
	}
	m.nextID++
	r := domain.Review{ID: m.nextID, BusinessID: businessID, UserID: userID, Rating: rating, ReviewText: text}
	m.reviews = append(m.reviews, r)
	return &r, nil
}

func (m *mockReviewRepo) ListByBusiness(_ context.Context, businessID int64) ([]domain.Review, error) {
	var out []domain.Review
	for _, r := range m.reviews {
		if r.BusinessID == businessID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockReviewRepo) Delete(_ context.Context, id int64) error {
	for i, r := range m.reviews {
		if r.ID == id {
			m.reviews = append(m.reviews[:i], m.reviews[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockReviewRepo) ListAll(_ context.Context, limit int) ([]domain.AdminReview, error) {
	out := make([]domain.AdminReview, 0, len(m.reviews))
	for i, r := range m.reviews {
		if i >= limit {
			break
		}
		out = append(out, domain.AdminReview{ID: r.ID, Rating: r.Rating})
	}
	return out, nil
}

type stubVerify struct {
	ok  bool
	err error
}

func (s stubVerify) CreateChallenge(context.Context, string) (*domain.IssuedChallenge, error) {
	return nil, errors.New("not implemented")
}

func (s stubVerify) ValidateChallenge(context.Context, string, string, string) (bool, error) {
	return s.ok, s.err
}

type capturePublisher struct {
	subjects []string
	err      error
}

func (p *capturePublisher) Publish(_ context.Context, subject string, _ interface{}) error {
	p.subjects = append(p.subjects, subject)
	return p.err
}

func (p *capturePublisher) Close() error { return nil }

func validReviewRequest() *domain.SubmitReviewRequest {
	return &domain.SubmitReviewRequest{
		Rating:          5,
		ReviewText:      "Friendly staff and fast service.",
		ChallengeToken:  "tok",
		ChallengeAnswer: "7",
	}
}

// ---------- Tests ----------

func TestSubmitReviewHappyPath(t *testing.T) {
	businessRepo := &mockBusinessRepo{businesses: []domain.Business{{ID: 1}}}
	reviewRepo := &mockReviewRepo{}
	pub := &capturePublisher{}
	svc := NewReviewService(reviewRepo, businessRepo, stubVerify{ok: true}, pub)

	review, err := svc.SubmitReview(context.Background(), 1, 42, validReviewRequest())
	if err != nil {
		t.Fatalf("SubmitReview: %v", err)
	}
	if review.BusinessID != 1 || review.UserID != 42 || review.Rating != 5 {
		t.Fatalf("unexpected review %+v", review)
	}
	if len(pub.subjects) != 1 {
		t.Fatalf("expected one published event, got %v", pub.subjects)
	}
}

func TestSubmitReviewValidation(t *testing.T) {
	svc := NewReviewService(&mockReviewRepo{}, &mockBusinessRepo{}, stubVerify{ok: true}, &capturePublisher{})

	cases := map[string]func(*domain.SubmitReviewRequest){
		"rating too low":  func(r *domain.SubmitReviewRequest) { r.Rating = 0 },
		"rating too high": func(r *domain.SubmitReviewRequest) { r.Rating = 6 },
		"short text":      func(r *domain.SubmitReviewRequest) { r.ReviewText = "meh" },
		// 5 runes but 15 bytes. Length is counted in characters.
		"short multibyte text": func(r *domain.SubmitReviewRequest) { r.ReviewText = "很好吃推荐" },
	}
	for name, mutate := range cases {
		req := validReviewRequest()
		mutate(req)
		_, err := svc.SubmitReview(context.Background(), 1, 42, req)
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("%s: expected validation error, got %v", name, err)
		}
	}
}

func TestSubmitReviewFailedChallenge(t *testing.T) {
	businessRepo := &mockBusinessRepo{businesses: []domain.Business{{ID: 1}}}
	svc := NewReviewService(&mockReviewRepo{}, businessRepo, stubVerify{ok: false}, &capturePublisher{})

	_, err := svc.SubmitReview(context.Background(), 1, 42, validReviewRequest())
	if !errors.Is(err, domain.ErrVerificationFailed) {
		t.Fatalf("expected ErrVerificationFailed, got %v", err)
	}
}

func TestSubmitReviewUnknownBusiness(t *testing.T) {
	svc := NewReviewService(&mockReviewRepo{}, &mockBusinessRepo{}, stubVerify{ok: true}, &capturePublisher{})

	_, err := svc.SubmitReview(context.Background(), 99, 42, validReviewRequest())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSubmitReviewDuplicate(t *testing.T) {
	businessRepo := &mockBusinessRepo{businesses: []domain.Business{{ID: 1}}}
	reviewRepo := &mockReviewRepo{}
	svc := NewReviewService(reviewRepo, businessRepo, stubVerify{ok: true}, &capturePublisher{})

	if _, err := svc.SubmitReview(context.Background(), 1, 42, validReviewRequest()); err != nil {
		t.Fatalf("first review: %v", err)
	}
	_, err := svc.SubmitReview(context.Background(), 1, 42, validReviewRequest())
	if !errors.Is(err, domain.ErrDuplicateReview) {
		t.Fatalf("expected ErrDuplicateReview, got %v", err)
	}
}

func TestSubmitReviewPublishFailureIsNonFatal(t *testing.T) {
	businessRepo := &mockBusinessRepo{businesses: []domain.Business{{ID: 1}}}
	pub := &capturePublisher{err: errors.New("nats down")}
	svc := NewReviewService(&mockReviewRepo{}, businessRepo, stubVerify{ok: true}, pub)

	if _, err := svc.SubmitReview(context.Background(), 1, 42, validReviewRequest()); err != nil {
		t.Fatalf("publish failure must not fail the submit: %v", err)
	}
}

func TestListReviewsPaginates(t *testing.T) {
	reviewRepo := &mockReviewRepo{}
	for i := int64(1); i <= 12; i++ {
		reviewRepo.reviews = append(reviewRepo.reviews, domain.Review{ID: i, BusinessID: 1, UserID: i})
	}
	svc := NewReviewService(reviewRepo, &mockBusinessRepo{}, stubVerify{}, &capturePublisher{})

	items, p, err := svc.ListReviews(context.Background(), 1, 2, 5)
	if err != nil {
		t.Fatalf("ListReviews: %v", err)
	}
	if len(items) != 5 || p.Total != 12 || p.TotalPages != 3 {
		t.Fatalf("unexpected page: %d items, pagination %+v", len(items), p)
	}
}
