package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/streetpulse/api/internal/domain"
)

// ---------- Mocks ----------

type storedChallenge struct {
	answer    string
	purpose   string
	expiresAt time.Time
}

type mockChallengeRepo struct {
	challenges map[string]storedChallenge
	createErr  error
	sweepErr   error
	clock      func() time.Time
}

func newMockChallengeRepo() *mockChallengeRepo {
	return &mockChallengeRepo{
		challenges: make(map[string]storedChallenge),
		clock:      time.Now,
	}
}

func (m *mockChallengeRepo) Create(_ context.Context, token, answer, purpose string, expiresAt time.Time) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.challenges[token] = storedChallenge{answer: answer, purpose: purpose, expiresAt: expiresAt}
	return nil
}

func (m *mockChallengeRepo) DeleteExpired(_ context.Context) (int64, error) {
	if m.sweepErr != nil {
		return 0, m.sweepErr
	}
	var swept int64
	now := m.clock()
	for token, c := range m.challenges {
		if !c.expiresAt.After(now) {
			delete(m.challenges, token)
			swept++
		}
	}
	return swept, nil
}

func (m *mockChallengeRepo) Consume(_ context.Context, token, purpose, answer string) (bool, error) {
	c, ok := m.challenges[token]
	if !ok || c.purpose != purpose || c.answer != answer || !c.expiresAt.After(m.clock()) {
		return false, nil
	}
	delete(m.challenges, token)
	return true, nil
}

// ---------- Tests ----------

func TestCreateChallengeStoresSum(t *testing.T) {
	repo := newMockChallengeRepo()
	svc := NewVerifyService(repo, 10*time.Minute)

	issued, err := svc.CreateChallenge(context.Background(), domain.PurposeSignup)
	if err != nil {
		t.Fatalf("CreateChallenge: %v", err)
	}
	if issued.Token == "" {
		t.Fatal("expected non-empty token")
	}

	var a, b int
	if _, err := fmt.Sscanf(issued.Question, "What is %d + %d?", &a, &b); err != nil {
		t.Fatalf("unexpected question format %q: %v", issued.Question, err)
	}
	if a < 2 || a > 9 || b < 2 || b > 9 {
		t.Fatalf("operands out of range: %d, %d", a, b)
	}

	stored, ok := repo.challenges[issued.Token]
	if !ok {
		t.Fatal("challenge not stored")
	}
	if stored.answer != fmt.Sprintf("%d", a+b) {
		t.Fatalf("stored answer %q does not match question %q", stored.answer, issued.Question)
	}
}

func TestCreateChallengeDefaultsPurpose(t *testing.T) {
	repo := newMockChallengeRepo()
	svc := NewVerifyService(repo, 10*time.Minute)

	issued, err := svc.CreateChallenge(context.Background(), "bogus")
	if err != nil {
		t.Fatalf("CreateChallenge: %v", err)
	}
	if repo.challenges[issued.Token].purpose != domain.PurposeSignup {
		t.Fatalf("expected purpose to default to signup, got %q", repo.challenges[issued.Token].purpose)
	}
}

func TestValidateChallengeConsumesOnSuccess(t *testing.T) {
	repo := newMockChallengeRepo()
	svc := NewVerifyService(repo, 10*time.Minute)

	repo.challenges["tok"] = storedChallenge{
		answer:    "7",
		purpose:   domain.PurposeReview,
		expiresAt: time.Now().Add(time.Minute),
	}

	ok, err := svc.ValidateChallenge(context.Background(), "tok", " 7 ", domain.PurposeReview)
	if err != nil || !ok {
		t.Fatalf("expected success with trimmed answer, got ok=%v err=%v", ok, err)
	}
	if _, exists := repo.challenges["tok"]; exists {
		t.Fatal("challenge should be consumed after success")
	}

	// Second use of the same token fails.
	ok, err = svc.ValidateChallenge(context.Background(), "tok", "7", domain.PurposeReview)
	if err != nil || ok {
		t.Fatalf("expected single-use token, got ok=%v err=%v", ok, err)
	}
}

func TestValidateChallengeWrongAnswerKeepsRow(t *testing.T) {
	repo := newMockChallengeRepo()
	svc := NewVerifyService(repo, 10*time.Minute)

	repo.challenges["tok"] = storedChallenge{
		answer:    "9",
		purpose:   domain.PurposeSignup,
		expiresAt: time.Now().Add(time.Minute),
	}

	ok, err := svc.ValidateChallenge(context.Background(), "tok", "8", domain.PurposeSignup)
	if err != nil || ok {
		t.Fatalf("expected wrong answer to fail, got ok=%v err=%v", ok, err)
	}
	if _, exists := repo.challenges["tok"]; !exists {
		t.Fatal("wrong answer must leave the challenge for another try")
	}

	ok, err = svc.ValidateChallenge(context.Background(), "tok", "9", domain.PurposeSignup)
	if err != nil || !ok {
		t.Fatalf("expected retry with correct answer to pass, got ok=%v err=%v", ok, err)
	}
}

func TestValidateChallengeRejectsBadInput(t *testing.T) {
	repo := newMockChallengeRepo()
	svc := NewVerifyService(repo, 10*time.Minute)

	if ok, err := svc.ValidateChallenge(context.Background(), "", "4", domain.PurposeSignup); ok || err != nil {
		t.Fatalf("empty token: got ok=%v err=%v", ok, err)
	}
	if ok, err := svc.ValidateChallenge(context.Background(), "tok", "4", "bogus"); ok || err != nil {
		t.Fatalf("invalid purpose: got ok=%v err=%v", ok, err)
	}
}

func TestValidateChallengeSweepsExpired(t *testing.T) {
	repo := newMockChallengeRepo()
	svc := NewVerifyService(repo, 10*time.Minute)

	repo.challenges["old"] = storedChallenge{
		answer:    "5",
		purpose:   domain.PurposeSignup,
		expiresAt: time.Now().Add(-time.Minute),
	}

	ok, err := svc.ValidateChallenge(context.Background(), "old", "5", domain.PurposeSignup)
	if err != nil || ok {
		t.Fatalf("expected expired challenge to fail, got ok=%v err=%v", ok, err)
	}
	if _, exists := repo.challenges["old"]; exists {
		t.Fatal("expired challenge should have been swept")
	}
}

func TestValidateChallengeSweepFailureIsNonFatal(t *testing.T) {
	repo := newMockChallengeRepo()
	repo.sweepErr = fmt.Errorf("connection reset")
	svc := NewVerifyService(repo, 10*time.Minute)

	repo.challenges["tok"] = storedChallenge{
		answer:    "6",
		purpose:   domain.PurposeSignup,
		expiresAt: time.Now().Add(time.Minute),
	}

	ok, err := svc.ValidateChallenge(context.Background(), "tok", "6", domain.PurposeSignup)
	if err != nil || !ok {
		t.Fatalf("sweep failure must not block validation, got ok=%v err=%v", ok, err)
	}
}
