package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/streetpulse/api/internal/domain"
	"github.com/streetpulse/api/internal/handlers"
	"github.com/streetpulse/api/pkg/auth"
	"github.com/streetpulse/api/pkg/config"
)

// ---------- Mocks ----------

type mockAuthService struct {
	signupResp *domain.SessionResponse
	signupErr  error
	loginResp  *domain.SessionResponse
	loginErr   error
	users      map[int64]*domain.User
}

func (m *mockAuthService) Signup(_ context.Context, _ *domain.SignupRequest) (*domain.SessionResponse, error) {
	return m.signupResp, m.signupErr
}

func (m *mockAuthService) Login(_ context.Context, _ *domain.LoginRequest) (*domain.SessionResponse, error) {
	return m.loginResp, m.loginErr
}

func (m *mockAuthService) GetUser(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

type mockRateLimiter struct {
	allowed bool
	err     error
	calls   int
}

func (m *mockRateLimiter) CheckRateLimit(_ context.Context, _ string, _ int, _ time.Duration) (bool, error) {
	m.calls++
	return m.allowed, m.err
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test_secret"
	cfg.Auth.SessionTTL = time.Hour
	return cfg
}

func newTestHandlers(authSvc *mockAuthService, limiter *mockRateLimiter) *handlers.Handlers {
	if authSvc == nil {
		authSvc = &mockAuthService{}
	}
	if limiter == nil {
		limiter = &mockRateLimiter{allowed: true}
	}
	return handlers.New(authSvc, nil, nil, nil, nil, nil, nil, limiter, testConfig())
}

func bearerFor(t *testing.T, sub int64, role string) string {
	t.Helper()
	token, err := auth.NewSessionToken(sub, "user@example.com", role, "Test User", "test_secret", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	return "Bearer " + token
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

// ---------- Tests ----------

func TestSignupSuccess(t *testing.T) {
	h := newTestHandlers(&mockAuthService{
		signupResp: &domain.SessionResponse{
			Token: "jwt-token",
			User:  &domain.UserInfo{ID: 1, FullName: "Jamie Reader", Email: "jamie@example.com", Role: domain.RoleMember},
		},
	}, nil)

	payload := `{"fullName":"Jamie Reader","email":"jamie@example.com","password":"welcome123","challengeToken":"tok","challengeAnswer":"7"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()

	h.Signup(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["token"] != "jwt-token" {
		t.Fatalf("expected session token in response, got %v", body)
	}
}

func TestSignupVerificationFailed(t *testing.T) {
	h := newTestHandlers(&mockAuthService{signupErr: domain.ErrVerificationFailed}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()

	h.Signup(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["code"] != "INVALID_INPUT" {
		t.Fatalf("unexpected error body %v", body)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	h := newTestHandlers(&mockAuthService{signupErr: domain.ErrEmailTaken}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()

	h.Signup(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestSignupRejectsBadJSON(t *testing.T) {
	h := newTestHandlers(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewBufferString(`not json`))
	rec := httptest.NewRecorder()

	h.Signup(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	h := newTestHandlers(&mockAuthService{loginErr: domain.ErrInvalidCredentials}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(`{"email":"a@b.co","password":"wrong"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != "Invalid email or password." {
		t.Fatalf("unexpected error message %v", body["error"])
	}
}

func TestMeRequiresAuth(t *testing.T) {
	h := newTestHandlers(nil, nil)

	r := chi.NewRouter()
	r.With(h.RequireAuth).Get("/api/auth/me", h.Me)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestMeReturnsProfile(t *testing.T) {
	h := newTestHandlers(&mockAuthService{users: map[int64]*domain.User{
		7: {ID: 7, FullName: "Priya Patel", Email: "priya@example.com", Role: domain.RoleMember, PasswordHash: "secret"},
	}}, nil)

	r := chi.NewRouter()
	r.With(h.RequireAuth).Get("/api/auth/me", h.Me)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", bearerFor(t, 7, domain.RoleMember))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["email"] != "priya@example.com" {
		t.Fatalf("unexpected profile %v", body)
	}
	if _, leaked := body["passwordHash"]; leaked {
		t.Fatal("password hash must never appear on the wire")
	}
}

func TestRequireAdminRejectsMembers(t *testing.T) {
	h := newTestHandlers(nil, nil)

	r := chi.NewRouter()
	r.With(h.RequireAuth, h.RequireAdmin).Get("/api/admin/reviews", h.ListAllReviews)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/reviews", nil)
	req.Header.Set("Authorization", bearerFor(t, 7, domain.RoleMember))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for member on admin route, got %d", rec.Code)
	}
}

func TestRequireAuthRejectsForgedToken(t *testing.T) {
	h := newTestHandlers(nil, nil)

	r := chi.NewRouter()
	r.With(h.RequireAuth).Get("/api/auth/me", h.Me)

	forged, err := auth.NewSessionToken(7, "x@y.z", domain.RoleAdmin, "X", "wrong_secret", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for forged token, got %d", rec.Code)
	}
}

func TestRateLimitBlocks(t *testing.T) {
	limiter := &mockRateLimiter{allowed: false}
	h := newTestHandlers(nil, limiter)

	r := chi.NewRouter()
	r.With(h.RateLimit("verify", 20, time.Minute)).Get("/api/verify-challenge", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/verify-challenge", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if limiter.calls != 1 {
		t.Fatalf("expected one limiter call, got %d", limiter.calls)
	}
}

func TestRateLimitFailsOpen(t *testing.T) {
	limiter := &mockRateLimiter{allowed: false, err: context.DeadlineExceeded}
	h := newTestHandlers(nil, limiter)

	r := chi.NewRouter()
	r.With(h.RateLimit("verify", 20, time.Minute)).Get("/api/verify-challenge", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/verify-challenge", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("store failure should fail open, got %d", rec.Code)
	}
}
