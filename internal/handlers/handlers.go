package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/streetpulse/api/internal/domain"
	"github.com/streetpulse/api/internal/repository"
	"github.com/streetpulse/api/internal/service"
	"github.com/streetpulse/api/pkg/auth"
	"github.com/streetpulse/api/pkg/config"
	"github.com/streetpulse/api/pkg/logger"
)

type Handlers struct {
	authService      service.AuthService
	directoryService service.DirectoryService
	reviewService    service.ReviewService
	bookmarkService  service.BookmarkService
	dealService      service.DealService
	verifyService    service.VerifyService
	reportService    service.ReportService
	rateLimitRepo    repository.RateLimitRepository
	config           *config.Config
}

func New(
	authService service.AuthService,
	directoryService service.DirectoryService,
	reviewService service.ReviewService,
	bookmarkService service.BookmarkService,
	dealService service.DealService,
	verifyService service.VerifyService,
	reportService service.ReportService,
	rateLimitRepo repository.RateLimitRepository,
	config *config.Config,
) *Handlers {
	return &Handlers{
		authService:      authService,
		directoryService: directoryService,
		reviewService:    reviewService,
		bookmarkService:  bookmarkService,
		dealService:      dealService,
		verifyService:    verifyService,
		reportService:    reportService,
		rateLimitRepo:    rateLimitRepo,
		config:           config,
	}
}

type ctxKey string

const claimsKey ctxKey = "claims"

// RequireAuth rejects requests without a valid bearer token. The message
// never says which part of the token failed.
func (h *Handlers) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := h.parseBearer(r)
		if claims == nil {
			writeError(w, http.StatusUnauthorized, "Authentication required", "UNAUTHORIZED")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		ctx = context.WithValue(ctx, logger.UserIDKey, claims.Sub)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin assumes RequireAuth already ran.
func (h *Handlers) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := getClaims(r)
		if claims == nil || claims.Role != domain.RoleAdmin {
			writeError(w, http.StatusForbidden, "Admin access required", "FORBIDDEN")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// OptionalAuth attaches claims when a valid token is present but lets
// anonymous requests through.
func (h *Handlers) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims := h.parseBearer(r); claims != nil {
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			ctx = context.WithValue(ctx, logger.UserIDKey, claims.Sub)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimit throttles by client IP under the given key prefix, failing open
// on store errors.
func (h *Handlers) RateLimit(prefix string, requests int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := prefix + ":" + getClientIP(r)

			allowed, err := h.rateLimitRepo.CheckRateLimit(r.Context(), key, requests, window)
			if err != nil {
				logger.ErrorContext(r.Context(), "Rate limit check failed", "error", err)
			} else if !allowed {
				writeError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.", "RATE_LIMIT_EXCEEDED")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (h *Handlers) parseBearer(r *http.Request) *auth.Claims {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil
	}
	claims, err := auth.Parse(strings.TrimPrefix(header, "Bearer "), h.config.Auth.JWTSecret)
	if err != nil {
		return nil
	}
	return claims
}

func getClaims(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(claimsKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, statusCode int, message, code string) {
	writeJSON(w, statusCode, map[string]string{
		"error": message,
		"code":  code,
	})
}

// respondError maps service errors onto the error taxonomy. Unexpected
// storage errors are logged and never leak their text to the client.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_INPUT")
	case errors.Is(err, domain.ErrVerificationFailed):
		writeError(w, http.StatusBadRequest, "Verification failed.", "INVALID_INPUT")
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid email or password.", "UNAUTHORIZED")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found.", "NOT_FOUND")
	case errors.Is(err, domain.ErrEmailTaken):
		writeError(w, http.StatusConflict, "Email already registered.", "CONFLICT")
	case errors.Is(err, domain.ErrDuplicateReview):
		writeError(w, http.StatusConflict, "You already reviewed this business.", "CONFLICT")
	default:
		logger.ErrorContext(r.Context(), "Request failed", "error", err, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "Internal server error.", "INTERNAL_ERROR")
	}
}

func parsePage(r *http.Request, defaultPageSize int) (page, pageSize int) {
	page = 1
	pageSize = defaultPageSize

	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page = n
		}
	}
	if v := r.URL.Query().Get("pageSize"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			pageSize = n
		}
	}

	return page, pageSize
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

type listResponse struct {
	Items      any                `json:"items"`
	Pagination *domain.Pagination `json:"pagination,omitempty"`
}
