package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexedwards/argon2id"

	"github.com/streetpulse/api/internal/domain"
	"github.com/streetpulse/api/internal/repository"
	"github.com/streetpulse/api/pkg/auth"
	"github.com/streetpulse/api/pkg/config"
	"github.com/streetpulse/api/pkg/events"
	"github.com/streetpulse/api/pkg/logger"
)

type AuthService interface {
	Signup(ctx context.Context, req *domain.SignupRequest) (*domain.SessionResponse, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.SessionResponse, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

type authService struct {
	userRepo  repository.UserRepository
	verify    VerifyService
	publisher events.Publisher
	config    *config.Config
}

func NewAuthService(
	userRepo repository.UserRepository,
	verify VerifyService,
	publisher events.Publisher,
	config *config.Config,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		verify:    verify,
		publisher: publisher,
		config:    config,
	}
}

func (s *authService) Signup(ctx context.Context, req *domain.SignupRequest) (*domain.SessionResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ok, err := s.verify.ValidateChallenge(ctx, req.ChallengeToken, req.ChallengeAnswer, domain.PurposeSignup)
	if err != nil {
		return nil, fmt.Errorf("failed to validate challenge: %w", err)
	}
	if !ok {
		return nil, domain.ErrVerificationFailed
	}

	passwordHash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, req.FullName, req.Email, passwordHash, domain.RoleMember)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(ctx, events.SubjectUserSignedUp, map[string]any{
		"user_id": user.ID,
		"email":   user.Email,
	}); err != nil {
		logger.WarnContext(ctx, "Failed to publish signup event", "error", err)
	}

	return s.session(user)
}

func (s *authService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.SessionResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	valid, err := argon2id.ComparePasswordAndHash(req.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return nil, domain.ErrInvalidCredentials
	}

	return s.session(user)
}

func (s *authService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

func (s *authService) session(user *domain.User) (*domain.SessionResponse, error) {
	token, err := auth.NewSessionToken(
		user.ID,
		user.Email,
		user.Role,
		user.FullName,
		s.config.Auth.JWTSecret,
		s.config.Auth.SessionTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session token: %w", err)
	}

	return &domain.SessionResponse{
		Token: token,
		User:  user.ToUserInfo(),
	}, nil
}
