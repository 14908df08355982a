package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/HUSC-F-2025/housing-service/internal/models"
	"github.com/HUSC-F-2025/housing-service/internal/repositories"
	"github.com/HUSC-F-2025/housing-service/internal/session"
	"github.com/HUSC-F-2025/housing-service/internal/utils"
	"github.com/HUSC-F-2025/housing-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

type RegisterRequest = validator.RegisterRequest
type LoginRequest = validator.LoginRequest

type AuthResponse struct {
	User         *models.UserResponse `json:"user"`
	AccessToken  string               `json:"access_token"`
	ExpiresAt    time.Time            `json:"expires_at"`
	RefreshToken string               `json:"refresh_token,omitempty"`
}

// OAuthIdentity is the subset of an external identity the portal keeps.
type OAuthIdentity struct {
	OpenID   string
	FullName string
	Email    string
	Role     models.UserRole
}

// ===== SERVICE INTERFACE =====

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error)
	Logout(ctx context.Context, refreshToken string) error

	// SyncOAuthUser upserts an external identity into the local store on
	// every OAuth login; repeated logins update, never duplicate.
	SyncOAuthUser(ctx context.Context, identity *OAuthIdentity) (*models.User, error)

	// TokensFor issues portal tokens for an already authenticated user,
	// used after an OAuth exchange.
	TokensFor(ctx context.Context, user *models.User) (*AuthResponse, error)
}

// ===== SERVICE IMPLEMENTATION =====

type authService struct {
	repo       repositories.Repository
	sessions   *session.Store // nil when Redis is not configured
	logger     *slog.Logger
	validator  *validator.Validator
	jwtSecret  string
	jwtTTL     time.Duration
	bcryptCost int
}

func NewAuthService(repo repositories.Repository, sessions *session.Store, logger *slog.Logger, v *validator.Validator, jwtSecret string, jwtTTL time.Duration, bcryptCost int) AuthService {
	return &authService{
		repo:       repo,
		sessions:   sessions,
		logger:     logger,
		validator:  v,
		jwtSecret:  jwtSecret,
		jwtTTL:     jwtTTL,
		bcryptCost: bcryptCost,
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	hash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.User().CreateUnique(ctx, &models.User{
		Username:     req.Username,
		PasswordHash: hash,
		FullName:     req.FullName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		NationalID:   req.NationalID,
		StudentID:    req.StudentID,
		Role:         models.RoleStudent,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return s.issueTokens(ctx, user)
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	user, err := s.repo.User().GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	if err := s.repo.User().TouchSignIn(ctx, user.ID); err != nil {
		s.logger.Warn("failed to refresh sign-in timestamp", "user_id", user.ID, "error", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return s.issueTokens(ctx, user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	if s.sessions == nil {
		return nil, session.ErrInvalidToken
	}

	userID, err := s.sessions.Validate(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// Rotate: old token out, new token in.
	if err := s.sessions.Revoke(ctx, refreshToken); err != nil {
		s.logger.Warn("failed to revoke refresh token", "user_id", userID, "error", err)
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if s.sessions == nil || refreshToken == "" {
		return nil
	}
	return s.sessions.Revoke(ctx, refreshToken)
}

func (s *authService) SyncOAuthUser(ctx context.Context, identity *OAuthIdentity) (*models.User, error) {
	if identity.OpenID == "" {
		return nil, fmt.Errorf("oauth identity missing open id")
	}

	user, err := s.repo.User().Upsert(ctx, &models.User{
		OpenID:   identity.OpenID,
		FullName: identity.FullName,
		Email:    identity.Email,
		Role:     identity.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sync oauth user: %w", err)
	}
	return user, nil
}

func (s *authService) TokensFor(ctx context.Context, user *models.User) (*AuthResponse, error) {
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.issueTokens(ctx, user)
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*AuthResponse, error) {
	access, err := utils.NewAccessToken(s.jwtSecret, user.ID, string(user.Role), s.jwtTTL)
	if err != nil {
		return nil, err
	}

	resp := &AuthResponse{
		User:        user.ToResponse(),
		AccessToken: access.Token,
		ExpiresAt:   access.Exp,
	}

	if s.sessions != nil {
		refresh, err := s.sessions.Issue(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		resp.RefreshToken = refresh
	}

	return resp, nil
}
