package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/storely/store-rating-service/internal/auth"
	"github.com/storely/store-rating-service/internal/models"
	"github.com/storely/store-rating-service/internal/repositories"
	"github.com/storely/store-rating-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	hasher    *auth.PasswordHasher
	tokens    *auth.TokenManager
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(
	repo repositories.Repository,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenManager,
	logger *slog.Logger,
	validator *validator.Validator,
) AuthService {
	return &authService{
		repo:      repo,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger,
		validator: validator,
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: digest,
		Role:     models.RoleUser,
		Address:  req.Address,
	}

	// The unique index on users.email decides the winner of concurrent
	// registrations; no pre-check lookup.
	if err := s.repo.User().Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID, "email", user.Email)

	return s.buildAuthResponse(user)
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.repo.User().GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("user logged in", "user_id", user.ID)

	return s.buildAuthResponse(user)
}

func (s *authService) UpdatePassword(ctx context.Context, userID uint, req *UpdatePasswordRequest) error {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return errs
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !s.hasher.Verify(req.CurrentPassword, user.Password) {
		return ErrInvalidCredentials
	}

	digest, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.User().UpdatePassword(ctx, userID, digest); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.logger.Info("password updated", "user_id", userID)
	return nil
}

func (s *authService) buildAuthResponse(user *models.User) (*AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResponse{User: toUserResponse(user), Token: token}, nil
}
