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

type userService struct {
	repo      repositories.Repository
	hasher    *auth.PasswordHasher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(
	repo repositories.Repository,
	hasher *auth.PasswordHasher,
	logger *slog.Logger,
	validator *validator.Validator,
) UserService {
	return &userService{
		repo:      repo,
		hasher:    hasher,
		logger:    logger,
		validator: validator,
	}
}

func (s *userService) List(ctx context.Context, query *ListQuery) (*UserListResponse, error) {
	if errs := s.validator.Validate(query); len(errs) > 0 {
		return nil, errs
	}

	page, limit, offset := normalizeQuery(query)

	filters := repositories.UserFilters{
		Search:    query.Search,
		Limit:     limit,
		Offset:    offset,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
	}
	if query.Role != "" {
		role := models.UserRole(query.Role)
		filters.Role = &role
	}

	users, total, err := s.repo.User().List(ctx, filters)
	if err != nil {
		return nil, err
	}

	items := make([]UserResponse, len(users))
	for i, user := range users {
		items[i] = toUserResponse(user)
	}

	return &UserListResponse{
		Users:      items,
		Pagination: buildPagination(page, limit, total),
	}, nil
}

func (s *userService) GetByID(ctx context.Context, id uint) (*UserDetailResponse, error) {
	user, err := s.repo.User().GetByIDWithDetails(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return buildUserDetail(user), nil
}

func (s *userService) Create(ctx context.Context, req *CreateUserRequest) (*UserResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: digest,
		Role:     role,
		Address:  req.Address,
	}
	if err := s.repo.User().Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	s.logger.Info("user created by admin", "user_id", user.ID, "role", user.Role)

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) Profile(ctx context.Context, userID uint) (*UserDetailResponse, error) {
	return s.GetByID(ctx, userID)
}

func buildUserDetail(user *models.User) *UserDetailResponse {
	detail := &UserDetailResponse{
		UserResponse: toUserResponse(user),
		Ratings:      make([]RatingResponse, len(user.Ratings)),
	}
	for i, r := range user.Ratings {
		rating := r
		detail.Ratings[i] = toRatingResponse(&rating)
	}
	for _, store := range user.Stores {
		detail.Stores = append(detail.Stores, toStoreInfo(&store))
	}
	return detail
}
