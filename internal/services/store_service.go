package services

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/storely/store-rating-service/internal/models"
	"github.com/storely/store-rating-service/internal/repositories"
	"github.com/storely/store-rating-service/internal/validator"
)

type storeService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewStoreService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) StoreService {
	return &storeService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *storeService) Create(ctx context.Context, req *CreateStoreRequest) (*StoreResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	store := &models.Store{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: req.OwnerID,
	}

	// Email uniqueness rides on the schema constraint, so the check and the
	// insert are a single atomic statement.
	if err := s.repo.Store().Create(ctx, store); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	s.logger.Info("store created", "store_id", store.ID, "name", store.Name)

	resp := toStoreResponse(store)
	return &resp, nil
}

func (s *storeService) List(ctx context.Context, query *ListQuery) (*StoreListResponse, error) {
	if errs := s.validator.Validate(query); len(errs) > 0 {
		return nil, errs
	}

	page, limit, offset := normalizeQuery(query)

	stores, total, err := s.repo.Store().List(ctx, repositories.StoreFilters{
		Search:    query.Search,
		Limit:     limit,
		Offset:    offset,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
	})
	if err != nil {
		return nil, err
	}

	items := make([]StoreResponse, len(stores))
	for i, store := range stores {
		items[i] = toStoreResponse(store)
	}

	return &StoreListResponse{
		Stores:     items,
		Pagination: buildPagination(page, limit, total),
	}, nil
}

func (s *storeService) GetByID(ctx context.Context, id uint, callerID *uint) (*StoreDetailResponse, error) {
	store, err := s.repo.Store().GetByIDWithRatings(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	detail := &StoreDetailResponse{
		StoreResponse: toStoreResponse(store),
		Ratings:       toStoreRatingEntries(store.Ratings),
	}

	if callerID != nil {
		for _, r := range store.Ratings {
			if r.UserID == *callerID {
				detail.UserRating = &UserRatingSummary{
					ID:        r.ID,
					Rating:    r.Value,
					CreatedAt: r.CreatedAt,
				}
				break
			}
		}
	}

	return detail, nil
}

func (s *storeService) Update(ctx context.Context, id uint, req *UpdateStoreRequest) (*StoreResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	store, err := s.repo.Store().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		store.Name = *req.Name
	}
	if req.Email != nil {
		store.Email = *req.Email
	}
	if req.Address != nil {
		store.Address = *req.Address
	}
	if req.OwnerID != nil {
		store.OwnerID = req.OwnerID
	}

	if err := s.repo.Store().Update(ctx, store); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	s.logger.Info("store updated", "store_id", store.ID)

	updated, err := s.repo.Store().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toStoreResponse(updated)
	return &resp, nil
}

func (s *storeService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Store().Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStoreNotFound
		}
		return err
	}

	s.logger.Info("store deleted", "store_id", id)
	return nil
}
