package services

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/storely/store-rating-service/internal/repositories"
)

type ownerService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewOwnerService(repo repositories.Repository, logger *slog.Logger) OwnerService {
	return &ownerService{
		repo:   repo,
		logger: logger,
	}
}

func (s *ownerService) Dashboard(ctx context.Context, ownerID uint) (*OwnerDashboardResponse, error) {
	stores, err := s.repo.Store().ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	items := make([]OwnerStoreResponse, len(stores))
	totalRatings := 0
	for i, store := range stores {
		items[i] = OwnerStoreResponse{
			StoreResponse: toStoreResponse(store),
			Ratings:       toStoreRatingEntries(store.Ratings),
		}
		totalRatings += len(store.Ratings)
	}

	return &OwnerDashboardResponse{
		Stores:       items,
		TotalStores:  len(stores),
		TotalRatings: totalRatings,
	}, nil
}

func (s *ownerService) StoreRatings(ctx context.Context, ownerID, storeID uint) (*StoreRatingsResponse, error) {
	// The ownership filter is part of the lookup: a store that exists but
	// belongs to someone else yields the same ErrStoreNotFound as a missing
	// id, so non-owners learn nothing about existence.
	store, err := s.repo.Store().GetOwnedStore(ctx, storeID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	return &StoreRatingsResponse{
		Store:   toStoreResponse(store),
		Ratings: toStoreRatingEntries(store.Ratings),
	}, nil
}
