package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/storely/store-rating-service/internal/events"
	"github.com/storely/store-rating-service/internal/models"
	"github.com/storely/store-rating-service/internal/repositories"
	"github.com/storely/store-rating-service/internal/validator"
)

type ratingService struct {
	repo      repositories.Repository
	publisher events.Publisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewRatingService(
	repo repositories.Repository,
	publisher events.Publisher,
	logger *slog.Logger,
	validator *validator.Validator,
) RatingService {
	return &ratingService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *ratingService) Upsert(ctx context.Context, userID uint, req *CreateRatingRequest) (*RatingResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if _, err := s.repo.Store().GetByID(ctx, req.StoreID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	rating := &models.Rating{
		Value:   req.Rating,
		UserID:  userID,
		StoreID: req.StoreID,
	}
	if err := s.repo.Rating().Upsert(ctx, rating); err != nil {
		return nil, err
	}

	// Re-read through the unique pair so the response reflects whichever row
	// the conflict resolution settled on, with the store attached.
	stored, err := s.repo.Rating().GetByUserAndStore(ctx, userID, req.StoreID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("rating submitted", "rating_id", stored.ID, "store_id", req.StoreID, "user_id", userID, "value", req.Rating)

	s.broadcast(ctx, stored)

	resp := toRatingResponse(stored)
	return &resp, nil
}

func (s *ratingService) ListMine(ctx context.Context, userID uint) ([]RatingResponse, error) {
	ratings, err := s.repo.Rating().ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]RatingResponse, len(ratings))
	for i, r := range ratings {
		items[i] = toRatingResponse(r)
	}
	return items, nil
}

func (s *ratingService) Delete(ctx context.Context, userID, ratingID uint) error {
	rating, err := s.repo.Rating().GetByID(ctx, ratingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRatingNotFound
		}
		return err
	}

	if rating.UserID != userID {
		return NewPermissionError(userID, "rating", "delete", "only the rating's owner may delete it")
	}

	if err := s.repo.Rating().Delete(ctx, ratingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRatingNotFound
		}
		return err
	}

	s.logger.Info("rating deleted", "rating_id", ratingID, "user_id", userID)
	return nil
}

// broadcast publishes the rating event to in-process listeners. Best effort,
// at most once: failures are logged and never surface to the caller.
func (s *ratingService) broadcast(ctx context.Context, rating *models.Rating) {
	store, err := s.repo.Store().GetByID(ctx, rating.StoreID)
	if err != nil {
		s.logger.Warn("skipping rating broadcast", "error", err)
		return
	}
	avg, count := averageAndCount(store.Ratings)

	event := events.RatingSubmittedEvent{
		RatingID:      rating.ID,
		StoreID:       rating.StoreID,
		UserID:        rating.UserID,
		Value:         rating.Value,
		AverageRating: avg,
		TotalRatings:  count,
		OccurredAt:    time.Now().UTC(),
	}
	if err := s.publisher.PublishRatingSubmitted(ctx, event); err != nil {
		s.logger.Warn("failed to publish rating event", "error", err, "rating_id", rating.ID)
	}
}
