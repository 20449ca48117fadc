package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/storely/store-rating-service/internal/models"
	"github.com/storely/store-rating-service/internal/repositories"
)

type RatingPostgreSQL struct {
	db *gorm.DB
}

func NewRatingPostgreSQL(db *gorm.DB) repositories.RatingRepository {
	return &RatingPostgreSQL{db: db}
}

// Upsert is a single INSERT ... ON CONFLICT (user_id, store_id) DO UPDATE.
// Two concurrent submissions by the same user for the same store cannot
// create two rows; the database resolves the winner.
func (r *RatingPostgreSQL) Upsert(ctx context.Context, rating *models.Rating) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "store_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(rating).Error
	if err != nil {
		return fmt.Errorf("failed to upsert rating: %w", err)
	}
	return nil
}

func (r *RatingPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.WithContext(ctx).First(&rating, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}
	return &rating, nil
}

func (r *RatingPostgreSQL) GetByUserAndStore(ctx context.Context, userID, storeID uint) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		Preload("Store").
		First(&rating).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get rating by user and store: %w", err)
	}
	return &rating, nil
}

func (r *RatingPostgreSQL) ListByUser(ctx context.Context, userID uint) ([]*models.Rating, error) {
	var ratings []*models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Preload("Store").
		Find(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings by user: %w", err)
	}
	return ratings, nil
}

func (r *RatingPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Rating{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete rating: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
