package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/storely/store-rating-service/internal/models"
	"github.com/storely/store-rating-service/internal/repositories"
)

type StorePostgreSQL struct {
	db *gorm.DB
}

func NewStorePostgreSQL(db *gorm.DB) repositories.StoreRepository {
	return &StorePostgreSQL{db: db}
}

func (r *StorePostgreSQL) Create(ctx context.Context, store *models.Store) error {
	if err := r.db.WithContext(ctx).Create(store).Error; err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	return nil
}

func (r *StorePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).Preload("Ratings").First(&store, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get store: %w", err)
	}
	return &store, nil
}

func (r *StorePostgreSQL) GetByIDWithRatings(ctx context.Context, id uint) (*models.Store, error) {
	var store models.Store
	err := r.db.WithContext(ctx).
		Preload("Ratings", func(db *gorm.DB) *gorm.DB {
			return db.Order("ratings.created_at DESC")
		}).
		Preload("Ratings.User").
		First(&store, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get store with ratings: %w", err)
	}
	return &store, nil
}

func (r *StorePostgreSQL) GetOwnedStore(ctx context.Context, id, ownerID uint) (*models.Store, error) {
	var store models.Store
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Preload("Ratings", func(db *gorm.DB) *gorm.DB {
			return db.Order("ratings.created_at DESC")
		}).
		Preload("Ratings.User").
		First(&store).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get owned store: %w", err)
	}
	return &store, nil
}

func (r *StorePostgreSQL) List(ctx context.Context, filters repositories.StoreFilters) ([]*models.Store, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Store{})

	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("name ILIKE ? OR address ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count stores: %w", err)
	}

	var stores []*models.Store
	err := applyPagination(query.Order(orderClause(filters.SortBy, filters.SortOrder)), filters.Limit, filters.Offset).
		Preload("Ratings").
		Find(&stores).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list stores: %w", err)
	}

	return stores, total, nil
}

func (r *StorePostgreSQL) ListAll(ctx context.Context) ([]*models.Store, error) {
	var stores []*models.Store
	err := r.db.WithContext(ctx).Order("id ASC").Preload("Ratings").Find(&stores).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list all stores: %w", err)
	}
	return stores, nil
}

func (r *StorePostgreSQL) ListByOwner(ctx context.Context, ownerID uint) ([]*models.Store, error) {
	var stores []*models.Store
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Preload("Ratings", func(db *gorm.DB) *gorm.DB {
			return db.Order("ratings.created_at DESC")
		}).
		Preload("Ratings.User").
		Find(&stores).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stores by owner: %w", err)
	}
	return stores, nil
}

func (r *StorePostgreSQL) Update(ctx context.Context, store *models.Store) error {
	result := r.db.WithContext(ctx).Model(&models.Store{}).Where("id = ?", store.ID).Updates(map[string]interface{}{
		"name":     store.Name,
		"email":    store.Email,
		"address":  store.Address,
		"owner_id": store.OwnerID,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update store: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *StorePostgreSQL) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Store{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete store: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
