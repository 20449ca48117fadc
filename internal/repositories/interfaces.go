package repositories

import (
	"context"

	"github.com/storely/store-rating-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type StoreFilters struct {
	Search    string `json:"search"` // case-insensitive substring on name/address
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"` // "asc", "desc"
}

type UserFilters struct {
	Search    string           `json:"search"` // case-insensitive substring on name/email/address
	Role      *models.UserRole `json:"role"`
	Limit     int              `json:"limit"`
	Offset    int              `json:"offset"`
	SortBy    string           `json:"sort_by"`
	SortOrder string           `json:"sort_order"`
}

// ===== REPOSITORY INTERFACES =====

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	// GetByIDWithDetails preloads the user's ratings (with stores) and owned stores.
	GetByIDWithDetails(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
}

type StoreRepository interface {
	Create(ctx context.Context, store *models.Store) error
	GetByID(ctx context.Context, id uint) (*models.Store, error)
	// GetByIDWithRatings preloads ratings (newest first) and their raters.
	GetByIDWithRatings(ctx context.Context, id uint) (*models.Store, error)
	// GetOwnedStore returns the store only when it belongs to ownerID;
	// a store owned by someone else behaves exactly like a missing row.
	GetOwnedStore(ctx context.Context, id, ownerID uint) (*models.Store, error)
	List(ctx context.Context, filters StoreFilters) ([]*models.Store, int64, error)
	ListAll(ctx context.Context) ([]*models.Store, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]*models.Store, error)
	Update(ctx context.Context, store *models.Store) error
	Delete(ctx context.Context, id uint) error
}

type RatingRepository interface {
	// Upsert inserts the rating or, when the caller already rated the store,
	// updates the existing row in place. The (user_id, store_id) unique
	// constraint is the sole serialization point.
	Upsert(ctx context.Context, rating *models.Rating) error
	GetByID(ctx context.Context, id uint) (*models.Rating, error)
	GetByUserAndStore(ctx context.Context, userID, storeID uint) (*models.Rating, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Rating, error)
	Delete(ctx context.Context, id uint) error
}

type DashboardRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountStores(ctx context.Context) (int64, error)
	CountRatings(ctx context.Context) (int64, error)
	CountUsersByRole(ctx context.Context) (map[models.UserRole]int64, error)
}

// Repository aggregates all entity repositories behind one access point.
type Repository interface {
	User() UserRepository
	Store() StoreRepository
	Rating() RatingRepository
	Dashboard() DashboardRepository

	Ping(ctx context.Context) error
	Close() error
}
