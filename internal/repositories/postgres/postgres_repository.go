package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/storely/store-rating-service/internal/repositories"
)

// PostgreSQLRepository implements the main Repository interface.
type PostgreSQLRepository struct {
	db *gorm.DB

	user      repositories.UserRepository
	store     repositories.StoreRepository
	rating    repositories.RatingRepository
	dashboard repositories.DashboardRepository
}

// NewPostgreSQLRepository creates the repository manager with all
// sub-repositories.
func NewPostgreSQLRepository(db *gorm.DB) repositories.Repository {
	return &PostgreSQLRepository{
		db:        db,
		user:      NewUserPostgreSQL(db),
		store:     NewStorePostgreSQL(db),
		rating:    NewRatingPostgreSQL(db),
		dashboard: NewDashboardPostgreSQL(db),
	}
}

func (r *PostgreSQLRepository) User() repositories.UserRepository {
	return r.user
}

func (r *PostgreSQLRepository) Store() repositories.StoreRepository {
	return r.store
}

func (r *PostgreSQLRepository) Rating() repositories.RatingRepository {
	return r.rating
}

func (r *PostgreSQLRepository) Dashboard() repositories.DashboardRepository {
	return r.dashboard
}

func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.Close()
}
