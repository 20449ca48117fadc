package services

import (
	"context"
	"log/slog"

	"github.com/storely/store-rating-service/internal/auth"
	"github.com/storely/store-rating-service/internal/events"
	"github.com/storely/store-rating-service/internal/repositories"
	"github.com/storely/store-rating-service/internal/validator"
)

type serviceManager struct {
	auth   AuthService
	store  StoreService
	rating RatingService
	owner  OwnerService
	admin  AdminService
	user   UserService

	publisher events.Publisher
	logger    *slog.Logger
}

// NewServiceManager wires every service against the shared repository,
// credential helpers and event publisher.
func NewServiceManager(
	repo repositories.Repository,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenManager,
	publisher events.Publisher,
	logger *slog.Logger,
	validator *validator.Validator,
) ServiceManager {
	return &serviceManager{
		auth:      NewAuthService(repo, hasher, tokens, logger, validator),
		store:     NewStoreService(repo, logger, validator),
		rating:    NewRatingService(repo, publisher, logger, validator),
		owner:     NewOwnerService(repo, logger),
		admin:     NewAdminService(repo, logger),
		user:      NewUserService(repo, hasher, logger, validator),
		publisher: publisher,
		logger:    logger,
	}
}

func (m *serviceManager) Auth() AuthService     { return m.auth }
func (m *serviceManager) Store() StoreService   { return m.store }
func (m *serviceManager) Rating() RatingService { return m.rating }
func (m *serviceManager) Owner() OwnerService   { return m.owner }
func (m *serviceManager) Admin() AdminService   { return m.admin }
func (m *serviceManager) User() UserService     { return m.user }

// Shutdown closes the event publisher; outstanding broadcasts are dropped.
func (m *serviceManager) Shutdown(ctx context.Context) error {
	if err := m.publisher.Close(); err != nil {
		m.logger.Warn("failed to close event publisher", "error", err)
		return err
	}
	return nil
}
