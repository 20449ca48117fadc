package services

import (
	"context"
	"time"

	"github.com/storely/store-rating-service/internal/models"
	"github.com/storely/store-rating-service/internal/validator"
)

// ===== REQUEST DTOs (validated types) =====

type RegisterRequest = validator.RegisterRequest
type LoginRequest = validator.LoginRequest
type UpdatePasswordRequest = validator.UpdatePasswordRequest
type CreateUserRequest = validator.CreateUserRequest
type CreateStoreRequest = validator.CreateStoreRequest
type UpdateStoreRequest = validator.UpdateStoreRequest
type CreateRatingRequest = validator.CreateRatingRequest
type ListQuery = validator.ListQuery

// ===== RESPONSE DTOs =====

type UserResponse struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	Address   *string         `json:"address"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// StoreInfo is the embedded store summary on rating rows.
type StoreInfo struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// RaterInfo identifies the user behind a rating on owner-facing views.
type RaterInfo struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Address *string `json:"address,omitempty"`
}

type StoreResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	OwnerID       *uint     `json:"ownerId,omitempty"`
	AverageRating float64   `json:"averageRating"`
	TotalRatings  int       `json:"totalRatings"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// UserRatingSummary is the caller's own rating on the store detail view.
type UserRatingSummary struct {
	ID        uint      `json:"id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

type StoreRatingEntry struct {
	ID        uint      `json:"id"`
	Rating    int       `json:"rating"`
	User      RaterInfo `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

type StoreDetailResponse struct {
	StoreResponse
	UserRating *UserRatingSummary `json:"userRating"`
	Ratings    []StoreRatingEntry `json:"ratings"`
}

type RatingResponse struct {
	ID        uint      `json:"id"`
	Rating    int       `json:"rating"`
	Store     StoreInfo `json:"store"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type StoreListResponse struct {
	Stores     []StoreResponse `json:"stores"`
	Pagination Pagination      `json:"pagination"`
}

type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination Pagination     `json:"pagination"`
}

type UserDetailResponse struct {
	UserResponse
	Ratings []RatingResponse `json:"ratings"`
	Stores  []StoreInfo      `json:"stores,omitempty"`
}

type OwnerStoreResponse struct {
	StoreResponse
	Ratings []StoreRatingEntry `json:"ratings"`
}

type OwnerDashboardResponse struct {
	Stores       []OwnerStoreResponse `json:"stores"`
	TotalStores  int                  `json:"totalStores"`
	TotalRatings int                  `json:"totalRatings"`
}

type StoreRatingsResponse struct {
	Store   StoreResponse      `json:"store"`
	Ratings []StoreRatingEntry `json:"ratings"`
}

type RoleCounts struct {
	Admin int64 `json:"ADMIN"`
	User  int64 `json:"USER"`
	Owner int64 `json:"OWNER"`
}

type DashboardStatsResponse struct {
	TotalUsers   int64      `json:"totalUsers"`
	TotalStores  int64      `json:"totalStores"`
	TotalRatings int64      `json:"totalRatings"`
	UsersByRole  RoleCounts `json:"usersByRole"`
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	UpdatePassword(ctx context.Context, userID uint, req *UpdatePasswordRequest) error
}

type StoreService interface {
	Create(ctx context.Context, req *CreateStoreRequest) (*StoreResponse, error)
	List(ctx context.Context, query *ListQuery) (*StoreListResponse, error)
	// GetByID enriches the response with the caller's own rating when
	// callerID is non-nil.
	GetByID(ctx context.Context, id uint, callerID *uint) (*StoreDetailResponse, error)
	Update(ctx context.Context, id uint, req *UpdateStoreRequest) (*StoreResponse, error)
	Delete(ctx context.Context, id uint) error
}

type RatingService interface {
	Upsert(ctx context.Context, userID uint, req *CreateRatingRequest) (*RatingResponse, error)
	ListMine(ctx context.Context, userID uint) ([]RatingResponse, error)
	Delete(ctx context.Context, userID, ratingID uint) error
}

type OwnerService interface {
	Dashboard(ctx context.Context, ownerID uint) (*OwnerDashboardResponse, error)
	// StoreRatings returns ErrStoreNotFound for stores that do not exist AND
	// stores owned by someone else; the two cases are indistinguishable.
	StoreRatings(ctx context.Context, ownerID, storeID uint) (*StoreRatingsResponse, error)
}

type AdminService interface {
	DashboardStats(ctx context.Context) (*DashboardStatsResponse, error)
	// ExportStores renders every store with its aggregate rating into an
	// xlsx workbook.
	ExportStores(ctx context.Context) ([]byte, error)
}

type UserService interface {
	List(ctx context.Context, query *ListQuery) (*UserListResponse, error)
	GetByID(ctx context.Context, id uint) (*UserDetailResponse, error)
	Create(ctx context.Context, req *CreateUserRequest) (*UserResponse, error)
	Profile(ctx context.Context, userID uint) (*UserDetailResponse, error)
}

type ServiceManager interface {
	Auth() AuthService
	Store() StoreService
	Rating() RatingService
	Owner() OwnerService
	Admin() AdminService
	User() UserService

	Shutdown(ctx context.Context) error
}
