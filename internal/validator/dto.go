package validator

import (
	"github.com/storely/store-rating-service/internal/models"
)

// RegisterRequest is the self-service signup payload. Role is not accepted
// here: registration always produces a USER account.
type RegisterRequest struct {
	Name     string  `json:"name" validate:"required,min=20,max=60"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8,max=16,password"`
	Address  *string `json:"address" validate:"omitempty,max=400"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=16,password"`
}

// CreateUserRequest is the admin-initiated variant of registration with an
// assignable role.
type CreateUserRequest struct {
	Name     string          `json:"name" validate:"required,min=20,max=60"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=8,max=16,password"`
	Address  *string         `json:"address" validate:"omitempty,max=400"`
	Role     models.UserRole `json:"role" validate:"omitempty,oneof=USER ADMIN OWNER"`
}

type CreateStoreRequest struct {
	Name    string `json:"name" validate:"required,min=20,max=60"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"required,max=400"`
	OwnerID *uint  `json:"ownerId" validate:"omitempty,min=1"`
}

type UpdateStoreRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=20,max=60"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Address *string `json:"address" validate:"omitempty,max=400"`
	OwnerID *uint   `json:"ownerId" validate:"omitempty,min=1"`
}

type CreateRatingRequest struct {
	StoreID uint `json:"storeId" validate:"required,min=1"`
	Rating  int  `json:"rating" validate:"required,min=1,max=5"`
}

// ListQuery carries the shared pagination/sort/search query parameters.
type ListQuery struct {
	Page      int    `form:"page" validate:"omitempty,min=1"`
	Limit     int    `form:"limit" validate:"omitempty,min=1,max=100"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
	Search    string `form:"search"`
	Role      string `form:"role" validate:"omitempty,oneof=ADMIN USER OWNER"`
}
