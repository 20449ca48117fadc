package models

import (
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
	RoleOwner UserRole = "OWNER"
)

// Valid reports whether r is one of the closed set of platform roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleOwner:
		return true
	}
	return false
}

type User struct {
	ID       uint     `json:"id" gorm:"primaryKey"`
	Name     string   `json:"name" gorm:"not null;size:60"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password string   `json:"-" gorm:"not null;size:255"`
	Role     UserRole `json:"role" gorm:"not null;default:USER;size:10"`
	Address  *string  `json:"address" gorm:"size:400"`

	// Associations
	Ratings []Rating `json:"ratings,omitempty" gorm:"foreignKey:UserID"`
	Stores  []Store  `json:"stores,omitempty" gorm:"foreignKey:OwnerID"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
