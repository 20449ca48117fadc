package models

import (
	"time"
)

// Store email uniqueness is a schema constraint; duplicate inserts surface
// as gorm.ErrDuplicatedKey instead of being pre-checked by a lookup.
type Store struct {
	ID      uint    `json:"id" gorm:"primaryKey"`
	Name    string  `json:"name" gorm:"not null;size:60"`
	Email   string  `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Address string  `json:"address" gorm:"not null;size:400"`
	OwnerID *uint   `json:"ownerId" gorm:"index"`
	Owner   *User   `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`

	Ratings []Rating `json:"ratings,omitempty" gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Store) TableName() string {
	return "stores"
}
