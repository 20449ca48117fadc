package models

import (
	"time"
)

// Rating holds one user's 1-5 star rating of one store. The composite unique
// index on (user_id, store_id) is the serialization point for concurrent
// submissions: resubmission updates the existing row in place.
type Rating struct {
	ID      uint  `json:"id" gorm:"primaryKey"`
	Value   int   `json:"rating" gorm:"not null;check:value >= 1 AND value <= 5"`
	UserID  uint  `json:"userId" gorm:"not null;uniqueIndex:idx_ratings_user_store"`
	StoreID uint  `json:"storeId" gorm:"not null;uniqueIndex:idx_ratings_user_store"`
	User    *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Store   *Store `json:"store,omitempty" gorm:"foreignKey:StoreID"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Rating) TableName() string {
	return "ratings"
}
