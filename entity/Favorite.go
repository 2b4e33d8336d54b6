package entity

import (
	"gorm.io/gorm"
)

// Favoritable target types. A favorite points at exactly one concrete type,
// discriminated by FavoritableType; lookups go through an explicit switch,
// never reflection.
const (
	FavoritableDish   = "dish"
	FavoritableSeller = "seller_profile"
)

type Favorite struct {
	gorm.Model
	UserID          uint   `gorm:"uniqueIndex:idx_favorites_user_target;not null" json:"userId"`
	User            User   `json:"-"`
	FavoritableType string `gorm:"uniqueIndex:idx_favorites_user_target;not null" json:"favoritableType"`
	FavoritableID   uint   `gorm:"uniqueIndex:idx_favorites_user_target;not null" json:"favoritableId"`
}
