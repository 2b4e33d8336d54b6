package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`
	Phone    string `json:"phone"`
	IsAdmin  bool   `gorm:"default:false" json:"isAdmin"`

	// Relations, preload only when needed
	SellerProfile  *SellerProfile  `gorm:"foreignKey:UserID" json:"-"`
	Reviews        []Review        `json:"-"`
	ReviewHelpfuls []ReviewHelpful `json:"-"`
	Favorites      []Favorite      `json:"-"`
	DeviceTokens   []DeviceToken   `json:"-"`
}
