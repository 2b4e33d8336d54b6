package entity

import (
	"gorm.io/gorm"
)

// Recognized dietary tags, same set the mobile clients filter on.
var DietaryTags = []string{
	"vegan", "vegetarian", "gluten_free", "dairy_free", "nut_free",
	"halal", "kosher", "low_carb", "keto", "paleo",
}

type Dish struct {
	gorm.Model
	SellerProfileID uint          `gorm:"index;not null" json:"sellerProfileId"`
	SellerProfile   SellerProfile `json:"-"`

	Name        string   `gorm:"not null" json:"name"`
	Description string   `json:"description"`
	BasePrice   float64  `gorm:"not null" json:"basePrice"`
	Tags        []string `gorm:"serializer:json" json:"dietaryTags"`
	Active      bool     `gorm:"default:true" json:"active"`

	FavoritesCount int `gorm:"default:0" json:"favoritesCount"`

	WeeklyMenuDishes []WeeklyMenuDish `json:"-"`
}

func (d *Dish) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
