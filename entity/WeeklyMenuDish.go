package entity

import (
	"gorm.io/gorm"
)

type WeeklyMenuDish struct {
	gorm.Model
	WeeklyMenuID uint       `gorm:"uniqueIndex:idx_menu_dish;not null" json:"weeklyMenuId"`
	WeeklyMenu   WeeklyMenu `json:"-"`
	DishID       uint       `gorm:"uniqueIndex:idx_menu_dish;not null" json:"dishId"`
	Dish         Dish       `json:"dish,omitempty"`

	// RemainingQuantity never exceeds AvailableQuantity; decrements are
	// guarded at the repository level.
	AvailableQuantity int      `gorm:"not null" json:"availableQuantity"`
	RemainingQuantity int      `gorm:"not null" json:"remainingQuantity"`
	PriceOverride     *float64 `json:"priceOverride"`
	DisplayOrder      int      `gorm:"default:0" json:"displayOrder"`
}

func (md *WeeklyMenuDish) EffectivePrice() float64 {
	if md.PriceOverride != nil {
		return *md.PriceOverride
	}
	return md.Dish.BasePrice
}

func (md *WeeklyMenuDish) Available() bool {
	return md.RemainingQuantity > 0
}
