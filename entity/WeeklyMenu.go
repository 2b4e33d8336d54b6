package entity

import (
	"time"

	"gorm.io/gorm"
)

// WeeklyMenu is soft-deleted only (gorm.Model.DeletedAt acts as the
// tombstone): reviews keep referencing it after deletion.
type WeeklyMenu struct {
	gorm.Model
	SellerProfileID uint          `gorm:"index;not null" json:"sellerProfileId"`
	SellerProfile   SellerProfile `json:"-"`

	Title          string    `json:"title"`
	Description    string    `json:"description"`
	AvailableFrom  time.Time `gorm:"not null;index" json:"availableFrom"`
	AvailableUntil time.Time `gorm:"not null;index" json:"availableUntil"`
	Active         bool      `gorm:"default:true" json:"active"`

	WeeklyMenuDishes []WeeklyMenuDish `json:"dishes,omitempty"`
	Reviews          []Review         `json:"-"`
}

func (m *WeeklyMenu) AvailableAt(now time.Time) bool {
	return m.Active && !m.AvailableFrom.After(now) && !m.AvailableUntil.Before(now)
}

func (m *WeeklyMenu) Deleted() bool {
	return m.DeletedAt.Valid
}
