package entity

import (
	"gorm.io/gorm"
)

type SellingLocation struct {
	gorm.Model
	SellerProfileID uint          `gorm:"index;not null" json:"sellerProfileId"`
	SellerProfile   SellerProfile `json:"-"`

	Name      string   `gorm:"not null" json:"name"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Notes     string   `json:"notes"`
}

func (l *SellingLocation) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}
