package entity

import (
	"time"

	"gorm.io/gorm"
)

type SellerProfile struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex;not null" json:"userId"`
	User   User `json:"-"`

	BusinessName   string `gorm:"not null" json:"businessName"`
	Bio            string `json:"bio"`
	Phone          string `json:"phone"`
	Whatsapp       string `json:"whatsapp"`
	City           string `gorm:"index" json:"city"`
	State          string `json:"state"`
	OperatingHours string `json:"operatingHours"`
	Verified       bool   `gorm:"default:false" json:"verified"`

	// Broadcast state. The four fields move in lock-step: all set while
	// broadcasting, all nil/false when not.
	CurrentlyActive   bool             `gorm:"default:false;index" json:"currentlyActive"`
	CurrentLocationID *uint            `gorm:"index" json:"currentLocationId"`
	CurrentLocation   *SellingLocation `gorm:"foreignKey:CurrentLocationID" json:"currentLocation,omitempty"`
	ArrivedAt         *time.Time       `gorm:"index" json:"arrivedAt"`
	LeavingAt         *time.Time       `gorm:"index" json:"leavingAt"`
	LastActiveAt      *time.Time       `json:"lastActiveAt"`

	// Cached rating fields, refreshed by the rating recompute only
	AverageRating  float64 `gorm:"default:0;index" json:"averageRating"`
	ReviewsCount   int     `gorm:"default:0" json:"reviewsCount"`
	Rating1Count   int     `gorm:"column:rating_1_count;default:0" json:"rating1Count"`
	Rating2Count   int     `gorm:"column:rating_2_count;default:0" json:"rating2Count"`
	Rating3Count   int     `gorm:"column:rating_3_count;default:0" json:"rating3Count"`
	Rating4Count   int     `gorm:"column:rating_4_count;default:0" json:"rating4Count"`
	Rating5Count   int     `gorm:"column:rating_5_count;default:0" json:"rating5Count"`
	FollowersCount int     `gorm:"default:0" json:"followersCount"`
	FavoritesCount int     `gorm:"default:0" json:"favoritesCount"`

	SellingLocations []SellingLocation `json:"-"`
	Dishes           []Dish            `json:"-"`
	WeeklyMenus      []WeeklyMenu      `json:"-"`
	Reviews          []Review          `json:"-"`
}

// Broadcasting reports whether the seller is actively broadcasting at now,
// i.e. active and not past the leaving time.
func (sp *SellerProfile) Broadcasting(now time.Time) bool {
	return sp.CurrentlyActive && sp.LeavingAt != nil && now.Before(*sp.LeavingAt)
}

func (sp *SellerProfile) BroadcastExpired(now time.Time) bool {
	return sp.CurrentlyActive && sp.LeavingAt != nil && !now.Before(*sp.LeavingAt)
}
