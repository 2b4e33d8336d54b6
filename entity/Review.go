package entity

import (
	"time"

	"gorm.io/gorm"
)

// Moderation states of a review.
const (
	ModerationPublished   = "published"
	ModerationUnderReview = "under_review"
	ModerationRemoved     = "removed"
)

type Review struct {
	gorm.Model
	UserID          uint          `gorm:"uniqueIndex:idx_reviews_user_seller_date;not null" json:"userId"`
	User            User          `json:"-"`
	SellerProfileID uint          `gorm:"uniqueIndex:idx_reviews_user_seller_date;not null" json:"sellerProfileId"`
	SellerProfile   SellerProfile `json:"-"`
	WeeklyMenuID    *uint         `json:"weeklyMenuId"`
	WeeklyMenu      *WeeklyMenu   `json:"-"`

	Rating        int       `gorm:"not null;index;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment       string    `json:"comment"`
	EncounterDate time.Time `gorm:"type:date;uniqueIndex:idx_reviews_user_seller_date;not null;index" json:"encounterDate"`

	// DishName is snapshotted at creation so the text survives menu deletion.
	DishName string `json:"dishName"`

	EncounterLatitude  *float64   `json:"encounterLatitude"`
	EncounterLongitude *float64   `json:"encounterLongitude"`
	EncounterTimestamp *time.Time `json:"encounterTimestamp"`
	VerifiedEncounter  bool       `gorm:"default:false" json:"verifiedEncounter"`

	// Moderation
	Flagged          bool       `gorm:"default:false;index" json:"flagged"`
	FlagReason       string     `json:"flagReason"`
	ModerationStatus string     `gorm:"default:published;index" json:"moderationStatus"`
	ModerationNote   string     `json:"-"`
	ModeratedAt      *time.Time `json:"-"`
	ModeratedByID    *uint      `json:"-"`
	ModeratedBy      *User      `gorm:"foreignKey:ModeratedByID" json:"-"`

	// Engagement
	HelpfulCount int        `gorm:"default:0" json:"helpfulCount"`
	EditCount    int        `gorm:"default:0" json:"editCount"`
	LastEditedAt *time.Time `json:"lastEditedAt"`

	ReviewHelpfuls []ReviewHelpful `json:"-"`
}

func (r *Review) Published() bool {
	return r.ModerationStatus == ModerationPublished
}

func (r *Review) ExtremeRating() bool {
	return r.Rating == 1 || r.Rating == 5
}

// DisplayDishName falls back gracefully when the referenced menu is gone.
func (r *Review) DisplayDishName() string {
	if r.DishName != "" {
		if r.WeeklyMenu != nil && r.WeeklyMenu.Deleted() {
			return r.DishName + " (não disponível)"
		}
		return r.DishName
	}
	return "Cardápio da semana"
}
