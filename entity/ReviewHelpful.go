package entity

import (
	"gorm.io/gorm"
)

// ReviewHelpful is one "helpful" vote. One row per (review, user); the
// review's helpful_count mirrors the row count.
type ReviewHelpful struct {
	gorm.Model
	ReviewID uint   `gorm:"uniqueIndex:idx_helpful_review_user;not null" json:"reviewId"`
	Review   Review `json:"-"`
	UserID   uint   `gorm:"uniqueIndex:idx_helpful_review_user;not null" json:"userId"`
	User     User   `json:"-"`
}
