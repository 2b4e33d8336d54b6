// repository/review_repository.go
package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/rafaelbressan/marmitas.top/entity"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

func (r *ReviewRepository) FindByID(id uint) (*entity.Review, error) {
	var rev entity.Review
	err := r.DB.
		Preload("User").
		Preload("WeeklyMenu", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		First(&rev, id).Error
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *ReviewRepository) Create(tx *gorm.DB, rev *entity.Review) error {
	return tx.Create(rev).Error
}

func (r *ReviewRepository) UpdateColumns(tx *gorm.DB, id uint, updates map[string]any) error {
	return tx.Model(&entity.Review{}).Where("id = ?", id).Updates(updates).Error
}

// Delete removes the row for real. The unique (user, seller, date) index
// must not keep blocking a fresh review after the owner deletes theirs.
func (r *ReviewRepository) Delete(tx *gorm.DB, id uint) error {
	return tx.Unscoped().Delete(&entity.Review{}, id).Error
}

type ListOptions struct {
	Rating       int
	VerifiedOnly bool
	WithComments bool
	Sort         string // recent | helpful | rating
	Limit        int
	Offset       int
}

// PublishedForSeller lists a seller's published reviews with filters.
func (r *ReviewRepository) PublishedForSeller(sellerProfileID uint, opts ListOptions) ([]entity.Review, error) {
	q := r.DB.
		Where("seller_profile_id = ? AND moderation_status = ?", sellerProfileID, entity.ModerationPublished).
		Preload("User")

	if opts.Rating >= 1 && opts.Rating <= 5 {
		q = q.Where("rating = ?", opts.Rating)
	}
	if opts.VerifiedOnly {
		q = q.Where("verified_encounter = ?", true)
	}
	if opts.WithComments {
		q = q.Where("comment <> ''")
	}

	switch opts.Sort {
	case "helpful":
		q = q.Order("helpful_count DESC")
	case "rating":
		q = q.Order("rating DESC")
	default:
		q = q.Order("created_at DESC")
	}

	var reviews []entity.Review
	err := q.Limit(opts.Limit).Offset(opts.Offset).Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepository) ForUser(userID uint, limit, offset int) ([]entity.Review, error) {
	var reviews []entity.Review
	err := r.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error
	return reviews, err
}

// Flagged returns the moderation queue, oldest first.
func (r *ReviewRepository) UnderReview(limit, offset int) ([]entity.Review, error) {
	var reviews []entity.Review
	err := r.DB.
		Where("moderation_status = ?", entity.ModerationUnderReview).
		Preload("User").
		Order("updated_at ASC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error
	return reviews, err
}

// RatingRow is the slim projection the aggregation engine scans.
type RatingRow struct {
	Rating    int
	CreatedAt time.Time
}

// PublishedRatings returns (rating, created_at) of every published review
// for the seller, inside the caller's transaction.
func (r *ReviewRepository) PublishedRatings(tx *gorm.DB, sellerProfileID uint) ([]RatingRow, error) {
	var rows []RatingRow
	err := tx.Model(&entity.Review{}).
		Where("seller_profile_id = ? AND moderation_status = ?", sellerProfileID, entity.ModerationPublished).
		Select("rating", "created_at").
		Scan(&rows).Error
	return rows, err
}

// CountByUserSince counts the author's reviews created after the cutoff;
// rating == 0 means any rating. Feeds the abuse detector.
func (r *ReviewRepository) CountByUserSince(userID uint, since time.Time, rating int) (int64, error) {
	q := r.DB.Model(&entity.Review{}).
		Where("user_id = ? AND created_at > ?", userID, since)
	if rating != 0 {
		q = q.Where("rating = ?", rating)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}

// ---- helpful votes ----

func (r *ReviewRepository) FindHelpful(tx *gorm.DB, reviewID, userID uint) (*entity.ReviewHelpful, error) {
	var h entity.ReviewHelpful
	err := tx.Where("review_id = ? AND user_id = ?", reviewID, userID).First(&h).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// AddHelpful creates the vote row and bumps the counter in the same
// transaction, keeping helpful_count equal to the row count.
func (r *ReviewRepository) AddHelpful(tx *gorm.DB, reviewID, userID uint) error {
	if err := tx.Create(&entity.ReviewHelpful{ReviewID: reviewID, UserID: userID}).Error; err != nil {
		return err
	}
	return tx.Model(&entity.Review{}).Where("id = ?", reviewID).
		UpdateColumn("helpful_count", gorm.Expr("helpful_count + 1")).Error
}

func (r *ReviewRepository) RemoveHelpful(tx *gorm.DB, helpfulID, reviewID uint) error {
	if err := tx.Unscoped().Delete(&entity.ReviewHelpful{}, helpfulID).Error; err != nil {
		return err
	}
	return tx.Model(&entity.Review{}).Where("id = ? AND helpful_count > 0", reviewID).
		UpdateColumn("helpful_count", gorm.Expr("helpful_count - 1")).Error
}
