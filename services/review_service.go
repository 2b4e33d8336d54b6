// services/review_service.go
package services

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rafaelbressan/marmitas.top/entity"
	"github.com/rafaelbressan/marmitas.top/notify"
	"github.com/rafaelbressan/marmitas.top/repository"
	"github.com/rafaelbressan/marmitas.top/utils"
)

// ReviewService owns the review lifecycle: creation guards, the moderation
// state machine (published -> under_review -> published|removed), edits,
// helpful votes. Every mutation persists the review AND recomputes the
// owning seller's cached rating in one transaction; that pairing is the
// operation's contract, not a hidden hook.
type ReviewService struct {
	DB         *gorm.DB
	Reviews    *repository.ReviewRepository
	Sellers    *repository.SellerRepository
	Menus      *repository.MenuRepository
	Ratings    *RatingService
	Dispatcher notify.Dispatcher
	Log        *zap.Logger

	EditWindow       time.Duration
	VerifyRadiusKm   float64
	AutoFlagWindow   time.Duration
	OneStarThreshold int
	VolumeThreshold  int

	Now func() time.Time
}

func NewReviewService(db *gorm.DB, reviews *repository.ReviewRepository, sellers *repository.SellerRepository,
	menus *repository.MenuRepository, ratings *RatingService, dispatcher notify.Dispatcher, log *zap.Logger) *ReviewService {
	return &ReviewService{
		DB:         db,
		Reviews:    reviews,
		Sellers:    sellers,
		Menus:      menus,
		Ratings:    ratings,
		Dispatcher: dispatcher,
		Log:        log,

		EditWindow:       48 * time.Hour,
		VerifyRadiusKm:   0.05,
		AutoFlagWindow:   7 * 24 * time.Hour,
		OneStarThreshold: 2,
		VolumeThreshold:  9,

		Now: time.Now,
	}
}

type CreateReviewInput struct {
	SellerProfileID    uint
	Rating             int
	Comment            string
	EncounterDate      *time.Time
	WeeklyMenuID       *uint
	EncounterLatitude  *float64
	EncounterLongitude *float64
	EncounterTimestamp *time.Time
}

// Create validates, runs abuse detection, snapshots the dish name, then
// persists the review and recomputes the seller rating together.
func (s *ReviewService) Create(userID uint, in CreateReviewInput) (*entity.Review, error) {
	now := s.Now()

	if in.Rating < 1 || in.Rating > 5 {
		return nil, ErrInvalidRating
	}
	comment := strings.TrimSpace(in.Comment)
	if (in.Rating == 1 || in.Rating == 5) && comment == "" {
		// extreme ratings require justification
		return nil, ErrCommentRequired
	}

	seller, err := s.Sellers.FindByID(in.SellerProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if seller.UserID == userID {
		return nil, ErrCannotReviewOwnBusiness
	}

	encounterDate := now
	if in.EncounterDate != nil {
		encounterDate = *in.EncounterDate
	}
	encounterDate = truncateToDate(encounterDate)

	rev := &entity.Review{
		UserID:             userID,
		SellerProfileID:    in.SellerProfileID,
		WeeklyMenuID:       in.WeeklyMenuID,
		Rating:             in.Rating,
		Comment:            comment,
		EncounterDate:      encounterDate,
		EncounterLatitude:  in.EncounterLatitude,
		EncounterLongitude: in.EncounterLongitude,
		EncounterTimestamp: in.EncounterTimestamp,
		ModerationStatus:   entity.ModerationPublished,
	}
	// The edit window and auto-flag window both measure from CreatedAt, so
	// the record clock must agree with the service clock.
	rev.CreatedAt = now

	s.snapshotDishName(rev)
	s.verifyEncounter(rev, seller, now)
	if err := s.detectSuspiciousPatterns(rev, now); err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Reviews.Create(tx, rev); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateReview
			}
			return err
		}
		return s.Ratings.Recalculate(tx, rev.SellerProfileID)
	})
	if err != nil {
		return nil, err
	}
	return rev, nil
}

// snapshotDishName copies the menu's dish names onto the review so the
// text survives the menu's tombstoning.
func (s *ReviewService) snapshotDishName(rev *entity.Review) {
	if rev.WeeklyMenuID == nil {
		return
	}
	menu, err := s.Menus.FindByIDAnyState(*rev.WeeklyMenuID)
	if err != nil {
		rev.WeeklyMenuID = nil
		return
	}
	names := make([]string, 0, len(menu.WeeklyMenuDishes))
	for _, md := range menu.WeeklyMenuDishes {
		if md.Dish.Name != "" {
			names = append(names, md.Dish.Name)
		}
	}
	rev.DishName = strings.Join(names, ", ")
}

// verifyEncounter marks the review as geographically corroborated when the
// reviewer stood within the verification radius of the seller's broadcast
// location. Failure to verify is never an error.
func (s *ReviewService) verifyEncounter(rev *entity.Review, seller *entity.SellerProfile, now time.Time) {
	if rev.EncounterLatitude == nil || rev.EncounterLongitude == nil {
		return
	}
	if !seller.Broadcasting(now) || seller.CurrentLocation == nil || !seller.CurrentLocation.HasCoordinates() {
		return
	}
	d := utils.HaversineKm(
		*rev.EncounterLatitude, *rev.EncounterLongitude,
		*seller.CurrentLocation.Latitude, *seller.CurrentLocation.Longitude,
	)
	rev.VerifiedEncounter = d <= s.VerifyRadiusKm
}

// detectSuspiciousPatterns evaluates the author's trailing review window
// and, on a match, routes the new review straight to the moderation queue.
// Soft moderation: the write still goes through. When both patterns match,
// both reasons are recorded.
func (s *ReviewService) detectSuspiciousPatterns(rev *entity.Review, now time.Time) error {
	since := now.Add(-s.AutoFlagWindow)

	var reasons []string
	if rev.Rating == 1 {
		oneStars, err := s.Reviews.CountByUserSince(rev.UserID, since, 1)
		if err != nil {
			return err
		}
		if oneStars >= int64(s.OneStarThreshold) {
			reasons = append(reasons, "Auto-flagged: padrão suspeito de avaliações negativas")
		}
	}
	recent, err := s.Reviews.CountByUserSince(rev.UserID, since, 0)
	if err != nil {
		return err
	}
	if recent >= int64(s.VolumeThreshold) {
		reasons = append(reasons, "Auto-flagged: muitas avaliações em curto período")
	}

	if len(reasons) > 0 {
		rev.ModerationStatus = entity.ModerationUnderReview
		rev.FlagReason = strings.Join(reasons, "; ")
	}
	return nil
}

type UpdateReviewInput struct {
	Rating  *int
	Comment *string
}

// Update edits a review's rating/comment. Author only, inside the edit
// window, never while under moderation, even for trivial edits.
func (s *ReviewService) Update(userID, reviewID uint, in UpdateReviewInput) (*entity.Review, error) {
	rev, err := s.find(reviewID)
	if err != nil {
		return nil, err
	}
	if err := s.editableBy(rev, userID); err != nil {
		return nil, err
	}

	rating := rev.Rating
	if in.Rating != nil {
		rating = *in.Rating
	}
	comment := rev.Comment
	if in.Comment != nil {
		comment = strings.TrimSpace(*in.Comment)
	}
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if (rating == 1 || rating == 5) && comment == "" {
		return nil, ErrCommentRequired
	}

	now := s.Now()
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"rating":         rating,
			"comment":        comment,
			"edit_count":     gorm.Expr("edit_count + 1"),
			"last_edited_at": now,
		}
		if err := s.Reviews.UpdateColumns(tx, rev.ID, updates); err != nil {
			return err
		}
		return s.Ratings.Recalculate(tx, rev.SellerProfileID)
	})
	if err != nil {
		return nil, err
	}
	return s.find(reviewID)
}

// Delete destroys a review. Owners may delete under the same rules that
// gate editing; admins may always delete.
func (s *ReviewService) Delete(actor *entity.User, reviewID uint) error {
	rev, err := s.find(reviewID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin {
		if err := s.editableBy(rev, actor.ID); err != nil {
			return err
		}
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Reviews.Delete(tx, rev.ID); err != nil {
			return err
		}
		return s.Ratings.Recalculate(tx, rev.SellerProfileID)
	})
}

// Flag reports someone else's published review and moves it to the
// moderation queue. The moderation alert fires regardless of the eventual
// admin verdict.
func (s *ReviewService) Flag(userID, reviewID uint, reason string) (*entity.Review, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}

	rev, err := s.find(reviewID)
	if err != nil {
		return nil, err
	}
	if rev.UserID == userID {
		return nil, ErrOwnReview
	}
	if rev.Flagged {
		return nil, ErrAlreadyFlagged
	}
	if rev.ModerationStatus != entity.ModerationPublished {
		return nil, ErrNotFlaggable
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"flagged":           true,
			"flag_reason":       reason,
			"moderation_status": entity.ModerationUnderReview,
		}
		if err := s.Reviews.UpdateColumns(tx, rev.ID, updates); err != nil {
			return err
		}
		// The review left the published set, so the cache moves too.
		return s.Ratings.Recalculate(tx, rev.SellerProfileID)
	})
	if err != nil {
		return nil, err
	}

	s.Dispatcher.Enqueue(notify.ModerationAlertEvent{ReviewID: rev.ID, Reason: reason})

	return s.find(reviewID)
}

// Approve publishes a review back out of the moderation queue. Admin only.
// Calling it again simply re-stamps the moderation fields.
func (s *ReviewService) Approve(admin *entity.User, reviewID uint, note string) (*entity.Review, error) {
	if !admin.IsAdmin {
		return nil, ErrForbidden
	}
	rev, err := s.find(reviewID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"moderation_status": entity.ModerationPublished,
			"flagged":           false,
			"moderation_note":   strings.TrimSpace(note),
			"moderated_at":      now,
			"moderated_by_id":   admin.ID,
		}
		if err := s.Reviews.UpdateColumns(tx, rev.ID, updates); err != nil {
			return err
		}
		return s.Ratings.Recalculate(tx, rev.SellerProfileID)
	})
	if err != nil {
		return nil, err
	}
	return s.find(reviewID)
}

// Remove takes a review down permanently. Admin only, note mandatory.
func (s *ReviewService) Remove(admin *entity.User, reviewID uint, note string) (*entity.Review, error) {
	if !admin.IsAdmin {
		return nil, ErrForbidden
	}
	note = strings.TrimSpace(note)
	if note == "" {
		return nil, ErrNoteRequired
	}
	rev, err := s.find(reviewID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"moderation_status": entity.ModerationRemoved,
			"moderation_note":   note,
			"moderated_at":      now,
			"moderated_by_id":   admin.ID,
		}
		if err := s.Reviews.UpdateColumns(tx, rev.ID, updates); err != nil {
			return err
		}
		return s.Ratings.Recalculate(tx, rev.SellerProfileID)
	})
	if err != nil {
		return nil, err
	}
	return s.find(reviewID)
}

// ToggleHelpful flips the caller's helpful vote. Returns the resulting
// state and count. Counter and join row move in the same transaction.
func (s *ReviewService) ToggleHelpful(userID, reviewID uint) (bool, int, error) {
	rev, err := s.find(reviewID)
	if err != nil {
		return false, 0, err
	}
	if rev.UserID == userID {
		return false, 0, ErrOwnReview
	}

	var voted bool
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		existing, err := s.Reviews.FindHelpful(tx, reviewID, userID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if existing != nil {
			voted = false
			return s.Reviews.RemoveHelpful(tx, existing.ID, reviewID)
		}
		voted = true
		return s.Reviews.AddHelpful(tx, reviewID, userID)
	})
	if err != nil {
		return false, 0, err
	}

	rev, err = s.find(reviewID)
	if err != nil {
		return voted, 0, err
	}
	return voted, rev.HelpfulCount, nil
}

// RatingSummary is the block rendered next to a seller's review list.
type RatingSummary struct {
	AverageRating float64     `json:"averageRating"`
	TotalReviews  int         `json:"totalReviews"`
	Distribution  map[int]int `json:"ratingDistribution"`
	DisplayRating bool        `json:"displayRating"`
	Trend         string      `json:"ratingTrend"`
}

// SummaryFor builds a summary from the seller's cached rating columns.
// Trend needs a repository scan, so it stays empty here.
func SummaryFor(sp *entity.SellerProfile) *RatingSummary {
	return &RatingSummary{
		AverageRating: sp.AverageRating,
		TotalReviews:  sp.ReviewsCount,
		Distribution:  Distribution(sp),
		DisplayRating: DisplayRating(sp),
		Trend:         TrendStable,
	}
}

// ListForSeller returns the published reviews plus the rating summary.
func (s *ReviewService) ListForSeller(sellerProfileID uint, opts repository.ListOptions) ([]entity.Review, *RatingSummary, error) {
	seller, err := s.Sellers.FindByID(sellerProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	if opts.Limit <= 0 || opts.Limit > 100 {
		opts.Limit = 10
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}

	reviews, err := s.Reviews.PublishedForSeller(sellerProfileID, opts)
	if err != nil {
		return nil, nil, err
	}

	trend, err := s.Ratings.Trend(sellerProfileID)
	if err != nil {
		return nil, nil, err
	}

	summary := SummaryFor(seller)
	summary.Trend = trend
	return reviews, summary, nil
}

func (s *ReviewService) Get(reviewID uint) (*entity.Review, error) {
	return s.find(reviewID)
}

// ModerationQueue lists reviews awaiting an admin decision, oldest first.
func (s *ReviewService) ModerationQueue(admin *entity.User, limit, offset int) ([]entity.Review, error) {
	if !admin.IsAdmin {
		return nil, ErrForbidden
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.Reviews.UnderReview(limit, offset)
}

// ListForUser returns the user's own reviews in every moderation state.
func (s *ReviewService) ListForUser(userID uint, limit, offset int) ([]entity.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.Reviews.ForUser(userID, limit, offset)
}

// HelpfulBy reports whether the user has an active helpful vote.
func (s *ReviewService) HelpfulBy(userID, reviewID uint) bool {
	h, err := s.Reviews.FindHelpful(s.DB, reviewID, userID)
	return err == nil && h != nil
}

// EditableBy exposes the edit guard for permission rendering.
func (s *ReviewService) EditableBy(rev *entity.Review, userID uint) bool {
	return s.editableBy(rev, userID) == nil
}

// FlaggableBy exposes the flag guard for permission rendering.
func (s *ReviewService) FlaggableBy(rev *entity.Review, userID uint) bool {
	return rev.UserID != userID && !rev.Flagged && rev.ModerationStatus == entity.ModerationPublished
}

func (s *ReviewService) editableBy(rev *entity.Review, userID uint) error {
	if rev.UserID != userID {
		return ErrForbidden
	}
	if rev.ModerationStatus == entity.ModerationUnderReview || rev.ModerationStatus == entity.ModerationRemoved {
		return ErrUnderModeration
	}
	if s.Now().Sub(rev.CreatedAt) > s.EditWindow {
		return ErrEditWindowClosed
	}
	return nil
}

func (s *ReviewService) find(reviewID uint) (*entity.Review, error) {
	rev, err := s.Reviews.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rev, nil
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
