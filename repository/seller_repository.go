// repository/seller_repository.go
package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/rafaelbressan/marmitas.top/entity"
)

type SellerRepository struct {
	DB *gorm.DB
}

func NewSellerRepository(db *gorm.DB) *SellerRepository {
	return &SellerRepository{DB: db}
}

func (r *SellerRepository) FindByID(id uint) (*entity.SellerProfile, error) {
	var sp entity.SellerProfile
	err := r.DB.
		Preload("CurrentLocation").
		Preload("User").
		First(&sp, id).Error
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

func (r *SellerRepository) FindByUserID(userID uint) (*entity.SellerProfile, error) {
	var sp entity.SellerProfile
	err := r.DB.
		Preload("CurrentLocation").
		Where("user_id = ?", userID).
		First(&sp).Error
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

func (r *SellerRepository) Create(sp *entity.SellerProfile) error {
	return r.DB.Create(sp).Error
}

func (r *SellerRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.SellerProfile{}).Where("id = ?", id).Updates(updates).Error
}

func (r *SellerRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.SellerProfile{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// ListVerified returns verified sellers with optional filters.
func (r *SellerRepository) ListVerified(city string, minRating float64, activeOnly bool, limit, offset int) ([]entity.SellerProfile, error) {
	q := r.DB.Model(&entity.SellerProfile{}).Where("verified = ?", true)
	if city != "" {
		q = q.Where("city = ?", city)
	}
	if minRating > 0 {
		q = q.Where("average_rating >= ?", minRating)
	}
	if activeOnly {
		q = q.Where("currently_active = ?", true)
	}

	var sellers []entity.SellerProfile
	err := q.
		Preload("CurrentLocation").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&sellers).Error
	return sellers, err
}

// ---- broadcast transitions ----
//
// All transitions are conditional UPDATEs; callers check RowsAffected to
// detect the losing side of a race instead of overwriting silently.

// ArriveGuard flips the seller into broadcasting state. Succeeds only when
// the seller is inactive or already at the requested location.
func (r *SellerRepository) ArriveGuard(tx *gorm.DB, sellerID, locationID uint, arrivedAt, leavingAt time.Time) (int64, error) {
	res := tx.Model(&entity.SellerProfile{}).
		Where("id = ? AND (currently_active = ? OR current_location_id = ?)", sellerID, false, locationID).
		Updates(map[string]any{
			"currently_active":    true,
			"current_location_id": locationID,
			"arrived_at":          arrivedAt,
			"leaving_at":          leavingAt,
			"last_active_at":      arrivedAt,
		})
	return res.RowsAffected, res.Error
}

// LeaveGuard clears the broadcast. locationID == 0 means "whatever the
// current location is".
func (r *SellerRepository) LeaveGuard(tx *gorm.DB, sellerID, locationID uint) (int64, error) {
	q := tx.Model(&entity.SellerProfile{}).
		Where("id = ? AND currently_active = ?", sellerID, true)
	if locationID != 0 {
		q = q.Where("current_location_id = ?", locationID)
	}
	res := q.Updates(clearBroadcastColumns())
	return res.RowsAffected, res.Error
}

// ExpireGuard clears the broadcast only when it has run past leaving_at.
// No-op (zero rows) when inactive or still within the window.
func (r *SellerRepository) ExpireGuard(tx *gorm.DB, sellerID uint, now time.Time) (int64, error) {
	res := tx.Model(&entity.SellerProfile{}).
		Where("id = ? AND currently_active = ? AND leaving_at <= ?", sellerID, true, now).
		Updates(clearBroadcastColumns())
	return res.RowsAffected, res.Error
}

// SweepExpired clears every broadcast past its leaving time.
func (r *SellerRepository) SweepExpired(now time.Time) (int64, error) {
	res := r.DB.Model(&entity.SellerProfile{}).
		Where("currently_active = ? AND leaving_at <= ?", true, now).
		Updates(clearBroadcastColumns())
	return res.RowsAffected, res.Error
}

func clearBroadcastColumns() map[string]any {
	return map[string]any{
		"currently_active":    false,
		"current_location_id": nil,
		"arrived_at":          nil,
		"leaving_at":          nil,
	}
}

// ---- geo queries ----

// ActiveVerifiedWithLocation returns broadcasting, verified sellers whose
// current location has coordinates. Expired broadcasts are filtered out in
// SQL so they never surface between sweeps.
func (r *SellerRepository) ActiveVerifiedWithLocation(now time.Time) ([]entity.SellerProfile, error) {
	var sellers []entity.SellerProfile
	err := r.DB.
		Joins("JOIN selling_locations ON selling_locations.id = seller_profiles.current_location_id").
		Where("seller_profiles.verified = ? AND seller_profiles.currently_active = ?", true, true).
		Where("seller_profiles.leaving_at > ?", now).
		Where("selling_locations.latitude IS NOT NULL AND selling_locations.longitude IS NOT NULL").
		Preload("CurrentLocation").
		Find(&sellers).Error
	return sellers, err
}

// ActiveInBounds returns broadcasting, verified sellers inside a flat
// lat/lng rectangle. Plain BETWEEN is fine at map-viewport scale.
func (r *SellerRepository) ActiveInBounds(neLat, neLng, swLat, swLng float64, now time.Time, limit int) ([]entity.SellerProfile, error) {
	var sellers []entity.SellerProfile
	err := r.DB.
		Joins("JOIN selling_locations ON selling_locations.id = seller_profiles.current_location_id").
		Where("seller_profiles.verified = ? AND seller_profiles.currently_active = ?", true, true).
		Where("seller_profiles.leaving_at > ?", now).
		Where("selling_locations.latitude BETWEEN ? AND ?", swLat, neLat).
		Where("selling_locations.longitude BETWEEN ? AND ?", swLng, neLng).
		Preload("CurrentLocation").
		Limit(limit).
		Find(&sellers).Error
	return sellers, err
}

// UpdateRatingCache persists the recomputed rating columns. Column-level
// write on purpose: a derived-data refresh must not trip business hooks.
func (r *SellerRepository) UpdateRatingCache(tx *gorm.DB, sellerID uint, avg float64, total int, dist [5]int) error {
	return tx.Model(&entity.SellerProfile{}).Where("id = ?", sellerID).Updates(map[string]any{
		"average_rating": avg,
		"reviews_count":  total,
		"rating_1_count": dist[0],
		"rating_2_count": dist[1],
		"rating_3_count": dist[2],
		"rating_4_count": dist[3],
		"rating_5_count": dist[4],
	}).Error
}
