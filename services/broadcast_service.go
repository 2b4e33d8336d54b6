// services/broadcast_service.go
package services

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rafaelbressan/marmitas.top/entity"
	"github.com/rafaelbressan/marmitas.top/notify"
	"github.com/rafaelbressan/marmitas.top/repository"
)

// BroadcastService drives the seller presence lifecycle: Inactive <->
// Active(location, arrived_at, leaving_at). A broadcast is a perishable
// claim, so every transition is a guarded update and expiry is applied
// lazily on read plus by a periodic sweep.
type BroadcastService struct {
	DB         *gorm.DB
	Sellers    *repository.SellerRepository
	Locations  *repository.SellingLocationRepository
	Dispatcher notify.Dispatcher
	Log        *zap.Logger

	DefaultDuration time.Duration
	MaxDuration     time.Duration

	Now func() time.Time
}

func NewBroadcastService(db *gorm.DB, sellers *repository.SellerRepository, locations *repository.SellingLocationRepository,
	dispatcher notify.Dispatcher, log *zap.Logger, defaultDur, maxDur time.Duration) *BroadcastService {
	return &BroadcastService{
		DB:              db,
		Sellers:         sellers,
		Locations:       locations,
		Dispatcher:      dispatcher,
		Log:             log,
		DefaultDuration: defaultDur,
		MaxDuration:     maxDur,
		Now:             time.Now,
	}
}

// Arrive starts broadcasting from one of the seller's locations. leavingAt
// nil means "default duration from now". Fails with
// ErrAlreadyBroadcastingElsewhere when an unexpired broadcast is active at
// a different location.
func (s *BroadcastService) Arrive(sellerProfileID, locationID uint, leavingAt *time.Time) (*entity.SellerProfile, error) {
	now := s.Now()

	loc, err := s.Locations.FindByID(locationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if loc.SellerProfileID != sellerProfileID {
		return nil, ErrNotFound
	}

	leave := now.Add(s.DefaultDuration)
	if leavingAt != nil {
		if !leavingAt.After(now) || leavingAt.After(now.Add(s.MaxDuration)) {
			return nil, ErrInvalidDuration
		}
		leave = *leavingAt
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		// A broadcast past its leaving time is already over, it just has
		// not been observed yet. Clear it before the arrival guard so it
		// cannot block a legitimate re-arrival.
		if _, err := s.Sellers.ExpireGuard(tx, sellerProfileID, now); err != nil {
			return err
		}

		affected, err := s.Sellers.ArriveGuard(tx, sellerProfileID, locationID, now, leave)
		if err != nil {
			return err
		}
		if affected == 0 {
			var count int64
			if err := tx.Model(&entity.SellerProfile{}).Where("id = ?", sellerProfileID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrNotFound
			}
			return ErrAlreadyBroadcastingElsewhere
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Best-effort fan-out; a failed enqueue must never fail the arrival.
	s.Dispatcher.Enqueue(notify.ArrivalEvent{SellerID: sellerProfileID, LocationID: locationID})

	return s.Sellers.FindByID(sellerProfileID)
}

// Leave stops broadcasting. locationID == 0 means the current location;
// a non-zero id that doesn't match fails with ErrWrongLocation.
func (s *BroadcastService) Leave(sellerProfileID, locationID uint) (*entity.SellerProfile, error) {
	now := s.Now()

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := s.Sellers.ExpireGuard(tx, sellerProfileID, now); err != nil {
			return err
		}

		affected, err := s.Sellers.LeaveGuard(tx, sellerProfileID, locationID)
		if err != nil {
			return err
		}
		if affected == 0 {
			var sp entity.SellerProfile
			if err := tx.First(&sp, sellerProfileID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
			if !sp.CurrentlyActive {
				return ErrNotBroadcasting
			}
			return ErrWrongLocation
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Dispatcher.Enqueue(notify.DepartureEvent{SellerID: sellerProfileID})

	return s.Sellers.FindByID(sellerProfileID)
}

// CheckExpiry applies lazy expiry for one seller. Idempotent and
// side-effect-free when the seller is not broadcasting; the end state
// matches an explicit Leave.
func (s *BroadcastService) CheckExpiry(sellerProfileID uint) (bool, error) {
	affected, err := s.Sellers.ExpireGuard(s.DB, sellerProfileID, s.Now())
	return affected > 0, err
}

// Status returns the seller's broadcast state with expiry applied first.
func (s *BroadcastService) Status(sellerProfileID uint) (*entity.SellerProfile, error) {
	if _, err := s.CheckExpiry(sellerProfileID); err != nil {
		return nil, err
	}
	sp, err := s.Sellers.FindByID(sellerProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sp, nil
}

// SweepExpired clears every overdue broadcast. Run periodically from main.
func (s *BroadcastService) SweepExpired() {
	count, err := s.Sellers.SweepExpired(s.Now())
	if err != nil {
		s.Log.Error("broadcast sweep failed", zap.Error(err))
		return
	}
	if count > 0 {
		s.Log.Info("expired broadcasts cleared", zap.Int64("count", count))
	}
}
