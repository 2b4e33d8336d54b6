// services/seller_service.go
package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/rafaelbressan/marmitas.top/entity"
	"github.com/rafaelbressan/marmitas.top/repository"
)

// SellerService covers seller profile CRUD and admin verification. The
// broadcast lifecycle lives in BroadcastService.
type SellerService struct {
	Sellers *repository.SellerRepository
}

func NewSellerService(sellers *repository.SellerRepository) *SellerService {
	return &SellerService{Sellers: sellers}
}

type SellerProfileInput struct {
	BusinessName   string
	Bio            string
	Phone          string
	Whatsapp       string
	City           string
	State          string
	OperatingHours string
}

func (s *SellerService) CreateProfile(userID uint, in SellerProfileInput) (*entity.SellerProfile, error) {
	count, err := s.Sellers.CountByUserID(userID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrProfileExists
	}

	sp := &entity.SellerProfile{
		UserID:         userID,
		BusinessName:   in.BusinessName,
		Bio:            in.Bio,
		Phone:          in.Phone,
		Whatsapp:       in.Whatsapp,
		City:           in.City,
		State:          in.State,
		OperatingHours: in.OperatingHours,
	}
	if err := s.Sellers.Create(sp); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrProfileExists
		}
		return nil, err
	}
	return sp, nil
}

func (s *SellerService) GetByUser(userID uint) (*entity.SellerProfile, error) {
	sp, err := s.Sellers.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sp, nil
}

func (s *SellerService) Get(id uint) (*entity.SellerProfile, error) {
	sp, err := s.Sellers.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sp, nil
}

func (s *SellerService) UpdateProfile(userID uint, updates map[string]any) (*entity.SellerProfile, error) {
	sp, err := s.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if err := s.Sellers.Update(sp.ID, updates); err != nil {
		return nil, err
	}
	return s.Get(sp.ID)
}

func (s *SellerService) ListVerified(city string, minRating float64, activeOnly bool, limit, offset int) ([]entity.SellerProfile, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.Sellers.ListVerified(city, minRating, activeOnly, limit, offset)
}

// Verify marks a seller as verified, letting it into public search.
// Admin action.
func (s *SellerService) Verify(admin *entity.User, sellerProfileID uint, verified bool) (*entity.SellerProfile, error) {
	if !admin.IsAdmin {
		return nil, ErrForbidden
	}
	if _, err := s.Get(sellerProfileID); err != nil {
		return nil, err
	}
	if err := s.Sellers.Update(sellerProfileID, map[string]any{"verified": verified}); err != nil {
		return nil, err
	}
	return s.Get(sellerProfileID)
}
