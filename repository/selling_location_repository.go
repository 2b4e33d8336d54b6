// repository/selling_location_repository.go
package repository

import (
	"gorm.io/gorm"

	"github.com/rafaelbressan/marmitas.top/entity"
)

type SellingLocationRepository struct {
	DB *gorm.DB
}

func NewSellingLocationRepository(db *gorm.DB) *SellingLocationRepository {
	return &SellingLocationRepository{DB: db}
}

func (r *SellingLocationRepository) FindByID(id uint) (*entity.SellingLocation, error) {
	var loc entity.SellingLocation
	if err := r.DB.First(&loc, id).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *SellingLocationRepository) ForSeller(sellerProfileID uint) ([]entity.SellingLocation, error) {
	var locs []entity.SellingLocation
	err := r.DB.
		Where("seller_profile_id = ?", sellerProfileID).
		Order("created_at ASC").
		Find(&locs).Error
	return locs, err
}

func (r *SellingLocationRepository) CountForSeller(sellerProfileID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.SellingLocation{}).
		Where("seller_profile_id = ?", sellerProfileID).
		Count(&count).Error
	return count, err
}

func (r *SellingLocationRepository) Create(loc *entity.SellingLocation) error {
	return r.DB.Create(loc).Error
}

func (r *SellingLocationRepository) Update(loc *entity.SellingLocation) error {
	return r.DB.Save(loc).Error
}

func (r *SellingLocationRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.SellingLocation{}, id).Error
}
