// repository/favorite_repository.go
package repository

import (
	"gorm.io/gorm"

	"github.com/rafaelbressan/marmitas.top/entity"
)

type FavoriteRepository struct {
	DB *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{DB: db}
}

func (r *FavoriteRepository) Find(tx *gorm.DB, userID uint, ftype string, fid uint) (*entity.Favorite, error) {
	var fav entity.Favorite
	err := tx.Where("user_id = ? AND favoritable_type = ? AND favoritable_id = ?", userID, ftype, fid).
		First(&fav).Error
	if err != nil {
		return nil, err
	}
	return &fav, nil
}

func (r *FavoriteRepository) Create(tx *gorm.DB, fav *entity.Favorite) error {
	return tx.Create(fav).Error
}

func (r *FavoriteRepository) Delete(tx *gorm.DB, id uint) error {
	return tx.Unscoped().Delete(&entity.Favorite{}, id).Error
}

func (r *FavoriteRepository) ForUser(userID uint, ftype string) ([]entity.Favorite, error) {
	q := r.DB.Where("user_id = ?", userID)
	if ftype != "" {
		q = q.Where("favoritable_type = ?", ftype)
	}
	var favs []entity.Favorite
	err := q.Order("created_at DESC").Find(&favs).Error
	return favs, err
}

// FollowerUserIDs lists users who favorited the seller, the fan-out
// audience for arrival notifications.
func (r *FavoriteRepository) FollowerUserIDs(sellerProfileID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&entity.Favorite{}).
		Where("favoritable_type = ? AND favoritable_id = ?", entity.FavoritableSeller, sellerProfileID).
		Pluck("user_id", &ids).Error
	return ids, err
}
