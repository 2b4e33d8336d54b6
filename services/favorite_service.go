// services/favorite_service.go
package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/rafaelbressan/marmitas.top/entity"
	"github.com/rafaelbressan/marmitas.top/repository"
)

type FavoriteService struct {
	DB        *gorm.DB
	Favorites *repository.FavoriteRepository
	Dishes    *repository.DishRepository
	Sellers   *repository.SellerRepository
}

func NewFavoriteService(db *gorm.DB, favorites *repository.FavoriteRepository, dishes *repository.DishRepository, sellers *repository.SellerRepository) *FavoriteService {
	return &FavoriteService{DB: db, Favorites: favorites, Dishes: dishes, Sellers: sellers}
}

// Toggle favorites the target if it is not favorited yet, unfavorites it
// otherwise. Returns whether the target is favorited after the call.
func (s *FavoriteService) Toggle(userID uint, ftype string, targetID uint) (bool, error) {
	if ftype != entity.FavoritableDish && ftype != entity.FavoritableSeller {
		return false, ErrInvalidFavoritable
	}
	if err := s.targetExists(ftype, targetID); err != nil {
		return false, err
	}

	var favorited bool
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		existing, err := s.Favorites.Find(tx, userID, ftype, targetID)
		switch {
		case err == nil:
			if err := s.Favorites.Delete(tx, existing.ID); err != nil {
				return err
			}
			favorited = false
			return s.bumpCounters(tx, ftype, targetID, -1)
		case errors.Is(err, gorm.ErrRecordNotFound):
			fav := &entity.Favorite{UserID: userID, FavoritableType: ftype, FavoritableID: targetID}
			if err := s.Favorites.Create(tx, fav); err != nil {
				// a concurrent toggle can win the insert race
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					favorited = true
					return nil
				}
				return err
			}
			favorited = true
			return s.bumpCounters(tx, ftype, targetID, 1)
		default:
			return err
		}
	})
	return favorited, err
}

func (s *FavoriteService) List(userID uint, ftype string) ([]entity.Favorite, error) {
	if ftype != "" && ftype != entity.FavoritableDish && ftype != entity.FavoritableSeller {
		return nil, ErrInvalidFavoritable
	}
	return s.Favorites.ForUser(userID, ftype)
}

func (s *FavoriteService) IsFavorited(userID uint, ftype string, targetID uint) (bool, error) {
	_, err := s.Favorites.Find(s.DB, userID, ftype, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *FavoriteService) targetExists(ftype string, targetID uint) error {
	var err error
	switch ftype {
	case entity.FavoritableDish:
		_, err = s.Dishes.FindByID(targetID)
	case entity.FavoritableSeller:
		_, err = s.Sellers.FindByID(targetID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *FavoriteService) bumpCounters(tx *gorm.DB, ftype string, targetID uint, delta int) error {
	switch ftype {
	case entity.FavoritableDish:
		return tx.Model(&entity.Dish{}).Where("id = ?", targetID).
			UpdateColumn("favorites_count", gorm.Expr("favorites_count + ?", delta)).Error
	case entity.FavoritableSeller:
		return tx.Model(&entity.SellerProfile{}).Where("id = ?", targetID).
			UpdateColumn("followers_count", gorm.Expr("followers_count + ?", delta)).Error
	}
	return nil
}
