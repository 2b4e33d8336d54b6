// repository/dish_repository.go
package repository

import (
	"gorm.io/gorm"

	"github.com/rafaelbressan/marmitas.top/entity"
)

type DishRepository struct {
	DB *gorm.DB
}

func NewDishRepository(db *gorm.DB) *DishRepository {
	return &DishRepository{DB: db}
}

func (r *DishRepository) FindByID(id uint) (*entity.Dish, error) {
	var dish entity.Dish
	if err := r.DB.First(&dish, id).Error; err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *DishRepository) ForSeller(sellerProfileID uint, activeOnly bool) ([]entity.Dish, error) {
	q := r.DB.Where("seller_profile_id = ?", sellerProfileID)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var dishes []entity.Dish
	err := q.Order("name ASC").Find(&dishes).Error
	return dishes, err
}

func (r *DishRepository) Create(dish *entity.Dish) error {
	return r.DB.Create(dish).Error
}

func (r *DishRepository) Update(dish *entity.Dish) error {
	return r.DB.Save(dish).Error
}

func (r *DishRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.Dish{}, id).Error
}
