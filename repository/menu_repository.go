// repository/menu_repository.go
package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/rafaelbressan/marmitas.top/entity"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

func (r *MenuRepository) FindByID(id uint) (*entity.WeeklyMenu, error) {
	var menu entity.WeeklyMenu
	err := r.DB.
		Preload("WeeklyMenuDishes", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, created_at ASC")
		}).
		Preload("WeeklyMenuDishes.Dish").
		First(&menu, id).Error
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

// FindByIDAnyState also resolves tombstoned menus, for snapshot lookups.
func (r *MenuRepository) FindByIDAnyState(id uint) (*entity.WeeklyMenu, error) {
	var menu entity.WeeklyMenu
	err := r.DB.Unscoped().
		Preload("WeeklyMenuDishes.Dish").
		First(&menu, id).Error
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

func (r *MenuRepository) ForSeller(sellerProfileID uint) ([]entity.WeeklyMenu, error) {
	var menus []entity.WeeklyMenu
	err := r.DB.
		Where("seller_profile_id = ?", sellerProfileID).
		Preload("WeeklyMenuDishes.Dish").
		Order("available_from DESC").
		Find(&menus).Error
	return menus, err
}

// CurrentForSeller returns the menu whose window covers now, if any.
func (r *MenuRepository) CurrentForSeller(sellerProfileID uint, now time.Time) (*entity.WeeklyMenu, error) {
	var menu entity.WeeklyMenu
	err := r.DB.
		Where("seller_profile_id = ? AND active = ?", sellerProfileID, true).
		Where("available_from <= ? AND available_until >= ?", now, now).
		Preload("WeeklyMenuDishes", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, created_at ASC")
		}).
		Preload("WeeklyMenuDishes.Dish").
		Order("available_from ASC").
		First(&menu).Error
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

func (r *MenuRepository) Create(menu *entity.WeeklyMenu) error {
	return r.DB.Create(menu).Error
}

func (r *MenuRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.WeeklyMenu{}).Where("id = ?", id).Updates(updates).Error
}

// SoftDelete tombstones the menu; reviews referencing it stay intact.
func (r *MenuRepository) SoftDelete(id uint) error {
	return r.DB.Delete(&entity.WeeklyMenu{}, id).Error
}

func (r *MenuRepository) Restore(id uint) error {
	return r.DB.Unscoped().Model(&entity.WeeklyMenu{}).
		Where("id = ?", id).
		Update("deleted_at", nil).Error
}

// ---- menu dishes ----

func (r *MenuRepository) AddDish(md *entity.WeeklyMenuDish) error {
	return r.DB.Create(md).Error
}

func (r *MenuRepository) FindMenuDish(id uint) (*entity.WeeklyMenuDish, error) {
	var md entity.WeeklyMenuDish
	if err := r.DB.Preload("Dish").First(&md, id).Error; err != nil {
		return nil, err
	}
	return &md, nil
}

func (r *MenuRepository) RemoveDish(id uint) error {
	return r.DB.Unscoped().Delete(&entity.WeeklyMenuDish{}, id).Error
}

// ConsumeGuard decrements remaining_quantity only while enough remains.
// Zero rows affected means the dish sold out under the caller.
func (r *MenuRepository) ConsumeGuard(menuDishID uint, amount int) (int64, error) {
	res := r.DB.Model(&entity.WeeklyMenuDish{}).
		Where("id = ? AND remaining_quantity >= ?", menuDishID, amount).
		UpdateColumn("remaining_quantity", gorm.Expr("remaining_quantity - ?", amount))
	return res.RowsAffected, res.Error
}

// RestockGuard adds quantity back without exceeding available_quantity.
func (r *MenuRepository) RestockGuard(menuDishID uint, amount int) (int64, error) {
	res := r.DB.Model(&entity.WeeklyMenuDish{}).
		Where("id = ? AND remaining_quantity + ? <= available_quantity", menuDishID, amount).
		UpdateColumn("remaining_quantity", gorm.Expr("remaining_quantity + ?", amount))
	return res.RowsAffected, res.Error
}
