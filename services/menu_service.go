// services/menu_service.go
package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rafaelbressan/marmitas.top/entity"
	"github.com/rafaelbressan/marmitas.top/repository"
)

// MenuService manages weekly menus with their dish quantities. Menus are
// tombstoned, never hard-destroyed: reviews reference them.
type MenuService struct {
	Menus  *repository.MenuRepository
	Dishes *repository.DishRepository
	Now    func() time.Time
}

func NewMenuService(menus *repository.MenuRepository, dishes *repository.DishRepository) *MenuService {
	return &MenuService{Menus: menus, Dishes: dishes, Now: time.Now}
}

type MenuInput struct {
	Title          string
	Description    string
	AvailableFrom  time.Time
	AvailableUntil time.Time
	Active         *bool
}

func (s *MenuService) Create(sellerProfileID uint, in MenuInput) (*entity.WeeklyMenu, error) {
	if !in.AvailableUntil.After(in.AvailableFrom) {
		return nil, ErrInvalidMenuWindow
	}

	menu := &entity.WeeklyMenu{
		SellerProfileID: sellerProfileID,
		Title:           in.Title,
		Description:     in.Description,
		AvailableFrom:   in.AvailableFrom,
		AvailableUntil:  in.AvailableUntil,
		Active:          true,
	}
	if err := s.Menus.Create(menu); err != nil {
		return nil, err
	}
	// active defaults to true at the DB level, so a false value must be
	// written after the insert or it gets swallowed.
	if in.Active != nil && !*in.Active {
		if err := s.Menus.Update(menu.ID, map[string]any{"active": false}); err != nil {
			return nil, err
		}
		menu.Active = false
	}
	return menu, nil
}

func (s *MenuService) Update(sellerProfileID, menuID uint, in MenuInput) (*entity.WeeklyMenu, error) {
	if !in.AvailableUntil.After(in.AvailableFrom) {
		return nil, ErrInvalidMenuWindow
	}
	menu, err := s.owned(sellerProfileID, menuID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{
		"title":           in.Title,
		"description":     in.Description,
		"available_from":  in.AvailableFrom,
		"available_until": in.AvailableUntil,
	}
	if in.Active != nil {
		updates["active"] = *in.Active
	}
	if err := s.Menus.Update(menu.ID, updates); err != nil {
		return nil, err
	}
	return s.Menus.FindByID(menu.ID)
}

// Delete tombstones the menu. Reviews keep their snapshot text.
func (s *MenuService) Delete(sellerProfileID, menuID uint) error {
	menu, err := s.owned(sellerProfileID, menuID)
	if err != nil {
		return err
	}
	return s.Menus.SoftDelete(menu.ID)
}

func (s *MenuService) Restore(sellerProfileID, menuID uint) (*entity.WeeklyMenu, error) {
	menu, err := s.Menus.FindByIDAnyState(menuID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if menu.SellerProfileID != sellerProfileID {
		return nil, ErrNotFound
	}
	if err := s.Menus.Restore(menu.ID); err != nil {
		return nil, err
	}
	return s.Menus.FindByID(menu.ID)
}

func (s *MenuService) ListForSeller(sellerProfileID uint) ([]entity.WeeklyMenu, error) {
	return s.Menus.ForSeller(sellerProfileID)
}

func (s *MenuService) Current(sellerProfileID uint) (*entity.WeeklyMenu, error) {
	menu, err := s.Menus.CurrentForSeller(sellerProfileID, s.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return menu, nil
}

type MenuDishInput struct {
	DishID            uint
	AvailableQuantity int
	PriceOverride     *float64
	DisplayOrder      int
}

func (s *MenuService) AddDish(sellerProfileID, menuID uint, in MenuDishInput) (*entity.WeeklyMenuDish, error) {
	if in.AvailableQuantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	menu, err := s.owned(sellerProfileID, menuID)
	if err != nil {
		return nil, err
	}
	dish, err := s.Dishes.FindByID(in.DishID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if dish.SellerProfileID != sellerProfileID {
		return nil, ErrNotFound
	}

	md := &entity.WeeklyMenuDish{
		WeeklyMenuID:      menu.ID,
		DishID:            dish.ID,
		AvailableQuantity: in.AvailableQuantity,
		RemainingQuantity: in.AvailableQuantity,
		PriceOverride:     in.PriceOverride,
		DisplayOrder:      in.DisplayOrder,
	}
	if err := s.Menus.AddDish(md); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDishAlreadyOnMenu
		}
		return nil, err
	}
	return md, nil
}

func (s *MenuService) RemoveDish(sellerProfileID, menuDishID uint) error {
	md, err := s.ownedMenuDish(sellerProfileID, menuDishID)
	if err != nil {
		return err
	}
	return s.Menus.RemoveDish(md.ID)
}

// Consume decrements the remaining quantity, failing once sold out.
func (s *MenuService) Consume(sellerProfileID, menuDishID uint, amount int) (*entity.WeeklyMenuDish, error) {
	if amount <= 0 {
		return nil, ErrInvalidQuantity
	}
	md, err := s.ownedMenuDish(sellerProfileID, menuDishID)
	if err != nil {
		return nil, err
	}

	affected, err := s.Menus.ConsumeGuard(md.ID, amount)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrQuantityExhausted
	}
	return s.Menus.FindMenuDish(md.ID)
}

// Restock adds quantity back, e.g. a cancelled order, capped at the
// original available quantity.
func (s *MenuService) Restock(sellerProfileID, menuDishID uint, amount int) (*entity.WeeklyMenuDish, error) {
	if amount <= 0 {
		return nil, ErrInvalidQuantity
	}
	md, err := s.ownedMenuDish(sellerProfileID, menuDishID)
	if err != nil {
		return nil, err
	}

	affected, err := s.Menus.RestockGuard(md.ID, amount)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrInvalidQuantity
	}
	return s.Menus.FindMenuDish(md.ID)
}

// Duplicate copies a menu one week forward with quantities reset and the
// copy inactive until the seller publishes it.
func (s *MenuService) Duplicate(sellerProfileID, menuID uint) (*entity.WeeklyMenu, error) {
	menu, err := s.owned(sellerProfileID, menuID)
	if err != nil {
		return nil, err
	}

	copy := &entity.WeeklyMenu{
		SellerProfileID: menu.SellerProfileID,
		Title:           menu.Title,
		Description:     menu.Description,
		AvailableFrom:   menu.AvailableFrom.AddDate(0, 0, 7),
		AvailableUntil:  menu.AvailableUntil.AddDate(0, 0, 7),
	}
	if err := s.Menus.Create(copy); err != nil {
		return nil, err
	}
	// active carries a DB default of true, which swallows the zero value
	// on insert; the copy must start unpublished.
	if err := s.Menus.Update(copy.ID, map[string]any{"active": false}); err != nil {
		return nil, err
	}
	for _, md := range menu.WeeklyMenuDishes {
		newDish := &entity.WeeklyMenuDish{
			WeeklyMenuID:      copy.ID,
			DishID:            md.DishID,
			AvailableQuantity: md.AvailableQuantity,
			RemainingQuantity: md.AvailableQuantity,
			PriceOverride:     md.PriceOverride,
			DisplayOrder:      md.DisplayOrder,
		}
		if err := s.Menus.AddDish(newDish); err != nil {
			return nil, err
		}
	}
	return s.Menus.FindByID(copy.ID)
}

func (s *MenuService) owned(sellerProfileID, menuID uint) (*entity.WeeklyMenu, error) {
	menu, err := s.Menus.FindByID(menuID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if menu.SellerProfileID != sellerProfileID {
		return nil, ErrNotFound
	}
	return menu, nil
}

func (s *MenuService) ownedMenuDish(sellerProfileID, menuDishID uint) (*entity.WeeklyMenuDish, error) {
	md, err := s.Menus.FindMenuDish(menuDishID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := s.owned(sellerProfileID, md.WeeklyMenuID); err != nil {
		return nil, err
	}
	return md, nil
}
