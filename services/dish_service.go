// services/dish_service.go
package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/rafaelbressan/marmitas.top/entity"
	"github.com/rafaelbressan/marmitas.top/repository"
)

type DishService struct {
	Dishes *repository.DishRepository
}

func NewDishService(dishes *repository.DishRepository) *DishService {
	return &DishService{Dishes: dishes}
}

type DishInput struct {
	Name        string
	Description string
	BasePrice   float64
	Tags        []string
	Active      *bool
}

func (s *DishService) Create(sellerProfileID uint, in DishInput) (*entity.Dish, error) {
	dish := &entity.Dish{
		SellerProfileID: sellerProfileID,
		Name:            in.Name,
		Description:     in.Description,
		BasePrice:       in.BasePrice,
		Tags:            filterTags(in.Tags),
		Active:          true,
	}
	if err := s.Dishes.Create(dish); err != nil {
		return nil, err
	}
	// active defaults to true at the DB level and swallows false on
	// insert, so an explicit false lands as a follow-up write.
	if in.Active != nil && !*in.Active {
		dish.Active = false
		if err := s.Dishes.Update(dish); err != nil {
			return nil, err
		}
	}
	return dish, nil
}

func (s *DishService) Update(sellerProfileID, dishID uint, in DishInput) (*entity.Dish, error) {
	dish, err := s.owned(sellerProfileID, dishID)
	if err != nil {
		return nil, err
	}

	dish.Name = in.Name
	dish.Description = in.Description
	dish.BasePrice = in.BasePrice
	dish.Tags = filterTags(in.Tags)
	if in.Active != nil {
		dish.Active = *in.Active
	}
	if err := s.Dishes.Update(dish); err != nil {
		return nil, err
	}
	return dish, nil
}

func (s *DishService) Delete(sellerProfileID, dishID uint) error {
	dish, err := s.owned(sellerProfileID, dishID)
	if err != nil {
		return err
	}
	return s.Dishes.Delete(dish.ID)
}

func (s *DishService) List(sellerProfileID uint, activeOnly bool) ([]entity.Dish, error) {
	return s.Dishes.ForSeller(sellerProfileID, activeOnly)
}

func (s *DishService) owned(sellerProfileID, dishID uint) (*entity.Dish, error) {
	dish, err := s.Dishes.FindByID(dishID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if dish.SellerProfileID != sellerProfileID {
		return nil, ErrNotFound
	}
	return dish, nil
}

// filterTags keeps only recognized dietary tags.
func filterTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		for _, known := range entity.DietaryTags {
			if t == known {
				out = append(out, t)
				break
			}
		}
	}
	return out
}
