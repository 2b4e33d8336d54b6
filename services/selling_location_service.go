// services/selling_location_service.go
package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/rafaelbressan/marmitas.top/entity"
	"github.com/rafaelbressan/marmitas.top/repository"
	"github.com/rafaelbressan/marmitas.top/utils"
)

const maxLocationsPerSeller = 3

// SellingLocationService manages a seller's named selling points.
type SellingLocationService struct {
	Locations *repository.SellingLocationRepository
	Sellers   *repository.SellerRepository
}

func NewSellingLocationService(locations *repository.SellingLocationRepository, sellers *repository.SellerRepository) *SellingLocationService {
	return &SellingLocationService{Locations: locations, Sellers: sellers}
}

type LocationInput struct {
	Name      string
	Address   string
	Latitude  *float64
	Longitude *float64
	Notes     string
}

func (s *SellingLocationService) Create(sellerProfileID uint, in LocationInput) (*entity.SellingLocation, error) {
	if err := validateLocationInput(in); err != nil {
		return nil, err
	}

	count, err := s.Locations.CountForSeller(sellerProfileID)
	if err != nil {
		return nil, err
	}
	if count >= maxLocationsPerSeller {
		return nil, ErrLocationLimit
	}

	loc := &entity.SellingLocation{
		SellerProfileID: sellerProfileID,
		Name:            in.Name,
		Address:         in.Address,
		Latitude:        in.Latitude,
		Longitude:       in.Longitude,
		Notes:           in.Notes,
	}
	if err := s.Locations.Create(loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *SellingLocationService) Update(sellerProfileID, locationID uint, in LocationInput) (*entity.SellingLocation, error) {
	if err := validateLocationInput(in); err != nil {
		return nil, err
	}

	loc, err := s.owned(sellerProfileID, locationID)
	if err != nil {
		return nil, err
	}

	loc.Name = in.Name
	loc.Address = in.Address
	loc.Latitude = in.Latitude
	loc.Longitude = in.Longitude
	loc.Notes = in.Notes
	if err := s.Locations.Update(loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// Delete refuses while the location is the seller's broadcast target;
// leaving first keeps the current_location reference from dangling.
func (s *SellingLocationService) Delete(sellerProfileID, locationID uint) error {
	loc, err := s.owned(sellerProfileID, locationID)
	if err != nil {
		return err
	}

	seller, err := s.Sellers.FindByID(sellerProfileID)
	if err != nil {
		return err
	}
	if seller.CurrentLocationID != nil && *seller.CurrentLocationID == loc.ID {
		return ErrLocationInUse
	}

	return s.Locations.Delete(loc.ID)
}

func (s *SellingLocationService) List(sellerProfileID uint) ([]entity.SellingLocation, error) {
	return s.Locations.ForSeller(sellerProfileID)
}

func (s *SellingLocationService) Get(sellerProfileID, locationID uint) (*entity.SellingLocation, error) {
	return s.owned(sellerProfileID, locationID)
}

func (s *SellingLocationService) owned(sellerProfileID, locationID uint) (*entity.SellingLocation, error) {
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
	return loc, nil
}

func validateLocationInput(in LocationInput) error {
	if in.Latitude != nil && in.Longitude != nil {
		if !utils.ValidCoordinates(*in.Latitude, *in.Longitude) {
			return ErrInvalidCoordinates
		}
	}
	return nil
}
