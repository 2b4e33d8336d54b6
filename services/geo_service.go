// services/geo_service.go
package services

import (
	"sort"
	"time"

	"github.com/rafaelbressan/marmitas.top/entity"
	"github.com/rafaelbressan/marmitas.top/repository"
	"github.com/rafaelbressan/marmitas.top/utils"
)

// NearbySeller is a proximity hit annotated with the computed distance.
type NearbySeller struct {
	Seller     entity.SellerProfile
	DistanceKm float64
}

// GeoService answers proximity queries over currently broadcasting sellers.
// Only verified sellers participate in public search.
type GeoService struct {
	Sellers *repository.SellerRepository
	Now     func() time.Time
}

func NewGeoService(sellers *repository.SellerRepository) *GeoService {
	return &GeoService{Sellers: sellers, Now: time.Now}
}

// FindActiveSellersNear returns active verified sellers within radiusKm of
// the point, ascending by great-circle distance.
func (s *GeoService) FindActiveSellersNear(lat, lng, radiusKm float64) ([]NearbySeller, error) {
	if !utils.ValidCoordinates(lat, lng) {
		return nil, ErrInvalidCoordinates
	}

	candidates, err := s.Sellers.ActiveVerifiedWithLocation(s.Now())
	if err != nil {
		return nil, err
	}

	results := make([]NearbySeller, 0, len(candidates))
	for _, sp := range candidates {
		loc := sp.CurrentLocation
		if loc == nil || !loc.HasCoordinates() {
			continue
		}
		d := utils.HaversineKm(lat, lng, *loc.Latitude, *loc.Longitude)
		if d <= radiusKm {
			results = append(results, NearbySeller{Seller: sp, DistanceKm: d})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})
	return results, nil
}

// FindActiveSellersInBounds returns active verified sellers inside the
// rectangle. Flat comparison on purpose: good enough for a map viewport.
func (s *GeoService) FindActiveSellersInBounds(neLat, neLng, swLat, swLng float64, limit int) ([]entity.SellerProfile, error) {
	if !utils.ValidCoordinates(neLat, neLng) || !utils.ValidCoordinates(swLat, swLng) {
		return nil, ErrInvalidCoordinates
	}
	if limit <= 0 || limit > 200 {
		limit = 200
	}
	return s.Sellers.ActiveInBounds(neLat, neLng, swLat, swLng, s.Now(), limit)
}
