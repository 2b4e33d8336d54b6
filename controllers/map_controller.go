// controllers/map_controller.go
package controllers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rafaelbressan/marmitas.top/entity"
	"github.com/rafaelbressan/marmitas.top/pkg/resp"
	"github.com/rafaelbressan/marmitas.top/services"
)

// MapController serves the map views as GeoJSON FeatureCollections.
type MapController struct {
	Geo *services.GeoService
}

func NewMapController(geo *services.GeoService) *MapController {
	return &MapController{Geo: geo}
}

func sellerFeature(sp *entity.SellerProfile, distanceKm float64) gin.H {
	loc := sp.CurrentLocation
	props := gin.H{
		"id":             sp.ID,
		"businessName":   sp.BusinessName,
		"city":           sp.City,
		"state":          sp.State,
		"verified":       sp.Verified,
		"favoritesCount": sp.FavoritesCount,
		"arrivedAt":      sp.ArrivedAt,
		"leavingAt":      sp.LeavingAt,
		"location": gin.H{
			"id":      loc.ID,
			"name":    loc.Name,
			"address": loc.Address,
		},
	}
	if distanceKm >= 0 {
		props["distanceKm"] = math.Round(distanceKm*100) / 100
	}
	return gin.H{
		"type": "Feature",
		"geometry": gin.H{
			"type":        "Point",
			"coordinates": []float64{*loc.Longitude, *loc.Latitude},
		},
		"properties": props,
	}
}

// Sellers handles GET /map/sellers?latitude=&longitude=&radius=
func (ctl *MapController) Sellers(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("latitude"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("longitude"), 64)
	if errLat != nil || errLng != nil {
		resp.BadRequest(c, "latitude and longitude required")
		return
	}
	radius, err := strconv.ParseFloat(c.DefaultQuery("radius", "10"), 64)
	if err != nil || radius <= 0 {
		radius = 10
	}

	nearby, err := ctl.Geo.FindActiveSellersNear(lat, lng, radius)
	if err != nil {
		fail(c, err)
		return
	}

	features := make([]gin.H, 0, len(nearby))
	for i := range nearby {
		features = append(features, sellerFeature(&nearby[i].Seller, nearby[i].DistanceKm))
	}
	resp.OK(c, gin.H{
		"type":     "FeatureCollection",
		"features": features,
		"metadata": gin.H{
			"totalSellers": len(features),
			"searchCenter": gin.H{"latitude": lat, "longitude": lng},
			"radiusKm":     radius,
		},
	})
}

// Bounds handles GET /map/bounds?neLat=&neLng=&swLat=&swLng=
func (ctl *MapController) Bounds(c *gin.Context) {
	neLat, err1 := strconv.ParseFloat(c.Query("neLat"), 64)
	neLng, err2 := strconv.ParseFloat(c.Query("neLng"), 64)
	swLat, err3 := strconv.ParseFloat(c.Query("swLat"), 64)
	swLng, err4 := strconv.ParseFloat(c.Query("swLng"), 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		resp.BadRequest(c, "bounding box required (neLat, neLng, swLat, swLng)")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "200"))
	sellers, err := ctl.Geo.FindActiveSellersInBounds(neLat, neLng, swLat, swLng, limit)
	if err != nil {
		fail(c, err)
		return
	}

	features := make([]gin.H, 0, len(sellers))
	for i := range sellers {
		features = append(features, sellerFeature(&sellers[i], -1))
	}
	resp.OK(c, gin.H{
		"type":     "FeatureCollection",
		"features": features,
		"metadata": gin.H{
			"totalSellers": len(features),
			"bounds": gin.H{
				"ne": gin.H{"lat": neLat, "lng": neLng},
				"sw": gin.H{"lat": swLat, "lng": swLng},
			},
		},
	})
}
