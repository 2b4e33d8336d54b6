// controllers/location_controller.go
package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafaelbressan/marmitas.top/pkg/resp"
	"github.com/rafaelbressan/marmitas.top/services"
)

type LocationController struct {
	Locations *services.SellingLocationService
	Broadcast *services.BroadcastService
	Sellers   *services.SellerService
}

func NewLocationController(locations *services.SellingLocationService, broadcast *services.BroadcastService, sellers *services.SellerService) *LocationController {
	return &LocationController{Locations: locations, Broadcast: broadcast, Sellers: sellers}
}

type locationReq struct {
	Name      string   `json:"name" binding:"required"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Notes     string   `json:"notes"`
}

func (r locationReq) input() services.LocationInput {
	return services.LocationInput{
		Name:      r.Name,
		Address:   r.Address,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Notes:     r.Notes,
	}
}

func (ctl *LocationController) Create(c *gin.Context) {
	sellerID, ok := currentSellerID(c, ctl.Sellers)
	if !ok {
		return
	}
	var req locationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	loc, err := ctl.Locations.Create(sellerID, req.input())
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, loc)
}

func (ctl *LocationController) Update(c *gin.Context) {
	sellerID, ok := currentSellerID(c, ctl.Sellers)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req locationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	loc, err := ctl.Locations.Update(sellerID, id, req.input())
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, loc)
}

func (ctl *LocationController) Delete(c *gin.Context) {
	sellerID, ok := currentSellerID(c, ctl.Sellers)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctl.Locations.Delete(sellerID, id); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}

func (ctl *LocationController) List(c *gin.Context) {
	sellerID, ok := currentSellerID(c, ctl.Sellers)
	if !ok {
		return
	}
	locs, err := ctl.Locations.List(sellerID)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, locs)
}

type arriveReq struct {
	LocationID uint       `json:"locationId" binding:"required"`
	LeavingAt  *time.Time `json:"leavingAt"`
}

// Arrive starts broadcasting from one of the seller's locations.
func (ctl *LocationController) Arrive(c *gin.Context) {
	sellerID, ok := currentSellerID(c, ctl.Sellers)
	if !ok {
		return
	}
	var req arriveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	sp, err := ctl.Broadcast.Arrive(sellerID, req.LocationID, req.LeavingAt)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, sp)
}

type leaveReq struct {
	LocationID uint `json:"locationId"`
}

func (ctl *LocationController) Leave(c *gin.Context) {
	sellerID, ok := currentSellerID(c, ctl.Sellers)
	if !ok {
		return
	}
	var req leaveReq
	// body optional: leaving without a location id ends any broadcast
	_ = c.ShouldBindJSON(&req)

	sp, err := ctl.Broadcast.Leave(sellerID, req.LocationID)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, sp)
}

func (ctl *LocationController) Status(c *gin.Context) {
	sellerID, ok := currentSellerID(c, ctl.Sellers)
	if !ok {
		return
	}
	sp, err := ctl.Broadcast.Status(sellerID)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, sp)
}
