// controllers/dish_controller.go
package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/rafaelbressan/marmitas.top/pkg/resp"
	"github.com/rafaelbressan/marmitas.top/services"
)

type DishController struct {
	Dishes  *services.DishService
	Sellers *services.SellerService
}

func NewDishController(dishes *services.DishService, sellers *services.SellerService) *DishController {
	return &DishController{Dishes: dishes, Sellers: sellers}
}

type dishReq struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	BasePrice   float64  `json:"basePrice" binding:"required"`
	Tags        []string `json:"dietaryTags"`
	Active      *bool    `json:"active"`
}

func (r dishReq) input() services.DishInput {
	return services.DishInput{
		Name:        r.Name,
		Description: r.Description,
		BasePrice:   r.BasePrice,
		Tags:        r.Tags,
		Active:      r.Active,
	}
}

func (ctl *DishController) Create(c *gin.Context) {
	sellerID, ok := currentSellerID(c, ctl.Sellers)
	if !ok {
		return
	}
	var req dishReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	dish, err := ctl.Dishes.Create(sellerID, req.input())
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, dish)
}

func (ctl *DishController) Update(c *gin.Context) {
	sellerID, ok := currentSellerID(c, ctl.Sellers)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dishReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	dish, err := ctl.Dishes.Update(sellerID, id, req.input())
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, dish)
}

func (ctl *DishController) Delete(c *gin.Context) {
	sellerID, ok := currentSellerID(c, ctl.Sellers)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctl.Dishes.Delete(sellerID, id); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}

func (ctl *DishController) ListMine(c *gin.Context) {
	sellerID, ok := currentSellerID(c, ctl.Sellers)
	if !ok {
		return
	}
	dishes, err := ctl.Dishes.List(sellerID, false)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, dishes)
}

// ListForSeller is the public dish listing, active dishes only.
func (ctl *DishController) ListForSeller(c *gin.Context) {
	sellerID, ok := paramID(c, "id")
	if !ok {
		return
	}
	dishes, err := ctl.Dishes.List(sellerID, true)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, dishes)
}
