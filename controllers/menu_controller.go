// controllers/menu_controller.go
package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafaelbressan/marmitas.top/pkg/resp"
	"github.com/rafaelbressan/marmitas.top/services"
)

type MenuController struct {
	Menus   *services.MenuService
	Dishes  *services.DishService
	Sellers *services.SellerService
}

func NewMenuController(menus *services.MenuService, dishes *services.DishService, sellers *services.SellerService) *MenuController {
	return &MenuController{Menus: menus, Dishes: dishes, Sellers: sellers}
}

type menuReq struct {
	Title          string    `json:"title" binding:"required"`
	Description    string    `json:"description"`
	AvailableFrom  time.Time `json:"availableFrom" binding:"required"`
	AvailableUntil time.Time `json:"availableUntil" binding:"required"`
	Active         *bool     `json:"active"`
}

func (r menuReq) input() services.MenuInput {
	return services.MenuInput{
		Title:          r.Title,
		Description:    r.Description,
		AvailableFrom:  r.AvailableFrom,
		AvailableUntil: r.AvailableUntil,
		Active:         r.Active,
	}
}

func (ctl *MenuController) Create(c *gin.Context) {
	sellerID, ok := currentSellerID(c, ctl.Sellers)
	if !ok {
		return
	}
	var req menuReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	menu, err := ctl.Menus.Create(sellerID, req.input())
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, menu)
}

func (ctl *MenuController) Update(c *gin.Context) {
	sellerID, ok := currentSellerID(c, ctl.Sellers)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req menuReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	menu, err := ctl.Menus.Update(sellerID, id, req.input())
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, menu)
}

func (ctl *MenuController) Delete(c *gin.Context) {
	sellerID, ok := currentSellerID(c, ctl.Sellers)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctl.Menus.Delete(sellerID, id); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}

func (ctl *MenuController) Restore(c *gin.Context) {
	sellerID, ok := currentSellerID(c, ctl.Sellers)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	menu, err := ctl.Menus.Restore(sellerID, id)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, menu)
}

func (ctl *MenuController) List(c *gin.Context) {
	sellerID, ok := currentSellerID(c, ctl.Sellers)
	if !ok {
		return
	}
	menus, err := ctl.Menus.ListForSeller(sellerID)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, menus)
}

// Current is public: the menu in effect for a seller right now.
func (ctl *MenuController) Current(c *gin.Context) {
	sellerID, ok := paramID(c, "id")
	if !ok {
		return
	}
	menu, err := ctl.Menus.Current(sellerID)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, menu)
}

func (ctl *MenuController) Duplicate(c *gin.Context) {
	sellerID, ok := currentSellerID(c, ctl.Sellers)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	menu, err := ctl.Menus.Duplicate(sellerID, id)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, menu)
}

type menuDishReq struct {
	DishID            uint     `json:"dishId" binding:"required"`
	AvailableQuantity int      `json:"availableQuantity" binding:"required"`
	PriceOverride     *float64 `json:"priceOverride"`
	DisplayOrder      int      `json:"displayOrder"`
}

func (ctl *MenuController) AddDish(c *gin.Context) {
	sellerID, ok := currentSellerID(c, ctl.Sellers)
	if !ok {
		return
	}
	menuID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req menuDishReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	md, err := ctl.Menus.AddDish(sellerID, menuID, services.MenuDishInput{
		DishID:            req.DishID,
		AvailableQuantity: req.AvailableQuantity,
		PriceOverride:     req.PriceOverride,
		DisplayOrder:      req.DisplayOrder,
	})
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, md)
}

func (ctl *MenuController) RemoveDish(c *gin.Context) {
	sellerID, ok := currentSellerID(c, ctl.Sellers)
	if !ok {
		return
	}
	menuDishID, ok := paramID(c, "menuDishId")
	if !ok {
		return
	}
	if err := ctl.Menus.RemoveDish(sellerID, menuDishID); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"removed": true})
}

type quantityReq struct {
	Amount int `json:"amount" binding:"required"`
}

func (ctl *MenuController) Consume(c *gin.Context) {
	sellerID, ok := currentSellerID(c, ctl.Sellers)
	if !ok {
		return
	}
	menuDishID, ok := paramID(c, "menuDishId")
	if !ok {
		return
	}
	var req quantityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	md, err := ctl.Menus.Consume(sellerID, menuDishID, req.Amount)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, md)
}

func (ctl *MenuController) Restock(c *gin.Context) {
	sellerID, ok := currentSellerID(c, ctl.Sellers)
	if !ok {
		return
	}
	menuDishID, ok := paramID(c, "menuDishId")
	if !ok {
		return
	}
	var req quantityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	md, err := ctl.Menus.Restock(sellerID, menuDishID, req.Amount)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, md)
}
