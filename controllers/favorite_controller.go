// controllers/favorite_controller.go
package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/rafaelbressan/marmitas.top/pkg/resp"
	"github.com/rafaelbressan/marmitas.top/services"
	"github.com/rafaelbressan/marmitas.top/utils"
)

type FavoriteController struct {
	Favorites *services.FavoriteService
}

func NewFavoriteController(favorites *services.FavoriteService) *FavoriteController {
	return &FavoriteController{Favorites: favorites}
}

type favoriteReq struct {
	Type     string `json:"type" binding:"required"`
	TargetID uint   `json:"targetId" binding:"required"`
}

func (ctl *FavoriteController) Toggle(c *gin.Context) {
	var req favoriteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	favorited, err := ctl.Favorites.Toggle(utils.CurrentUserID(c), req.Type, req.TargetID)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"favorited": favorited})
}

func (ctl *FavoriteController) List(c *gin.Context) {
	favs, err := ctl.Favorites.List(utils.CurrentUserID(c), c.Query("type"))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, favs)
}
