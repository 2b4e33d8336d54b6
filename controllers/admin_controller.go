// controllers/admin_controller.go
package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rafaelbressan/marmitas.top/pkg/resp"
	"github.com/rafaelbressan/marmitas.top/services"
)

type AdminController struct {
	Reviews *services.ReviewService
	Sellers *services.SellerService
}

func NewAdminController(reviews *services.ReviewService, sellers *services.SellerService) *AdminController {
	return &AdminController{Reviews: reviews, Sellers: sellers}
}

func (ctl *AdminController) ModerationQueue(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	reviews, err := ctl.Reviews.ModerationQueue(actor(c), limit, offset)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, reviews)
}

type moderationReq struct {
	Note string `json:"note"`
}

func (ctl *AdminController) ApproveReview(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req moderationReq
	_ = c.ShouldBindJSON(&req)

	rev, err := ctl.Reviews.Approve(actor(c), id, req.Note)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, rev)
}

func (ctl *AdminController) RemoveReview(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req moderationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rev, err := ctl.Reviews.Remove(actor(c), id, req.Note)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, rev)
}

type verifyReq struct {
	Verified *bool `json:"verified" binding:"required"`
}

func (ctl *AdminController) VerifySeller(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req verifyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	sp, err := ctl.Sellers.Verify(actor(c), id, *req.Verified)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, sp)
}
