// controllers/seller_controller.go
package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rafaelbressan/marmitas.top/pkg/resp"
	"github.com/rafaelbressan/marmitas.top/services"
	"github.com/rafaelbressan/marmitas.top/utils"
)

type SellerController struct {
	Sellers *services.SellerService
	Reviews *services.ReviewService
}

func NewSellerController(sellers *services.SellerService, reviews *services.ReviewService) *SellerController {
	return &SellerController{Sellers: sellers, Reviews: reviews}
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// currentSellerID resolves the authenticated user's seller profile.
func currentSellerID(c *gin.Context, sellers *services.SellerService) (uint, bool) {
	sp, err := sellers.GetByUser(utils.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return 0, false
	}
	return sp.ID, true
}

type sellerProfileReq struct {
	BusinessName   string `json:"businessName" binding:"required"`
	Bio            string `json:"bio"`
	Phone          string `json:"phone"`
	Whatsapp       string `json:"whatsapp"`
	City           string `json:"city"`
	State          string `json:"state"`
	OperatingHours string `json:"operatingHours"`
}

func (ctl *SellerController) CreateProfile(c *gin.Context) {
	var req sellerProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	sp, err := ctl.Sellers.CreateProfile(utils.CurrentUserID(c), services.SellerProfileInput{
		BusinessName:   req.BusinessName,
		Bio:            req.Bio,
		Phone:          req.Phone,
		Whatsapp:       req.Whatsapp,
		City:           req.City,
		State:          req.State,
		OperatingHours: req.OperatingHours,
	})
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, sp)
}

func (ctl *SellerController) MyProfile(c *gin.Context) {
	sp, err := ctl.Sellers.GetByUser(utils.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, sp)
}

func (ctl *SellerController) UpdateMyProfile(c *gin.Context) {
	var req map[string]any
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	// whitelist the editable columns
	updates := map[string]any{}
	for _, k := range []string{"business_name", "bio", "phone", "whatsapp", "city", "state", "operating_hours"} {
		if v, ok := req[k]; ok {
			updates[k] = v
		}
	}
	sp, err := ctl.Sellers.UpdateProfile(utils.CurrentUserID(c), updates)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, sp)
}

// Show is the public seller detail, rating summary included.
func (ctl *SellerController) Show(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	sp, err := ctl.Sellers.Get(id)
	if err != nil {
		fail(c, err)
		return
	}
	summary := services.SummaryFor(sp)
	trend, err := ctl.Reviews.Ratings.Trend(sp.ID)
	if err == nil {
		summary.Trend = trend
	}
	resp.OK(c, gin.H{"seller": sp, "ratingSummary": summary})
}

func (ctl *SellerController) List(c *gin.Context) {
	city := c.Query("city")
	minRating, _ := strconv.ParseFloat(c.DefaultQuery("minRating", "0"), 64)
	activeOnly := c.Query("active") == "true"
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	sellers, err := ctl.Sellers.ListVerified(city, minRating, activeOnly, limit, offset)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, sellers)
}
