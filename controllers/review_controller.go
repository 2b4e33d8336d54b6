// controllers/review_controller.go
package controllers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafaelbressan/marmitas.top/pkg/resp"
	"github.com/rafaelbressan/marmitas.top/repository"
	"github.com/rafaelbressan/marmitas.top/services"
	"github.com/rafaelbressan/marmitas.top/utils"
)

type ReviewController struct {
	Reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{Reviews: reviews}
}

type createReviewReq struct {
	SellerProfileID    uint       `json:"sellerProfileId" binding:"required"`
	Rating             int        `json:"rating" binding:"required"`
	Comment            string     `json:"comment"`
	EncounterDate      *time.Time `json:"encounterDate"`
	WeeklyMenuID       *uint      `json:"weeklyMenuId"`
	EncounterLatitude  *float64   `json:"encounterLatitude"`
	EncounterLongitude *float64   `json:"encounterLongitude"`
	EncounterTimestamp *time.Time `json:"encounterTimestamp"`
}

func (ctl *ReviewController) Create(c *gin.Context) {
	var req createReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rev, err := ctl.Reviews.Create(utils.CurrentUserID(c), services.CreateReviewInput{
		SellerProfileID:    req.SellerProfileID,
		Rating:             req.Rating,
		Comment:            req.Comment,
		EncounterDate:      req.EncounterDate,
		WeeklyMenuID:       req.WeeklyMenuID,
		EncounterLatitude:  req.EncounterLatitude,
		EncounterLongitude: req.EncounterLongitude,
		EncounterTimestamp: req.EncounterTimestamp,
	})
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, rev)
}

// ListForSeller is the public review listing: /sellers/:id/reviews
func (ctl *ReviewController) ListForSeller(c *gin.Context) {
	sellerID, ok := paramID(c, "id")
	if !ok {
		return
	}

	rating, _ := strconv.Atoi(c.Query("rating"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	reviews, summary, err := ctl.Reviews.ListForSeller(sellerID, repository.ListOptions{
		Rating:       rating,
		VerifiedOnly: c.Query("verified") == "true",
		WithComments: c.Query("withComments") == "true",
		Sort:         c.DefaultQuery("sort", "recent"),
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"reviews": reviews, "summary": summary})
}

func (ctl *ReviewController) Show(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	rev, err := ctl.Reviews.Get(id)
	if err != nil {
		fail(c, err)
		return
	}
	userID := utils.CurrentUserID(c)
	resp.OK(c, gin.H{
		"review":    rev,
		"editable":  ctl.Reviews.EditableBy(rev, userID),
		"flaggable": ctl.Reviews.FlaggableBy(rev, userID),
		"voted":     ctl.Reviews.HelpfulBy(userID, rev.ID),
	})
}

type updateReviewReq struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

func (ctl *ReviewController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req updateReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rev, err := ctl.Reviews.Update(utils.CurrentUserID(c), id, services.UpdateReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, rev)
}

func (ctl *ReviewController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctl.Reviews.Delete(actor(c), id); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}

type flagReq struct {
	Reason string `json:"reason" binding:"required"`
}

func (ctl *ReviewController) Flag(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req flagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rev, err := ctl.Reviews.Flag(utils.CurrentUserID(c), id, req.Reason)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, rev)
}

func (ctl *ReviewController) ToggleHelpful(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	voted, count, err := ctl.Reviews.ToggleHelpful(utils.CurrentUserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"voted": voted, "helpfulCount": count})
}

func (ctl *ReviewController) Mine(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	reviews, err := ctl.Reviews.ListForUser(utils.CurrentUserID(c), limit, offset)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, reviews)
}
