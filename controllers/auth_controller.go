// controllers/auth_controller.go
package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/rafaelbressan/marmitas.top/pkg/resp"
	"github.com/rafaelbressan/marmitas.top/services"
	"github.com/rafaelbressan/marmitas.top/utils"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

type registerReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

func (ctl *AuthController) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	user, err := ctl.Auth.Register(req.Name, req.Email, req.Password, req.Phone)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, user)
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (ctl *AuthController) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	token, user, err := ctl.Auth.Login(req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"token": token, "user": user})
}

func (ctl *AuthController) Me(c *gin.Context) {
	user, err := ctl.Auth.GetProfile(utils.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, user)
}

type updateProfileReq struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

func (ctl *AuthController) UpdateMe(c *gin.Context) {
	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	user, err := ctl.Auth.UpdateProfile(utils.CurrentUserID(c), updates)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, user)
}

type deviceReq struct {
	Token    string `json:"token" binding:"required"`
	Platform string `json:"platform"`
}

func (ctl *AuthController) RegisterDevice(c *gin.Context) {
	var req deviceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := ctl.Auth.RegisterDevice(utils.CurrentUserID(c), req.Token, req.Platform); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"registered": true})
}

func (ctl *AuthController) RemoveDevice(c *gin.Context) {
	var req deviceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := ctl.Auth.RemoveDevice(utils.CurrentUserID(c), req.Token); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"removed": true})
}
