// controllers/fail.go
package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rafaelbressan/marmitas.top/entity"
	"github.com/rafaelbressan/marmitas.top/pkg/resp"
	"github.com/rafaelbressan/marmitas.top/services"
	"github.com/rafaelbressan/marmitas.top/utils"
)

// fail maps a domain error to its HTTP status. Internal errors keep their
// message out of the response body.
func fail(c *gin.Context, err error) {
	switch services.Classify(err) {
	case services.KindValidation:
		resp.BadRequest(c, err.Error())
	case services.KindConflict:
		resp.Conflict(c, err.Error())
	case services.KindPermission:
		resp.Forbidden(c, err.Error())
	case services.KindNotFound:
		resp.NotFound(c, err.Error())
	default:
		resp.ServerError(c, err)
	}
}

// actor rebuilds the acting user from the JWT claims the middleware stored.
func actor(c *gin.Context) *entity.User {
	return &entity.User{
		Model:   gorm.Model{ID: utils.CurrentUserID(c)},
		IsAdmin: utils.CurrentIsAdmin(c),
	}
}
