package controller

import (
	"errors"

	"screener_backend/internal/service"
	"screener_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	AuthService *service.AuthService
}

func NewUserController(authService *service.AuthService) *UserController {
	return &UserController{AuthService: authService}
}

func (c *UserController) GetByEmail(ctx *gin.Context) {
	user, err := c.AuthService.GetUserByEmail(ctx.Param("email"))
	if errors.Is(err, util.ErrUserNotFound) {
		util.NotFound(ctx, "No such user")
		return
	} else if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, user)
}

func (c *UserController) Me(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, user)
}
