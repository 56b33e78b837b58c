package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"advisory-api/internal/dto"
	"advisory-api/internal/services"
)

type UserController struct {
	userService services.UserService
	logger      *logrus.Logger
}

func NewUserController(userService services.UserService, logger *logrus.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

func (c *UserController) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/users/signin", c.SignIn)
}

// SignIn creates or updates the profile identified by email and returns the
// stored document
func (c *UserController) SignIn(ctx *gin.Context) {
	var req dto.SignInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	user, err := c.userService.SignIn(ctx.Request.Context(), req.ToModel())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UserResponse{User: user})
}
