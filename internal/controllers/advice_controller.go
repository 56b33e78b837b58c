package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"advisory-api/internal/dto"
	"advisory-api/internal/services"
)

type AdviceController struct {
	adviceService services.AdviceService
	logger        *logrus.Logger
}

func NewAdviceController(adviceService services.AdviceService, logger *logrus.Logger) *AdviceController {
	return &AdviceController{
		adviceService: adviceService,
		logger:        logger,
	}
}

func (c *AdviceController) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/advice/analyze", c.Analyze)
	r.POST("/chat", c.Chat)
}

// Analyze summarizes the user's portfolio and returns advisory text for it
func (c *AdviceController) Analyze(ctx *gin.Context) {
	var req dto.AnalyzeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	result, err := c.adviceService.Analyze(ctx.Request.Context(), req.UserID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// Chat answers a conversational message grounded in the user's profile and
// portfolio
func (c *AdviceController) Chat(ctx *gin.Context) {
	var req dto.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	reply, err := c.adviceService.Chat(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ChatResponse{Reply: reply})
}
