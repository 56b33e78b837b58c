package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"advisory-api/internal/dto"
	"advisory-api/internal/services"
)

// defaultHistoryLimit bounds the snapshots returned when the caller does not
// pass a limit
const defaultHistoryLimit = 30

type PortfolioController struct {
	portfolioService services.PortfolioService
	logger           *logrus.Logger
}

func NewPortfolioController(portfolioService services.PortfolioService, logger *logrus.Logger) *PortfolioController {
	return &PortfolioController{
		portfolioService: portfolioService,
		logger:           logger,
	}
}

func (c *PortfolioController) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/portfolio/save", c.Save)
	r.GET("/portfolio/:userId", c.Get)
	r.GET("/portfolio/:userId/history", c.History)
}

// Save upserts the caller's portfolio and returns the stored document
func (c *PortfolioController) Save(ctx *gin.Context) {
	var req dto.SavePortfolioRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	portfolio, err := c.portfolioService.Save(ctx.Request.Context(), req.ToModel())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PortfolioResponse{Portfolio: portfolio})
}

// Get retrieves the current portfolio for a user
func (c *PortfolioController) Get(ctx *gin.Context) {
	userID := ctx.Param("userId")

	portfolio, err := c.portfolioService.GetByUserID(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PortfolioResponse{Portfolio: portfolio})
}

// History returns a user's recent summary snapshots, newest first
func (c *PortfolioController) History(ctx *gin.Context) {
	userID := ctx.Param("userId")

	limit := defaultHistoryLimit
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	snapshots, err := c.portfolioService.GetHistory(ctx.Request.Context(), userID, limit)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.HistoryResponse{
		UserID:    userID,
		Snapshots: snapshots,
	})
}
