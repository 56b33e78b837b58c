package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"advisory-api/pkg/database"
)

type HealthController struct {
	db *database.MongoDB
}

func NewHealthController(db *database.MongoDB) *HealthController {
	return &HealthController{db: db}
}

func (c *HealthController) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/health", c.Health)
}

// Health reports liveness plus database reachability
func (c *HealthController) Health(ctx *gin.Context) {
	if err := c.db.Ping(ctx.Request.Context()); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"status": "degraded",
			"error":  "database unreachable",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
