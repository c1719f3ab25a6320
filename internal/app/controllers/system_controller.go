package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursequest/internal/app/models/dto"
	"github.com/yigit/coursequest/internal/app/services"
	"github.com/yigit/coursequest/internal/middleware"
)

// SystemController serves liveness, health and schema setup
type SystemController struct {
	systemService services.SystemService
}

// NewSystemController creates a new SystemController
func NewSystemController(systemService services.SystemService) *SystemController {
	return &SystemController{systemService: systemService}
}

// Root is the liveness probe
// @Summary Liveness
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (c *SystemController) Root(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "CourseQuest API is running!"})
}

// Health pings the database
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (c *SystemController) Health(ctx *gin.Context) {
	if err := c.systemService.Health(ctx.Request.Context()); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Setup drops and recreates the courses table
// @Summary Reset the schema
// @Description Destructive: every course is deleted
// @Tags system
// @Produce json
// @Success 200 {object} dto.APIResponse "Database ready!"
// @Failure 500 {object} dto.ErrorResponse "Database error"
// @Router /setup [post]
func (c *SystemController) Setup(ctx *gin.Context) {
	if err := c.systemService.Setup(ctx.Request.Context()); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Database ready!"))
}
