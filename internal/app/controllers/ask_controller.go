package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursequest/internal/app/models/dto"
	"github.com/yigit/coursequest/internal/app/services"
	"github.com/yigit/coursequest/internal/middleware"
	"github.com/yigit/coursequest/internal/pkg/apperrors"
)

// AskController handles free-text course questions
type AskController struct {
	askService services.AskService
}

// NewAskController creates a new AskController
func NewAskController(askService services.AskService) *AskController {
	return &AskController{askService: askService}
}

// Ask answers a free-text question with at most 20 courses, best rated first
// @Summary Ask about courses
// @Description Extracts department, level, delivery mode, fee cap and minimum rating from the question
// @Tags ask
// @Accept json
// @Produce json
// @Param request body dto.AskRequest true "Question"
// @Success 200 {object} dto.APIResponse{data=dto.AskResponse}
// @Failure 400 {object} dto.ErrorResponse "question required"
// @Failure 500 {object} dto.ErrorResponse "Database error"
// @Router /ask [post]
func (c *AskController) Ask(ctx *gin.Context) {
	var req dto.AskRequest
	if err := middleware.BindJSON(ctx, &req); err != nil {
		if errors.Is(err, apperrors.ErrValidationFailed) {
			err = apperrors.NewValidationError("question", "question required")
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.askService.Ask(ctx.Request.Context(), req.Question)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
