package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursequest/internal/app/models/dto"
	"github.com/yigit/coursequest/internal/app/services"
	"github.com/yigit/coursequest/internal/middleware"
	"github.com/yigit/coursequest/internal/pkg/apperrors"
)

// IngestController handles course file uploads
type IngestController struct {
	ingestService services.IngestService
}

// NewIngestController creates a new IngestController
func NewIngestController(ingestService services.IngestService) *IngestController {
	return &IngestController{ingestService: ingestService}
}

// Ingest upserts every course in the uploaded CSV or XLSX file
// @Summary Ingest courses
// @Description Records are upserted on course_id; an existing course only gets its name and rating updated
// @Tags ingest
// @Accept multipart/form-data
// @Produce json
// @Param x-ingest-token header string true "Ingest secret"
// @Param file formData file true "CSV or XLSX file with a header row"
// @Success 200 {object} dto.APIResponse{data=dto.IngestResult} "Ingested N courses"
// @Failure 400 {object} dto.ErrorResponse "No file uploaded or unreadable file"
// @Failure 401 {object} dto.ErrorResponse "Missing or wrong ingest token"
// @Failure 500 {object} dto.ErrorResponse "Database error"
// @Router /ingest [post]
func (c *IngestController) Ingest(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.HandleAPIError(ctx, apperrors.NewBadRequestError(
				fmt.Sprintf("file exceeds the %d byte upload limit", tooLarge.Limit)))
			return
		}
		middleware.HandleAPIError(ctx, apperrors.NewCustomError(
			errors.Join(apperrors.ErrBadRequest, apperrors.ErrNoFileUploaded), "No file uploaded"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("failed to open upload: "+err.Error()))
		return
	}
	defer file.Close()

	result, err := c.ingestService.Ingest(ctx.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.NewMessageResponse(fmt.Sprintf("Ingested %d courses", result.Ingested))
	resp.Data = result
	ctx.JSON(http.StatusOK, resp)
}
