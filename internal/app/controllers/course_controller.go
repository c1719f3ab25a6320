package controllers

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursequest/internal/app/models/dto"
	"github.com/yigit/coursequest/internal/app/services"
	"github.com/yigit/coursequest/internal/middleware"
	"github.com/yigit/coursequest/internal/pkg/apperrors"
	"github.com/yigit/coursequest/internal/pkg/helpers"
)

// CourseController handles course listing and comparison
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// GetCourses lists courses with optional filters and pagination
// @Summary Search courses
// @Description Filters are combined with AND; results are ordered by course name
// @Tags courses
// @Produce json
// @Param department query string false "Department code (CS, EE, ME, CE, CHEM, MATH, PHYS)"
// @Param level query string false "UG or PG"
// @Param delivery_mode query string false "online, offline or hybrid"
// @Param min_rating query number false "Minimum rating"
// @Param max_fee query int false "Maximum tuition fee in INR"
// @Param search query string false "Substring of the course name"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.CourseListResponse}
// @Failure 400 {object} dto.ErrorResponse "Malformed query parameter"
// @Failure 500 {object} dto.ErrorResponse "Database error"
// @Router /courses [get]
func (c *CourseController) GetCourses(ctx *gin.Context) {
	req, err := parseSearchRequest(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.courseService.Search(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// CompareCourses returns 2 to 4 courses side by side
// @Summary Compare courses
// @Tags courses
// @Produce json
// @Param ids query string true "Comma separated course ids, e.g. 1,2,3"
// @Success 200 {object} dto.APIResponse{data=dto.CompareResponse}
// @Failure 400 {object} dto.ErrorResponse "ids missing, malformed or not between 2 and 4"
// @Failure 500 {object} dto.ErrorResponse "Database error"
// @Router /compare [get]
func (c *CourseController) CompareCourses(ctx *gin.Context) {
	ids, err := parseIDs(ctx.Query("ids"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.courseService.Compare(ctx.Request.Context(), ids)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

func parseSearchRequest(ctx *gin.Context) (dto.CourseSearchRequest, error) {
	page, limit, err := helpers.ParsePaginationParams(ctx)
	if err != nil {
		return dto.CourseSearchRequest{}, err
	}
	req := dto.CourseSearchRequest{
		Department:   optionalString(ctx, "department"),
		Level:        optionalString(ctx, "level"),
		DeliveryMode: optionalString(ctx, "delivery_mode"),
		Search:       optionalString(ctx, "search"),
		Page:         page,
		Limit:        limit,
	}

	if raw := strings.TrimSpace(ctx.Query("min_rating")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return dto.CourseSearchRequest{}, apperrors.NewValidationError("min_rating", "min_rating must be a number")
		}
		req.MinRating = &v
	}
	if raw := strings.TrimSpace(ctx.Query("max_fee")); raw != "" {
		// tuition_fee_inr is an INTEGER column
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return dto.CourseSearchRequest{}, apperrors.NewValidationError("max_fee", "max_fee must be an integer")
		}
		fee := int(v)
		req.MaxFee = &fee
	}
	return req, nil
}

func optionalString(ctx *gin.Context, key string) *string {
	v := strings.TrimSpace(ctx.Query(key))
	if v == "" {
		return nil
	}
	return &v
}

// parseIDs reads a comma separated id list. Every element must be an integer.
func parseIDs(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, apperrors.NewValidationError("ids", "ids required")
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, apperrors.NewValidationError("ids", "ids must be comma separated integers")
		}
		ids = append(ids, id)
	}
	return ids, nil
}
