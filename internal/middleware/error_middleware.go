package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursequest/internal/app/models/dto"
	"github.com/yigit/coursequest/internal/pkg/apperrors"
	"github.com/yigit/coursequest/internal/pkg/logger"
)

// --- Central Error Handling ---

// HandleAPIError maps service errors onto the error envelope. Client errors
// keep the message of the CustomError that raised them; unknown and storage
// errors answer 500 with the underlying message.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := resolveError(err)

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		detail.WithSeverity(dto.ErrorSeverityCritical)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func resolveError(err error) (int, *dto.ErrorDetail) {
	message := err.Error()
	var field string
	var custom *apperrors.CustomError
	if errors.As(err, &custom) {
		if f, ok := custom.Details["field"].(string); ok {
			field = f
		}
	}

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, withField(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message), field)
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, withField(dto.NewErrorDetail(dto.ErrorCodeBadRequest, message), field)
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, message)
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message)
	case errors.Is(err, apperrors.ErrStorage):
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeDatabaseError, message)
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, message)
	}
}

func withField(detail *dto.ErrorDetail, field string) *dto.ErrorDetail {
	if field == "" {
		return detail
	}
	return detail.WithField(field)
}

// Recovery turns a panic into a 500 error envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("Recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").
				WithSeverity(dto.ErrorSeverityCritical)))
	})
}

// NoRoute answers unknown paths with the error envelope.
func NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Route not found").
			WithDetailf("%s %s", c.Request.Method, c.Request.URL.Path)))
}
