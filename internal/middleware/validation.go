package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/coursequest/internal/pkg/apperrors"
	"github.com/yigit/coursequest/internal/pkg/validation"
)

// BindJSON decodes the request body into obj. Malformed JSON becomes a bad
// request error, failed `binding` tags a validation error naming the field.
func BindJSON(c *gin.Context, obj interface{}) error {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return validation.FromFieldError(fieldErrs[0])
	}
	return apperrors.NewBadRequestError("Invalid request format: " + err.Error())
}
