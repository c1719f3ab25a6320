// Package validation wraps go-playground/validator with json field names and
// application validation errors.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/coursequest/internal/pkg/apperrors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct runs struct-tag validation and converts the first failure into a
// validation error naming the offending json field.
func Struct(obj interface{}) error {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return FromFieldError(fieldErrs[0])
	}
	return apperrors.NewCustomError(apperrors.ErrValidationFailed, err.Error())
}

// FromFieldError converts a single validator failure.
func FromFieldError(fe validator.FieldError) error {
	return apperrors.NewValidationError(fe.Field(), Message(fe))
}

// Message creates a human-readable validation error message
func Message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "gte":
		return e.Field() + " must be at least " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
