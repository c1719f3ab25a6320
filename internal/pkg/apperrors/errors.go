package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")

	// Authorization errors
	ErrUnauthorized = errors.New("unauthorized")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Storage errors
	ErrStorage = errors.New("storage error")
)

// Course errors
var (
	ErrCompareRange       = errors.New("compare 2-4 courses")
	ErrCoursesTableAbsent = errors.New("courses table does not exist, call POST /api/setup first")
)

// Ingest errors
var (
	ErrNoFileUploaded  = errors.New("no file uploaded")
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrMissingColumns  = errors.New("missing required columns")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewValidationError creates a validation error naming the offending field
func NewValidationError(field, message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
		Details: map[string]interface{}{"field": field},
	}
}

// NewUnauthorizedError creates a new custom error for rejected credentials
func NewUnauthorizedError(message string) error {
	return &CustomError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// NewStorageError wraps a database failure so the API layer can surface its message
func NewStorageError(err error, message string) error {
	return &CustomError{
		Err:     errors.Join(ErrStorage, err),
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
