package dto

import (
	"github.com/yigit/coursequest/internal/app/models"
	"github.com/yigit/coursequest/internal/pkg/nlfilter"
)

// Pagination describes one page of a list response
type Pagination struct {
	Page       int   `json:"page" example:"1"`
	Limit      int   `json:"limit" example:"10"`
	Total      int64 `json:"total" example:"57"`
	TotalPages int   `json:"totalPages" example:"6"`
}

// CourseSearchRequest carries the validated query parameters of GET /api/courses.
type CourseSearchRequest struct {
	Department   *string
	Level        *string
	DeliveryMode *string
	MinRating    *float64
	MaxFee       *int
	Search       *string
	Page         int
	Limit        int
}

// CourseListResponse is the data block of GET /api/courses
type CourseListResponse struct {
	Courses    []*models.Course `json:"courses"`
	Pagination Pagination       `json:"pagination"`
}

// CompareResponse is the data block of GET /api/compare
type CompareResponse struct {
	Courses []*models.Course `json:"courses"`
}

// AskRequest is the body of POST /api/ask
type AskRequest struct {
	Question string `json:"question" binding:"required" example:"online PG courses under 50000"`
}

// AskResponse is the data block of POST /api/ask. Message is null when courses were found.
type AskResponse struct {
	ParsedFilters nlfilter.Filters `json:"parsed_filters"`
	Courses       []*models.Course `json:"courses"`
	Count         int              `json:"count"`
	Message       *string          `json:"message"`
}

// IngestResult summarizes one upload.
type IngestResult struct {
	Total    int `json:"total"`
	Ingested int `json:"ingested"`
	Skipped  int `json:"skipped"`
}
