package helpers

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursequest/internal/app/models/dto"
	"github.com/yigit/coursequest/internal/pkg/apperrors"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
	DefaultPage  = 1 // pages are 1-based
)

// CalculateOffsetLimit converts a 1-based page and a page size into SQL offset/limit.
// Out-of-range inputs fall back to the defaults, and an offset that would
// overflow is clamped to the largest page that fits.
func CalculateOffsetLimit(page, limit int) (offset, size uint64) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if page < 1 {
		page = DefaultPage
	}
	if page-1 > math.MaxInt/limit {
		page = math.MaxInt/limit + 1
	}
	return uint64((page - 1) * limit), uint64(limit)
}

// NewPagination builds the pagination block of a list response.
// TotalPages is ceil(total/limit) and therefore 0 for an empty result.
func NewPagination(total int64, page, limit int) dto.Pagination {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if page < 1 {
		page = DefaultPage
	}

	totalPages := 0
	if total > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}

	return dto.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// ParsePaginationParams reads page and limit from the query string.
// Absent values take the defaults, limit is capped at MaxLimit, and values
// that are not positive integers are rejected.
func ParsePaginationParams(c *gin.Context) (page, limit int, err error) {
	page, err = parsePositive(c, "page", DefaultPage)
	if err != nil {
		return 0, 0, err
	}
	limit, err = parsePositive(c, "limit", DefaultLimit)
	if err != nil {
		return 0, 0, err
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	// (page-1)*limit must not overflow the offset
	if page-1 > math.MaxInt/limit {
		return 0, 0, apperrors.NewValidationError("page", "page is out of range")
	}
	return page, limit, nil
}

func parsePositive(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, apperrors.NewValidationError(key, fmt.Sprintf("%s must be a positive integer", key))
	}
	return v, nil
}
