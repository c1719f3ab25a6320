package helpers

import (
	"errors"
	"math"
	"strconv"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/coursequest/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func contextWithQuery(rawQuery string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/courses?"+rawQuery, nil)
	return c
}

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		page, limit  int
		offset, size uint64
	}{
		{1, 10, 0, 10},
		{3, 10, 20, 10},
		{2, 25, 25, 25},
		{0, 10, 0, 10},
		{1, 0, 0, DefaultLimit},
		{2, 500, MaxLimit, MaxLimit},
		{math.MaxInt, 10, math.MaxInt / 10 * 10, 10},
	}
	for _, tt := range tests {
		offset, size := CalculateOffsetLimit(tt.page, tt.limit)
		assert.Equal(t, tt.offset, offset, "page=%d limit=%d", tt.page, tt.limit)
		assert.Equal(t, tt.size, size, "page=%d limit=%d", tt.page, tt.limit)
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(23, 3, 10)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, int64(23), p.Total)
	assert.Equal(t, 3, p.TotalPages)

	assert.Equal(t, 0, NewPagination(0, 1, 10).TotalPages)
	assert.Equal(t, 1, NewPagination(10, 1, 10).TotalPages)
	assert.Equal(t, 2, NewPagination(11, 1, 10).TotalPages)
}

// The last page holds total - limit*(totalPages-1) rows.
func TestNewPagination_LastPageSize(t *testing.T) {
	for _, total := range []int64{1, 9, 10, 11, 57, 100} {
		p := NewPagination(total, 1, 10)
		offset, size := CalculateOffsetLimit(p.TotalPages, p.Limit)
		lastPage := total - int64(offset)
		if lastPage > int64(size) {
			lastPage = int64(size)
		}
		assert.Equal(t, total-int64(p.Limit)*int64(p.TotalPages-1), lastPage, "total=%d", total)
	}
}

func TestParsePaginationParams(t *testing.T) {
	page, limit, err := ParsePaginationParams(contextWithQuery(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultLimit, limit)

	page, limit, err = ParsePaginationParams(contextWithQuery("page=4&limit=25"))
	require.NoError(t, err)
	assert.Equal(t, 4, page)
	assert.Equal(t, 25, limit)

	_, limit, err = ParsePaginationParams(contextWithQuery("limit=1000"))
	require.NoError(t, err)
	assert.Equal(t, MaxLimit, limit)
}

func TestParsePaginationParams_Rejects(t *testing.T) {
	for _, q := range []string{"page=abc", "page=0", "limit=-5", "limit=1.5"} {
		_, _, err := ParsePaginationParams(contextWithQuery(q))
		require.Error(t, err, q)
		assert.True(t, errors.Is(err, apperrors.ErrValidationFailed), q)
	}
}

func TestParsePaginationParams_PageOutOfRange(t *testing.T) {
	huge := strconv.Itoa(math.MaxInt/5) + "&limit=10"
	_, _, err := ParsePaginationParams(contextWithQuery("page=" + huge))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
	assert.Equal(t, "page is out of range", err.Error())

	// largest page whose offset still fits a bigint
	page, limit, err := ParsePaginationParams(contextWithQuery("page=" + strconv.Itoa(math.MaxInt/10+1) + "&limit=10"))
	require.NoError(t, err)
	offset, _ := CalculateOffsetLimit(page, limit)
	assert.LessOrEqual(t, offset, uint64(math.MaxInt64))
}
