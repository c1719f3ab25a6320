package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/coursequest/internal/app/models/dto"
	"github.com/yigit/coursequest/internal/app/repositories"
	"github.com/yigit/coursequest/internal/pkg/apperrors"
	"github.com/yigit/coursequest/internal/pkg/helpers"
)

// Compare accepts between MinCompare and MaxCompare distinct ids.
const (
	MinCompare = 2
	MaxCompare = 4
)

// CourseService defines the interface for course listing operations
type CourseService interface {
	Search(ctx context.Context, req dto.CourseSearchRequest) (*dto.CourseListResponse, error)
	Compare(ctx context.Context, ids []int64) (*dto.CompareResponse, error)
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	store CourseStore
}

// NewCourseService creates a new course service instance
func NewCourseService(store CourseStore) CourseService {
	return &courseServiceImpl{store: store}
}

// Search returns one page of matching courses and pagination over the full match count.
func (s *courseServiceImpl) Search(ctx context.Context, req dto.CourseSearchRequest) (*dto.CourseListResponse, error) {
	filter := repositories.CourseFilter{
		Department:   req.Department,
		Level:        req.Level,
		DeliveryMode: req.DeliveryMode,
		MinRating:    req.MinRating,
		MaxFee:       req.MaxFee,
		Search:       req.Search,
	}
	offset, limit := helpers.CalculateOffsetLimit(req.Page, req.Limit)

	courses, err := s.store.Search(ctx, filter, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("search courses: %w", err)
	}
	total, err := s.store.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count courses: %w", err)
	}

	return &dto.CourseListResponse{
		Courses:    courses,
		Pagination: helpers.NewPagination(total, req.Page, int(limit)),
	}, nil
}

// Compare fetches the given courses side by side. Repeated ids count once;
// ids with no course are left out of the result.
func (s *courseServiceImpl) Compare(ctx context.Context, ids []int64) (*dto.CompareResponse, error) {
	unique := dedupIDs(ids)
	if len(unique) < MinCompare || len(unique) > MaxCompare {
		return nil, apperrors.NewCustomError(
			errors.Join(apperrors.ErrBadRequest, apperrors.ErrCompareRange), "Compare 2-4 courses")
	}

	courses, err := s.store.FindByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("compare courses: %w", err)
	}
	return &dto.CompareResponse{Courses: courses}, nil
}

func dedupIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
