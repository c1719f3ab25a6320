package services

import (
	"context"
	"fmt"

	"github.com/yigit/coursequest/internal/app/models/dto"
	"github.com/yigit/coursequest/internal/app/repositories"
	"github.com/yigit/coursequest/internal/pkg/apperrors"
	"github.com/yigit/coursequest/internal/pkg/logger"
	"github.com/yigit/coursequest/internal/pkg/nlfilter"
)

// NoMatchMessage is returned by Ask when nothing matched.
const NoMatchMessage = "No matching courses found"

// AskService answers free-text course questions
type AskService interface {
	Ask(ctx context.Context, question string) (*dto.AskResponse, error)
}

type askServiceImpl struct {
	store     CourseStore
	extractor nlfilter.Extractor
}

// NewAskService creates a new ask service instance
func NewAskService(store CourseStore, extractor nlfilter.Extractor) AskService {
	return &askServiceImpl{store: store, extractor: extractor}
}

// Ask extracts filters from the question and returns the best rated matches.
// A zero fee or rating is echoed in the parsed filters but does not constrain the query.
// A blank question matches no rule and returns the overall top rated courses.
func (s *askServiceImpl) Ask(ctx context.Context, question string) (*dto.AskResponse, error) {
	if question == "" {
		return nil, apperrors.NewValidationError("question", "question required")
	}

	filters, err := s.extractor.Extract(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("extract filters: %w", err)
	}
	logger.Debug().Str("question", question).Interface("filters", filters).Msg("Parsed question")

	courses, err := s.store.FindTopRated(ctx, toCourseFilter(filters))
	if err != nil {
		return nil, fmt.Errorf("ask courses: %w", err)
	}

	resp := &dto.AskResponse{
		ParsedFilters: filters,
		Courses:       courses,
		Count:         len(courses),
	}
	if len(courses) == 0 {
		msg := NoMatchMessage
		resp.Message = &msg
	}
	return resp, nil
}

func toCourseFilter(f nlfilter.Filters) repositories.CourseFilter {
	filter := repositories.CourseFilter{
		Department:   f.Department,
		Level:        f.Level,
		DeliveryMode: f.DeliveryMode,
	}
	if f.MaxFee != nil && *f.MaxFee != 0 {
		filter.MaxFee = f.MaxFee
	}
	if f.MinRating != nil && *f.MinRating != 0 {
		filter.MinRating = f.MinRating
	}
	return filter
}
