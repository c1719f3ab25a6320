package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/yigit/coursequest/internal/app/models"
	"github.com/yigit/coursequest/internal/app/models/dto"
	"github.com/yigit/coursequest/internal/pkg/apperrors"
	"github.com/yigit/coursequest/internal/pkg/dberrors"
	"github.com/yigit/coursequest/internal/pkg/logger"
	"github.com/yigit/coursequest/internal/pkg/tabular"
	"github.com/yigit/coursequest/internal/pkg/validation"
)

// RequiredColumns must be present in the header of an upload. rating is optional.
var RequiredColumns = []string{
	"course_id", "course_name", "department", "level", "delivery_mode",
	"credits", "duration_weeks", "tuition_fee_inr", "year_offered",
}

// IngestService loads uploaded course files
type IngestService interface {
	Ingest(ctx context.Context, filename string, r io.Reader) (*dto.IngestResult, error)
}

type ingestServiceImpl struct {
	store CourseStore
}

// NewIngestService creates a new ingest service instance
func NewIngestService(store CourseStore) IngestService {
	return &ingestServiceImpl{store: store}
}

// Ingest parses the file and upserts its records one at a time in file order.
// A record that fails to parse, validate or store is logged and skipped.
// The whole upload fails only when the file itself is unreadable, lacks
// required columns, or the courses table does not exist.
func (s *ingestServiceImpl) Ingest(ctx context.Context, filename string, r io.Reader) (*dto.IngestResult, error) {
	table, err := tabular.Read(filename, r)
	if err != nil {
		return nil, readError(err)
	}
	if missing := table.MissingColumns(RequiredColumns...); len(missing) > 0 {
		return nil, apperrors.NewCustomError(
			errors.Join(apperrors.ErrBadRequest, apperrors.ErrMissingColumns),
			"missing required columns: "+strings.Join(missing, ", "),
		).WithDetails(map[string]interface{}{"columns": missing})
	}

	result := &dto.IngestResult{Total: len(table.Records)}
	for _, rec := range table.Records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		course, err := parseRecord(rec)
		if err == nil {
			err = validation.Struct(course)
		}
		if err != nil {
			logger.Warn().Int("line", rec.Line).Err(err).Msg("Skipping invalid course record")
			result.Skipped++
			continue
		}

		if err := s.store.Upsert(ctx, course); err != nil {
			if errors.Is(err, apperrors.ErrCoursesTableAbsent) {
				return nil, err
			}
			logger.Warn().
				Int("line", rec.Line).
				Str("course_id", course.CourseID).
				Bool("data_error", dberrors.IsDataError(err)).
				Str("reason", dberrors.Describe(err)).
				Msg("Skipping course record rejected by database")
			result.Skipped++
			continue
		}
		result.Ingested++
	}

	logger.Info().
		Str("file", filename).
		Int("total", result.Total).
		Int("ingested", result.Ingested).
		Int("skipped", result.Skipped).
		Msg("Ingest finished")
	return result, nil
}

func readError(err error) error {
	switch {
	case errors.Is(err, tabular.ErrUnsupportedFormat):
		return apperrors.NewCustomError(errors.Join(apperrors.ErrBadRequest, apperrors.ErrUnsupportedFile), err.Error())
	case errors.Is(err, tabular.ErrEmpty):
		return apperrors.NewBadRequestError(err.Error())
	default:
		return apperrors.NewBadRequestError("failed to read upload: " + err.Error())
	}
}

// parseRecord builds a course from one record, normalizing coded fields.
// An empty rating is stored as NULL.
func parseRecord(rec tabular.Record) (*models.Course, error) {
	if rec.Err != nil {
		return nil, rec.Err
	}

	course := &models.Course{
		CourseID:     rec.Get("course_id"),
		CourseName:   rec.Get("course_name"),
		Department:   rec.Get("department"),
		Level:        rec.Get("level"),
		DeliveryMode: rec.Get("delivery_mode"),
	}
	course.Normalize()

	ints := []struct {
		column string
		dst    *int
	}{
		{"credits", &course.Credits},
		{"duration_weeks", &course.DurationWeeks},
		{"tuition_fee_inr", &course.TuitionFeeINR},
		{"year_offered", &course.YearOffered},
	}
	for _, f := range ints {
		v, err := parseInt(rec.Get(f.column))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.column, err)
		}
		*f.dst = v
	}

	if raw := rec.Get("rating"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(rating) || math.IsInf(rating, 0) {
			return nil, fmt.Errorf("rating: invalid number %q", raw)
		}
		course.Rating = &rating
	}
	return course, nil
}

func parseInt(raw string) (int, error) {
	if raw == "" {
		return 0, errors.New("value is required")
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", raw)
	}
	return v, nil
}
