package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/coursequest/internal/app/models"
	"github.com/yigit/coursequest/internal/pkg/apperrors"
	"github.com/yigit/coursequest/internal/pkg/dberrors"
	"github.com/yigit/coursequest/internal/pkg/logger"
)

// Querier is the part of pgx shared by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CourseRepository handles course database operations
type CourseRepository struct {
	db Querier
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db Querier) *CourseRepository {
	return &CourseRepository{db: db}
}

// storageError tags database failures for the API layer. A missing courses
// table gets a message pointing at the setup endpoint.
func storageError(op string, err error) error {
	if dberrors.IsUndefinedTable(err) {
		return apperrors.NewCustomError(
			errors.Join(apperrors.ErrStorage, apperrors.ErrCoursesTableAbsent, err),
			apperrors.ErrCoursesTableAbsent.Error(),
		)
	}
	return apperrors.NewStorageError(err, fmt.Sprintf("failed to %s: %v", op, err))
}

// Search returns one page of courses matching the filter, ordered by name.
func (r *CourseRepository) Search(ctx context.Context, filter CourseFilter, offset, limit uint64) ([]*models.Course, error) {
	return r.list(ctx, "search courses", buildSearchQuery(filter, offset, limit))
}

// Count returns the number of courses matching the filter.
func (r *CourseRepository) Count(ctx context.Context, filter CourseFilter) (int64, error) {
	sql, args, err := buildCountQuery(filter).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count courses SQL")
		return 0, fmt.Errorf("failed to build count courses query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing count courses query")
		return 0, storageError("count courses", err)
	}
	return total, nil
}

// FindTopRated returns at most AskResultLimit matching courses, best rated first.
func (r *CourseRepository) FindTopRated(ctx context.Context, filter CourseFilter) ([]*models.Course, error) {
	return r.list(ctx, "find courses", buildTopRatedQuery(filter))
}

// FindByIDs returns the courses whose surrogate id is in ids. Unknown ids are ignored.
func (r *CourseRepository) FindByIDs(ctx context.Context, ids []int64) ([]*models.Course, error) {
	if len(ids) == 0 {
		return []*models.Course{}, nil
	}
	return r.list(ctx, "compare courses", buildByIDsQuery(ids))
}

// Upsert inserts a course keyed on course_id. An existing row only has its
// name and rating replaced.
func (r *CourseRepository) Upsert(ctx context.Context, course *models.Course) error {
	sql, args, err := buildUpsertQuery(course).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building upsert course SQL")
		return fmt.Errorf("failed to build upsert course query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return storageError("upsert course "+course.CourseID, err)
	}
	return nil
}

func (r *CourseRepository) list(ctx context.Context, op string, query squirrel.SelectBuilder) ([]*models.Course, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error building course list SQL")
		return nil, fmt.Errorf("failed to build %s query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error executing course list query")
		return nil, storageError(op, err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			logger.Error().Err(err).Str("op", op).Msg("Error scanning course row")
			return nil, storageError(op, err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error iterating course rows")
		return nil, storageError(op, err)
	}
	return courses, nil
}

// scanCourse reads one row selected with courseColumns.
func scanCourse(row pgx.Row) (*models.Course, error) {
	c := &models.Course{}
	err := row.Scan(
		&c.ID, &c.CourseID, &c.CourseName, &c.Department, &c.Level, &c.DeliveryMode,
		&c.Credits, &c.DurationWeeks, &c.Rating, &c.TuitionFeeINR, &c.YearOffered,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}
