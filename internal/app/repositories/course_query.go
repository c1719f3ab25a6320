package repositories

import (
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/coursequest/internal/app/models"
)

const coursesTable = "courses"

// AskResultLimit caps the free-text path, which is never paginated.
const AskResultLimit = 20

// courseColumns lists the selected columns in models.Course field order.
var courseColumns = []string{
	"id", "course_id", "course_name", "department", "level", "delivery_mode",
	"credits", "duration_weeks", "rating", "tuition_fee_inr", "year_offered",
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// CourseFilter is the conjunctive filter set shared by the search and ask paths.
// Nil (or blank) fields impose no constraint.
type CourseFilter struct {
	Department   *string
	Level        *string
	DeliveryMode *string
	MinRating    *float64
	MaxFee       *int
	Search       *string
}

// Predicate ANDs the supplied filters together. Coded values are brought to
// their storage case so matching is effectively case-insensitive. Every value
// is bound as a parameter.
func (f CourseFilter) Predicate() squirrel.And {
	pred := squirrel.And{}
	if v := stringValue(f.Department); v != "" {
		pred = append(pred, squirrel.Eq{"department": models.NormalizeDepartment(v)})
	}
	if v := stringValue(f.Level); v != "" {
		pred = append(pred, squirrel.Eq{"level": models.NormalizeLevel(v)})
	}
	if v := stringValue(f.DeliveryMode); v != "" {
		pred = append(pred, squirrel.Eq{"delivery_mode": models.NormalizeDeliveryMode(v)})
	}
	if f.MinRating != nil {
		pred = append(pred, squirrel.GtOrEq{"rating": *f.MinRating})
	}
	if f.MaxFee != nil {
		pred = append(pred, squirrel.LtOrEq{"tuition_fee_inr": *f.MaxFee})
	}
	if v := stringValue(f.Search); v != "" {
		pred = append(pred, squirrel.ILike{"course_name": "%" + escapeLike(v) + "%"})
	}
	return pred
}

// where applies the predicate only when it has terms, keeping unfiltered SQL free of "(1=1)".
func where(b squirrel.SelectBuilder, pred squirrel.And) squirrel.SelectBuilder {
	if len(pred) == 0 {
		return b
	}
	return b.Where(pred)
}

// buildSearchQuery is the paginated listing ordered by course name.
func buildSearchQuery(f CourseFilter, offset, limit uint64) squirrel.SelectBuilder {
	return where(psql.Select(courseColumns...).From(coursesTable), f.Predicate()).
		OrderBy("course_name ASC").
		Limit(limit).
		Offset(offset)
}

// buildCountQuery counts over exactly the predicate used by buildSearchQuery.
func buildCountQuery(f CourseFilter) squirrel.SelectBuilder {
	return where(psql.Select("COUNT(*)").From(coursesTable), f.Predicate())
}

// buildTopRatedQuery is the free-text path: best rated first, capped, unpaginated.
func buildTopRatedQuery(f CourseFilter) squirrel.SelectBuilder {
	return where(psql.Select(courseColumns...).From(coursesTable), f.Predicate()).
		OrderBy("rating DESC NULLS LAST", "course_name ASC").
		Limit(AskResultLimit)
}

// buildByIDsQuery fetches the given surrogate ids in storage order.
func buildByIDsQuery(ids []int64) squirrel.SelectBuilder {
	return psql.Select(courseColumns...).From(coursesTable).Where("id = ANY(?)", ids)
}

// buildUpsertQuery inserts a course or, when course_id already exists,
// refreshes only its name and rating.
func buildUpsertQuery(c *models.Course) squirrel.InsertBuilder {
	return psql.Insert(coursesTable).
		Columns(courseColumns[1:]...).
		Values(c.CourseID, c.CourseName, c.Department, c.Level, c.DeliveryMode,
			c.Credits, c.DurationWeeks, c.Rating, c.TuitionFeeINR, c.YearOffered).
		Suffix("ON CONFLICT (course_id) DO UPDATE SET course_name = EXCLUDED.course_name, rating = EXCLUDED.rating")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes % and _ in user input match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
