package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/coursequest/internal/app/models"
)

const selectCourses = "SELECT id, course_id, course_name, department, level, delivery_mode, " +
	"credits, duration_weeks, rating, tuition_fee_inr, year_offered FROM courses"

func strPtr(s string) *string { return &s }
func intPtr(i int) *int { return &i }
func floatPtr(f float64) *float64 { return &f }

func TestBuildSearchQuery_NoFilters(t *testing.T) {
	sql, args, err := buildSearchQuery(CourseFilter{}, 0, 10).ToSql()
	require.NoError(t, err)

	assert.Equal(t, selectCourses+" ORDER BY course_name ASC LIMIT 10 OFFSET 0", sql)
	assert.Empty(t, args)
}

func TestBuildSearchQuery_AllFilters(t *testing.T) {
	filter := CourseFilter{
		Department:   strPtr("cs"),
		Level:        strPtr("pg"),
		DeliveryMode: strPtr("ONLINE"),
		MinRating:    floatPtr(4),
		MaxFee:       intPtr(50000),
		Search:       strPtr(" data "),
	}

	sql, args, err := buildSearchQuery(filter, 20, 10).ToSql()
	require.NoError(t, err)

	assert.Equal(t, selectCourses+
		" WHERE (department = $1 AND level = $2 AND delivery_mode = $3 AND rating >= $4"+
		" AND tuition_fee_inr <= $5 AND course_name ILIKE $6)"+
		" ORDER BY course_name ASC LIMIT 10 OFFSET 20", sql)
	assert.Equal(t, []interface{}{"CS", "PG", "online", 4.0, 50000, "%data%"}, args)
}

func TestBuildSearchQuery_BlankStringsIgnored(t *testing.T) {
	filter := CourseFilter{Department: strPtr(""), Search: strPtr("   ")}

	sql, args, err := buildSearchQuery(filter, 0, 10).ToSql()
	require.NoError(t, err)

	assert.NotContains(t, sql, "WHERE")
	assert.Empty(t, args)
}

func TestBuildSearchQuery_SearchIsLiteral(t *testing.T) {
	filter := CourseFilter{Search: strPtr("100%_off")}

	_, args, err := buildSearchQuery(filter, 0, 10).ToSql()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{`%100\%\_off%`}, args)
}

func TestBuildCountQuery_SharesPredicate(t *testing.T) {
	filter := CourseFilter{Level: strPtr("UG"), MaxFee: intPtr(30000)}

	countSQL, countArgs, err := buildCountQuery(filter).ToSql()
	require.NoError(t, err)
	_, searchArgs, err := buildSearchQuery(filter, 0, 10).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT COUNT(*) FROM courses WHERE (level = $1 AND tuition_fee_inr <= $2)", countSQL)
	assert.Equal(t, searchArgs, countArgs)
}

func TestBuildTopRatedQuery(t *testing.T) {
	filter := CourseFilter{DeliveryMode: strPtr("online")}

	sql, args, err := buildTopRatedQuery(filter).ToSql()
	require.NoError(t, err)

	assert.Equal(t, selectCourses+
		" WHERE (delivery_mode = $1) ORDER BY rating DESC NULLS LAST, course_name ASC LIMIT 20", sql)
	assert.Equal(t, []interface{}{"online"}, args)
}

func TestBuildByIDsQuery(t *testing.T) {
	ids := []int64{3, 7}

	sql, args, err := buildByIDsQuery(ids).ToSql()
	require.NoError(t, err)

	assert.Equal(t, selectCourses+" WHERE id = ANY($1)", sql)
	assert.Equal(t, []interface{}{ids}, args)
}

func TestBuildUpsertQuery(t *testing.T) {
	course := &models.Course{
		CourseID: "CS101", CourseName: "Intro", Department: "CS", Level: "UG",
		DeliveryMode: "online", Credits: 4, DurationWeeks: 12, Rating: floatPtr(4.5),
		TuitionFeeINR: 25000, YearOffered: 2024,
	}

	sql, args, err := buildUpsertQuery(course).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO courses (course_id,course_name,department,level,delivery_mode,"+
		"credits,duration_weeks,rating,tuition_fee_inr,year_offered) "+
		"VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10) "+
		"ON CONFLICT (course_id) DO UPDATE SET course_name = EXCLUDED.course_name, rating = EXCLUDED.rating", sql)
	require.Len(t, args, 10)
	assert.Equal(t, "CS101", args[0])
	assert.Equal(t, course.Rating, args[7])
}
