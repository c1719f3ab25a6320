package models

import "strings"

// Department codes accepted for courses. Stored uppercase.
const (
	DepartmentCS   = "CS"
	DepartmentEE   = "EE"
	DepartmentME   = "ME"
	DepartmentCE   = "CE"
	DepartmentCHEM = "CHEM"
	DepartmentMATH = "MATH"
	DepartmentPHYS = "PHYS"
)

// Course levels. Stored uppercase.
const (
	LevelUG = "UG"
	LevelPG = "PG"
)

// Delivery modes. Stored lowercase.
const (
	DeliveryOnline  = "online"
	DeliveryOffline = "offline"
	DeliveryHybrid  = "hybrid"
)

// Course is one row of the courses table. Rating is nil for unrated courses.
type Course struct {
	ID            int64    `json:"id" db:"id"`
	CourseID      string   `json:"course_id" db:"course_id" validate:"required,max=50"`
	CourseName    string   `json:"course_name" db:"course_name" validate:"required,max=200"`
	Department    string   `json:"department" db:"department" validate:"required,oneof=CS EE ME CE CHEM MATH PHYS"`
	Level         string   `json:"level" db:"level" validate:"required,oneof=UG PG"`
	DeliveryMode  string   `json:"delivery_mode" db:"delivery_mode" validate:"required,oneof=online offline hybrid"`
	Credits       int      `json:"credits" db:"credits" validate:"gt=0"`
	DurationWeeks int      `json:"duration_weeks" db:"duration_weeks" validate:"gt=0"`
	Rating        *float64 `json:"rating" db:"rating"`
	TuitionFeeINR int      `json:"tuition_fee_inr" db:"tuition_fee_inr" validate:"gte=0"`
	YearOffered   int      `json:"year_offered" db:"year_offered" validate:"gt=0"`
}

// Normalize brings the coded fields to their storage case.
func (c *Course) Normalize() {
	c.CourseID = strings.TrimSpace(c.CourseID)
	c.CourseName = strings.TrimSpace(c.CourseName)
	c.Department = NormalizeDepartment(c.Department)
	c.Level = NormalizeLevel(c.Level)
	c.DeliveryMode = NormalizeDeliveryMode(c.DeliveryMode)
}

// NormalizeDepartment returns the department code in storage case
func NormalizeDepartment(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeLevel returns the level in storage case
func NormalizeLevel(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeDeliveryMode returns the delivery mode in storage case
func NormalizeDeliveryMode(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
