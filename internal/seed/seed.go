package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"

	"github.com/rs/zerolog"
	appRepos "github.com/yigit/coursequest/internal/app/repositories"
	appServices "github.com/yigit/coursequest/internal/app/services"
)

//go:embed sample_courses.csv
var sampleCourses []byte

// Counter reports how many courses match a filter.
type Counter interface {
	Count(ctx context.Context, filter appRepos.CourseFilter) (int64, error)
}

// SampleCourses loads the bundled sample catalogue through the regular ingest
// path, but only into an empty courses table.
func SampleCourses(ctx context.Context, counter Counter, ingest appServices.IngestService, lgr zerolog.Logger) error {
	total, err := counter.Count(ctx, appRepos.CourseFilter{})
	if err != nil {
		return fmt.Errorf("count existing courses: %w", err)
	}
	if total > 0 {
		lgr.Info().Int64("courses", total).Msg("Courses already present, skipping sample data")
		return nil
	}

	result, err := ingest.Ingest(ctx, "sample_courses.csv", bytes.NewReader(sampleCourses))
	if err != nil {
		return fmt.Errorf("ingest sample courses: %w", err)
	}
	lgr.Info().Int("ingested", result.Ingested).Int("skipped", result.Skipped).Msg("Sample courses loaded")
	return nil
}
