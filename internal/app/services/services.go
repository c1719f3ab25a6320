package services

import (
	"context"

	"github.com/yigit/coursequest/internal/app/models"
	"github.com/yigit/coursequest/internal/app/repositories"
	"github.com/yigit/coursequest/internal/pkg/nlfilter"
)

// CourseStore is the persistence surface the course services depend on.
// *repositories.CourseRepository implements it.
type CourseStore interface {
	Search(ctx context.Context, filter repositories.CourseFilter, offset, limit uint64) ([]*models.Course, error)
	Count(ctx context.Context, filter repositories.CourseFilter) (int64, error)
	FindTopRated(ctx context.Context, filter repositories.CourseFilter) ([]*models.Course, error)
	FindByIDs(ctx context.Context, ids []int64) ([]*models.Course, error)
	Upsert(ctx context.Context, course *models.Course) error
}

// SchemaManager recreates the courses schema.
type SchemaManager interface {
	Reset(ctx context.Context) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services holds all service instances
type Services struct {
	CourseService CourseService
	AskService    AskService
	IngestService IngestService
	SystemService SystemService
}

// NewServices wires the services over the repositories
func NewServices(repos *repositories.Repositories, schema SchemaManager, pinger Pinger, extractor nlfilter.Extractor) *Services {
	return &Services{
		CourseService: NewCourseService(repos.CourseRepository),
		AskService:    NewAskService(repos.CourseRepository, extractor),
		IngestService: NewIngestService(repos.CourseRepository),
		SystemService: NewSystemService(schema, pinger),
	}
}
