package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/coursequest/internal/app/models"
	appRepos "github.com/yigit/coursequest/internal/app/repositories"
	appServices "github.com/yigit/coursequest/internal/app/services"
)

type memStore struct {
	existing int64
	upserted []*models.Course
}

func (m *memStore) Count(context.Context, appRepos.CourseFilter) (int64, error) { return m.existing, nil }

func (m *memStore) Search(context.Context, appRepos.CourseFilter, uint64, uint64) ([]*models.Course, error) {
	return nil, nil
}

func (m *memStore) FindTopRated(context.Context, appRepos.CourseFilter) ([]*models.Course, error) {
	return nil, nil
}

func (m *memStore) FindByIDs(context.Context, []int64) ([]*models.Course, error) { return nil, nil }

func (m *memStore) Upsert(_ context.Context, c *models.Course) error {
	m.upserted = append(m.upserted, c)
	return nil
}

func TestSampleCourses_LoadsIntoEmptyTable(t *testing.T) {
	store := &memStore{}
	err := SampleCourses(context.Background(), store, appServices.NewIngestService(store), zerolog.Nop())
	require.NoError(t, err)

	assert.Len(t, store.upserted, 14, "every bundled record is valid")
	assert.Nil(t, store.upserted[8].Rating, "CE110 ships unrated")
}

func TestSampleCourses_SkipsPopulatedTable(t *testing.T) {
	store := &memStore{existing: 3}
	err := SampleCourses(context.Background(), store, appServices.NewIngestService(store), zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, store.upserted)
}
