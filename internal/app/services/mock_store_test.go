package services

import (
	"context"
	"errors"

	"github.com/yigit/coursequest/internal/app/models"
	"github.com/yigit/coursequest/internal/app/repositories"
)

// mockStore is an in-memory CourseStore that records the calls it receives.
type mockStore struct {
	courses   []*models.Course
	total     int64
	err       error
	upsertErr func(c *models.Course) error

	lastFilter repositories.CourseFilter
	lastOffset uint64
	lastLimit  uint64
	lastIDs    []int64
	upserted   []*models.Course
}

func (m *mockStore) Search(_ context.Context, f repositories.CourseFilter, offset, limit uint64) ([]*models.Course, error) {
	m.lastFilter, m.lastOffset, m.lastLimit = f, offset, limit
	return m.courses, m.err
}

func (m *mockStore) Count(_ context.Context, f repositories.CourseFilter) (int64, error) {
	m.lastFilter = f
	return m.total, m.err
}

func (m *mockStore) FindTopRated(_ context.Context, f repositories.CourseFilter) ([]*models.Course, error) {
	m.lastFilter = f
	return m.courses, m.err
}

func (m *mockStore) FindByIDs(_ context.Context, ids []int64) ([]*models.Course, error) {
	m.lastIDs = ids
	return m.courses, m.err
}

func (m *mockStore) Upsert(_ context.Context, c *models.Course) error {
	if m.upsertErr != nil {
		if err := m.upsertErr(c); err != nil {
			return err
		}
	}
	m.upserted = append(m.upserted, c)
	return nil
}

type mockSchema struct {
	resets int
	err    error
}

func (m *mockSchema) Reset(context.Context) error {
	m.resets++
	return m.err
}

type mockPinger struct{ err error }

func (m mockPinger) Ping(context.Context) error { return m.err }

var errDown = errors.New("connection refused")
