package services

import (
	"context"
	"fmt"
)

// SystemService covers schema setup and health
type SystemService interface {
	Setup(ctx context.Context) error
	Health(ctx context.Context) error
}

type systemServiceImpl struct {
	schema SchemaManager
	pinger Pinger
}

// NewSystemService creates a new system service instance
func NewSystemService(schema SchemaManager, pinger Pinger) SystemService {
	return &systemServiceImpl{schema: schema, pinger: pinger}
}

// Setup drops and recreates the courses table. Existing rows are lost.
func (s *systemServiceImpl) Setup(ctx context.Context) error {
	if err := s.schema.Reset(ctx); err != nil {
		return fmt.Errorf("setup database: %w", err)
	}
	return nil
}

// Health reports whether the database answers.
func (s *systemServiceImpl) Health(ctx context.Context) error {
	if err := s.pinger.Ping(ctx); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	return nil
}
