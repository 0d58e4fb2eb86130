package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/lzamboni86/godrive-mobile-api/internal/models"
)

type instructorUpstream interface {
	ApprovedInstructors(ctx context.Context, token string, filter models.InstructorFilter) ([]models.Instructor, error)
	Instructor(ctx context.Context, token, id string) (*models.Instructor, error)
}

// InstructorService serves the instructor marketplace listings.
type InstructorService struct {
	api    instructorUpstream
	logger *zap.Logger
}

// NewInstructorService constructs an InstructorService.
func NewInstructorService(api instructorUpstream, logger *zap.Logger) *InstructorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstructorService{api: api, logger: logger}
}

// List returns approved instructors matching the filter.
func (s *InstructorService) List(ctx context.Context, token string, filter models.InstructorFilter) ([]models.Instructor, error) {
	return s.api.ApprovedInstructors(ctx, token, filter)
}

// Get returns one instructor.
func (s *InstructorService) Get(ctx context.Context, token, id string) (*models.Instructor, error) {
	return s.api.Instructor(ctx, token, id)
}
