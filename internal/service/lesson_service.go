package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/lzamboni86/godrive-mobile-api/internal/dto"
	"github.com/lzamboni86/godrive-mobile-api/internal/models"
	"github.com/lzamboni86/godrive-mobile-api/internal/upstream"
	appErrors "github.com/lzamboni86/godrive-mobile-api/pkg/errors"
)

type lessonUpstream interface {
	PastLessons(ctx context.Context, token string) ([]models.Lesson, error)
	UpcomingLessons(ctx context.Context, token string) ([]models.Lesson, error)
	Adjust(ctx context.Context, token string, req upstream.AdjustRequest) (*models.Lesson, error)
}

// LessonService serves the student's agenda and the adjustment flow.
type LessonService struct {
	api       lessonUpstream
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewLessonService constructs a LessonService.
func NewLessonService(api lessonUpstream, validate *validator.Validate, logger *zap.Logger) *LessonService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LessonService{api: api, validator: validate, logger: logger, now: time.Now}
}

// Past returns the student's lesson history.
func (s *LessonService) Past(ctx context.Context, token string) ([]dto.LessonView, error) {
	lessons, err := s.api.PastLessons(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.annotate(lessons), nil
}

// Upcoming returns the student's upcoming lessons annotated with
// whether each may still be rescheduled.
func (s *LessonService) Upcoming(ctx context.Context, token string) ([]dto.LessonView, error) {
	lessons, err := s.api.UpcomingLessons(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.annotate(lessons), nil
}

func (s *LessonService) annotate(lessons []models.Lesson) []dto.LessonView {
	now := s.now()
	views := make([]dto.LessonView, 0, len(lessons))
	for _, lesson := range lessons {
		views = append(views, dto.LessonView{
			Lesson:       lesson,
			CanAdjust:    lesson.CanAdjust(now),
			InsideCutoff: lesson.WithinCutoff(now),
		})
	}
	return views
}

// Adjust proposes a new slot for a lesson. Only confirmed lessons more
// than the cutoff away qualify; the gate is enforced here as well as
// upstream so the app gets a precise error instead of a generic
// rejection.
func (s *LessonService) Adjust(ctx context.Context, token, lessonID string, req dto.AdjustLessonRequest) (*models.Lesson, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid adjustment payload")
	}
	date, err := models.NormalizeISODate(req.NewDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	if !models.ValidTimeSlot(req.NewTime) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "newTime is not a bookable time")
	}
	if models.IsPastDate(date, s.now()) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "newDate is in the past")
	}

	upcoming, err := s.api.UpcomingLessons(ctx, token)
	if err != nil {
		return nil, err
	}
	var target *models.Lesson
	for i := range upcoming {
		if upcoming[i].ID == lessonID {
			target = &upcoming[i]
			break
		}
	}
	if target == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "lesson not found")
	}
	if !target.CanAdjust(s.now()) {
		return nil, appErrors.ErrNotAdjustable
	}

	adjusted, err := s.api.Adjust(ctx, token, upstream.AdjustRequest{
		LessonID: lessonID,
		NewDate:  date,
		NewTime:  req.NewTime,
		Reason:   req.Reason,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Sugar().Infow("adjustment proposed",
		"lesson_id", lessonID, "new_date", date, "new_time", req.NewTime)
	return adjusted, nil
}
