package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lzamboni86/godrive-mobile-api/internal/dto"
	"github.com/lzamboni86/godrive-mobile-api/internal/models"
	"github.com/lzamboni86/godrive-mobile-api/internal/upstream"
	appErrors "github.com/lzamboni86/godrive-mobile-api/pkg/errors"
)

type fakeLessonUpstream struct {
	past       []models.Lesson
	upcoming   []models.Lesson
	listErr    error
	adjusted   *models.Lesson
	adjustErr  error
	lastAdjust *upstream.AdjustRequest
}

func (f *fakeLessonUpstream) PastLessons(context.Context, string) ([]models.Lesson, error) {
	return f.past, f.listErr
}

func (f *fakeLessonUpstream) UpcomingLessons(context.Context, string) ([]models.Lesson, error) {
	return f.upcoming, f.listErr
}

func (f *fakeLessonUpstream) Adjust(_ context.Context, _ string, req upstream.AdjustRequest) (*models.Lesson, error) {
	f.lastAdjust = &req
	return f.adjusted, f.adjustErr
}

var lessonTestNow = time.Date(2026, time.September, 15, 12, 0, 0, 0, time.UTC)

func lessonStartingIn(id string, offset time.Duration, status models.LessonStatus) models.Lesson {
	start := lessonTestNow.Add(offset)
	return models.Lesson{
		ID:     id,
		Status: status,
		Date:   time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		Time:   time.Date(1970, time.January, 1, start.Hour(), start.Minute(), 0, 0, time.UTC),
	}
}

func newTestLessons(api *fakeLessonUpstream) *LessonService {
	svc := NewLessonService(api, nil, zap.NewNop())
	svc.now = func() time.Time { return lessonTestNow }
	return svc
}

func TestUpcomingAnnotatesAdjustability(t *testing.T) {
	api := &fakeLessonUpstream{
		upcoming: []models.Lesson{
			lessonStartingIn("far", 48*time.Hour, models.LessonConfirmed),
			lessonStartingIn("near", 12*time.Hour, models.LessonConfirmed),
			lessonStartingIn("unpaid", 48*time.Hour, models.LessonPendingPayment),
		},
	}
	svc := newTestLessons(api)

	views, err := svc.Upcoming(context.Background(), "token")
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.True(t, views[0].CanAdjust)
	assert.False(t, views[0].InsideCutoff)

	assert.False(t, views[1].CanAdjust)
	assert.True(t, views[1].InsideCutoff)

	assert.False(t, views[2].CanAdjust)
	assert.False(t, views[2].InsideCutoff)
}

func TestAdjustHappyPath(t *testing.T) {
	target := lessonStartingIn("l1", 48*time.Hour, models.LessonConfirmed)
	adjusted := target
	adjusted.Status = models.LessonAdjustmentPending
	api := &fakeLessonUpstream{
		upcoming: []models.Lesson{target},
		adjusted: &adjusted,
	}
	svc := newTestLessons(api)

	lesson, err := svc.Adjust(context.Background(), "token", "l1", dto.AdjustLessonRequest{
		NewDate: "2026-9-25",
		NewTime: "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, models.LessonAdjustmentPending, lesson.Status)

	require.NotNil(t, api.lastAdjust)
	assert.Equal(t, "2026-09-25", api.lastAdjust.NewDate, "date is normalized before sending")
	assert.Equal(t, "l1", api.lastAdjust.LessonID)
}

func TestAdjustInsideCutoffRejected(t *testing.T) {
	api := &fakeLessonUpstream{
		upcoming: []models.Lesson{lessonStartingIn("l1", 12*time.Hour, models.LessonConfirmed)},
	}
	svc := newTestLessons(api)

	_, err := svc.Adjust(context.Background(), "token", "l1", dto.AdjustLessonRequest{
		NewDate: "2026-09-25",
		NewTime: "10:00",
	})
	assert.ErrorIs(t, err, appErrors.ErrNotAdjustable)
	assert.Nil(t, api.lastAdjust, "the upstream is never called")
}

func TestAdjustUnknownLesson(t *testing.T) {
	svc := newTestLessons(&fakeLessonUpstream{})

	_, err := svc.Adjust(context.Background(), "token", "ghost", dto.AdjustLessonRequest{
		NewDate: "2026-09-25",
		NewTime: "10:00",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAdjustValidatesSlot(t *testing.T) {
	api := &fakeLessonUpstream{
		upcoming: []models.Lesson{lessonStartingIn("l1", 48*time.Hour, models.LessonConfirmed)},
	}
	svc := newTestLessons(api)

	_, err := svc.Adjust(context.Background(), "token", "l1", dto.AdjustLessonRequest{NewDate: "2026-09-25", NewTime: "12:00"})
	assert.Error(t, err, "lunch slot is not bookable")

	_, err = svc.Adjust(context.Background(), "token", "l1", dto.AdjustLessonRequest{NewDate: "2026-09-10", NewTime: "10:00"})
	assert.Error(t, err, "past dates rejected")
}
