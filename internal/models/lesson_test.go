package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLessonStartTimeOverlaysUTCComponents(t *testing.T) {
	// The date arrives at midnight in one zone, the time in another.
	// StartTime must read both through UTC so neither is shifted.
	saoPaulo := time.FixedZone("America/Sao_Paulo", -3*60*60)
	lesson := Lesson{
		Date: time.Date(2026, time.September, 20, 21, 0, 0, 0, saoPaulo), // 2026-09-21 00:00 UTC
		Time: time.Date(1970, time.January, 1, 11, 0, 0, 0, saoPaulo),    // 14:00 UTC
	}

	start := lesson.StartTime()
	assert.Equal(t, time.Date(2026, time.September, 21, 14, 0, 0, 0, time.UTC), start)
}

func TestLessonCanAdjust(t *testing.T) {
	now := time.Date(2026, time.September, 15, 12, 0, 0, 0, time.UTC)

	at := func(offset time.Duration, status LessonStatus) Lesson {
		start := now.Add(offset)
		return Lesson{
			Status: status,
			Date:   time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
			Time:   time.Date(1970, time.January, 1, start.Hour(), start.Minute(), 0, 0, time.UTC),
		}
	}

	assert.True(t, at(25*time.Hour, LessonConfirmed).CanAdjust(now))
	assert.False(t, at(23*time.Hour, LessonConfirmed).CanAdjust(now), "inside the 24h cutoff")
	assert.False(t, at(24*time.Hour, LessonConfirmed).CanAdjust(now), "exactly at the cutoff does not qualify")
	assert.False(t, at(48*time.Hour, LessonPendingPayment).CanAdjust(now), "only confirmed lessons adjust")
	assert.False(t, at(48*time.Hour, LessonAdjustmentPending).CanAdjust(now))

	assert.True(t, at(23*time.Hour, LessonConfirmed).WithinCutoff(now))
	assert.False(t, at(25*time.Hour, LessonConfirmed).WithinCutoff(now))
	assert.False(t, at(23*time.Hour, LessonCompleted).WithinCutoff(now))
}

func TestBookingDraftSlotsOrdered(t *testing.T) {
	draft := BookingDraft{
		SelectedDates: []string{"2026-09-20", "2026-09-18"},
		SelectedTimes: map[string][]string{
			"2026-09-20": {"15:00", "08:00"},
			"2026-09-18": {"10:00"},
		},
	}

	slots := draft.Slots()
	assert.Equal(t, []LessonSlot{
		{Date: "2026-09-18", Time: "10:00"},
		{Date: "2026-09-20", Time: "08:00"},
		{Date: "2026-09-20", Time: "15:00"},
	}, slots)

	assert.Equal(t, 3, draft.TotalSelectedTimes())
	assert.Equal(t, 0, draft.TimeShortfall())
}

func TestBookingDraftShortfall(t *testing.T) {
	draft := BookingDraft{
		SelectedDates: []string{"2026-09-18", "2026-09-19", "2026-09-20"},
		SelectedTimes: map[string][]string{
			"2026-09-18": {"08:00", "09:00"},
		},
	}
	assert.Equal(t, 1, draft.TimeShortfall())

	draft.SelectedTimes["2026-09-19"] = []string{"10:00", "11:00"}
	assert.Equal(t, 0, draft.TimeShortfall(), "extra slots on one date cover the count")
}
