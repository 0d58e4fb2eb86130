package models

import "time"

// LessonStatus enumerates the lifecycle states owned by the core API.
type LessonStatus string

const (
	LessonScheduled         LessonStatus = "SCHEDULED"
	LessonWaitingApproval   LessonStatus = "WAITING_APPROVAL"
	LessonPendingPayment    LessonStatus = "PENDING_PAYMENT"
	LessonConfirmed         LessonStatus = "CONFIRMED"
	LessonAdjustmentPending LessonStatus = "ADJUSTMENT_PENDING"
	LessonInProgress        LessonStatus = "IN_PROGRESS"
	LessonCompleted         LessonStatus = "COMPLETED"
	LessonEvaluated         LessonStatus = "EVALUATED"
	LessonCancelled         LessonStatus = "CANCELLED"
)

// Lesson as served by the core API. Date and Time arrive as separate
// serialized values; see StartTime for how they are combined.
type Lesson struct {
	ID           string       `json:"id"`
	InstructorID string       `json:"instructorId"`
	StudentID    string       `json:"studentId"`
	Date         time.Time    `json:"date"`
	Time         time.Time    `json:"time"`
	Duration     int          `json:"duration"`
	Status       LessonStatus `json:"status"`
	Price        float64      `json:"price"`
	Location     string       `json:"location,omitempty"`
}

// AdjustmentCutoff is the minimum lead time a confirmed lesson needs
// before a student may propose a new slot.
const AdjustmentCutoff = 24 * time.Hour

// StartTime overlays the time's hour/minute onto the date's calendar
// fields. Both are read through their UTC components so the two
// serialized values are not shifted twice through the local zone.
func (l Lesson) StartTime() time.Time {
	d := l.Date.UTC()
	t := l.Time.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}

// CanAdjust reports whether an adjustment may still be proposed.
func (l Lesson) CanAdjust(now time.Time) bool {
	if l.Status != LessonConfirmed {
		return false
	}
	return l.StartTime().Sub(now) > AdjustmentCutoff
}

// WithinCutoff reports whether a confirmed lesson is inside the
// no-adjustment window, used purely for display.
func (l Lesson) WithinCutoff(now time.Time) bool {
	if l.Status != LessonConfirmed {
		return false
	}
	return l.StartTime().Sub(now) <= AdjustmentCutoff
}
