package dto

import "github.com/lzamboni86/godrive-mobile-api/internal/models"

// AdjustLessonRequest proposes a new slot for a confirmed lesson.
type AdjustLessonRequest struct {
	NewDate string `json:"newDate" validate:"required"`
	NewTime string `json:"newTime" validate:"required"`
	Reason  string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// LessonView is a lesson annotated with what the student may do to it.
type LessonView struct {
	models.Lesson
	CanAdjust    bool `json:"canAdjust"`
	InsideCutoff bool `json:"insideCutoff"`
}
