package dto

import "github.com/lzamboni86/godrive-mobile-api/internal/models"

// StartDraftRequest opens a new booking wizard for an instructor.
type StartDraftRequest struct {
	InstructorID string `json:"instructorId" validate:"required"`
}

// ToggleDateRequest selects or deselects a lesson date.
type ToggleDateRequest struct {
	Date string `json:"date" validate:"required"`
}

// ShiftMonthRequest moves the calendar one month back or forward.
type ShiftMonthRequest struct {
	Direction string `json:"direction" validate:"required,oneof=PREV NEXT"`
}

// ToggleTimeRequest selects or deselects a time slot. Date defaults to
// the draft's active date when omitted.
type ToggleTimeRequest struct {
	Date string `json:"date" validate:"omitempty"`
	Time string `json:"time" validate:"required"`
}

// SetActiveDateRequest switches which date's slots the time step shows.
type SetActiveDateRequest struct {
	Date string `json:"date" validate:"required"`
}

// DateStepView is the date step as the app should render it.
type DateStepView struct {
	DraftID         string                 `json:"draftId"`
	Month           models.MonthRef        `json:"month"`
	Grid            [][]models.CalendarDay `json:"grid"`
	SelectedDates   []string               `json:"selectedDates"`
	SelectedCount   int                    `json:"selectedCount"`
	MinimumRequired int                    `json:"minimumRequired"`
	MaxSelectable   int                    `json:"maxSelectable"`
	CanProceed      bool                   `json:"canProceed"`
}

// TimeStepView is the time step as the app should render it.
type TimeStepView struct {
	DraftID       string              `json:"draftId"`
	Dates         []string            `json:"dates"`
	ActiveDate    string              `json:"activeDate"`
	Slots         []TimeSlotView      `json:"slots"`
	SelectedTimes map[string][]string `json:"selectedTimes"`
	SelectedCount int                 `json:"selectedCount"`
	RequiredCount int                 `json:"requiredCount"`
	Shortfall     int                 `json:"shortfall"`
	CanProceed    bool                `json:"canProceed"`
}

// TimeSlotView is one bookable start time for the active date.
type TimeSlotView struct {
	Time       string `json:"time"`
	IsSelected bool   `json:"isSelected"`
}

// ReviewView is the confirmation step: selections priced against the
// wallet, with the path the submission will take.
type ReviewView struct {
	DraftID     string               `json:"draftId"`
	Instructor  *models.Instructor   `json:"instructor"`
	Slots       []models.LessonSlot  `json:"slots"`
	LessonCount int                  `json:"lessonCount"`
	HourlyRate  float64              `json:"hourlyRate"`
	TotalAmount float64              `json:"totalAmount"`
	Wallet      models.WalletBalance `json:"wallet"`
	PaymentPath models.PaymentPath   `json:"paymentPath"`
}

// SubmitResult reports where the submission landed. CheckoutURL is only
// set on the gateway path; the draft survives there so a failed or
// abandoned payment can be retried.
type SubmitResult struct {
	Path        models.PaymentPath `json:"path"`
	BookingID   string             `json:"bookingId,omitempty"`
	LessonIDs   []string           `json:"lessonIds,omitempty"`
	TotalAmount float64            `json:"totalAmount"`
	CheckoutURL string             `json:"checkoutUrl,omitempty"`
}
