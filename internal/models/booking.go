package models

import (
	"sort"
	"time"
)

// PaymentPath is the route a booking takes at submission time.
type PaymentPath string

const (
	// PaymentPathWallet means the booking total is covered entirely by
	// the student's available wallet balance.
	PaymentPathWallet PaymentPath = "WALLET"
	// PaymentPathGateway means at least part of the total requires an
	// external card or PIX payment.
	PaymentPathGateway PaymentPath = "GATEWAY"
)

// WizardStep tracks how far a draft has progressed. Steps only move
// forward via the Proceed operations; editing an earlier step is
// allowed and does not rewind the marker.
type WizardStep int

const (
	StepDates WizardStep = iota + 1
	StepTimes
	StepReview
)

// LessonSlot pairs one selected date with one selected time. Each slot
// becomes one lesson at submission.
type LessonSlot struct {
	Date string `json:"date"` // YYYY-MM-DD
	Time string `json:"time"` // HH:MM
}

// BookingDraft is the in-progress wizard state for one student and one
// instructor. Drafts live only in memory; an abandoned draft is
// evicted after its TTL and the student starts over.
type BookingDraft struct {
	ID           string     `json:"id"`
	StudentID    string     `json:"studentId"`
	InstructorID string     `json:"instructorId"`
	Step         WizardStep `json:"step"`

	// Month currently shown in the date step, independent of which
	// dates are selected.
	ViewYear  int        `json:"viewYear"`
	ViewMonth time.Month `json:"viewMonth"`

	// SelectedDates holds normalized YYYY-MM-DD strings, at most
	// MaxSelectableDates of them. Order is insertion order; submission
	// sorts a copy.
	SelectedDates []string `json:"selectedDates"`

	// MinimumRequired is fixed when the draft is created, from the
	// student's non-cancelled lesson history.
	MinimumRequired int `json:"minimumRequired"`

	// SelectedTimes maps a selected date to its chosen HH:MM slots.
	SelectedTimes map[string][]string `json:"selectedTimes"`

	// ActiveDate is the date whose slot picker is currently shown in
	// the time step.
	ActiveDate string `json:"activeDate,omitempty"`

	// PendingLessonIDs is set after a gateway-path submission creates
	// the lessons upstream; the checkout flow references them.
	PendingLessonIDs []string `json:"pendingLessonIds,omitempty"`

	// PendingAmount is the total priced at submission on the gateway
	// path. Payment calls reuse it rather than trusting the client.
	PendingAmount float64 `json:"pendingAmount,omitempty"`

	// DeviceID is the payment gateway's device fingerprint, captured
	// by the checkout page and echoed on payment calls.
	DeviceID string `json:"deviceId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MaxSelectableDates caps how many lesson dates one draft may hold.
const MaxSelectableDates = 10

// LessonDurationMinutes is the fixed length of every lesson.
const LessonDurationMinutes = 50

// TotalSelectedTimes counts every chosen slot across all dates. The
// booking total is this count times the instructor's hourly rate.
func (d *BookingDraft) TotalSelectedTimes() int {
	n := 0
	for _, times := range d.SelectedTimes {
		n += len(times)
	}
	return n
}

// TimeShortfall returns how many more slots must be chosen before the
// time step can proceed. Zero means the draft is ready.
func (d *BookingDraft) TimeShortfall() int {
	short := len(d.SelectedDates) - d.TotalSelectedTimes()
	if short < 0 {
		return 0
	}
	return short
}

// Slots expands the selection into lesson slots, ordered by date then
// time.
func (d *BookingDraft) Slots() []LessonSlot {
	dates := append([]string(nil), d.SelectedDates...)
	sort.Strings(dates)
	var slots []LessonSlot
	for _, date := range dates {
		times := append([]string(nil), d.SelectedTimes[date]...)
		sort.Strings(times)
		for _, t := range times {
			slots = append(slots, LessonSlot{Date: date, Time: t})
		}
	}
	return slots
}

// HasDate reports whether date is already in the selection.
func (d *BookingDraft) HasDate(date string) bool {
	for _, s := range d.SelectedDates {
		if s == date {
			return true
		}
	}
	return false
}
