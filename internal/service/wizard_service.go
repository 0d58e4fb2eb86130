package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lzamboni86/godrive-mobile-api/internal/dto"
	"github.com/lzamboni86/godrive-mobile-api/internal/models"
	appErrors "github.com/lzamboni86/godrive-mobile-api/pkg/errors"
)

// lessonHistoryReader is the slice of the upstream client the wizard
// needs to size the minimum selection.
type lessonHistoryReader interface {
	PastLessons(ctx context.Context, token string) ([]models.Lesson, error)
}

// WizardService drives the booking wizard: a per-student draft moved
// through date selection, time selection and review. All draft state
// lives in the store; every operation loads, mutates and writes back.
type WizardService struct {
	store     *DraftStore
	history   lessonHistoryReader
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewWizardService constructs a WizardService.
func NewWizardService(store *DraftStore, history lessonHistoryReader, validate *validator.Validate, logger *zap.Logger) *WizardService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WizardService{
		store:     store,
		history:   history,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// StartDraft opens a new wizard for the instructor. The minimum number
// of dates is fixed here from the student's history: students with at
// least two non-cancelled lessons behind them may book a single one,
// everyone else books at least two.
func (s *WizardService) StartDraft(ctx context.Context, token, studentID string, req dto.StartDraftRequest) (*dto.DateStepView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid draft payload")
	}

	past, err := s.history.PastLessons(ctx, token)
	if err != nil {
		return nil, err
	}
	prior := 0
	for _, lesson := range past {
		if lesson.Status != models.LessonCancelled {
			prior++
		}
	}
	minimum := 2
	if prior >= 2 {
		minimum = 1
	}

	now := s.now()
	draft := models.BookingDraft{
		ID:              uuid.NewString(),
		StudentID:       studentID,
		InstructorID:    req.InstructorID,
		Step:            models.StepDates,
		ViewYear:        now.Year(),
		ViewMonth:       now.Month(),
		MinimumRequired: minimum,
		SelectedTimes:   make(map[string][]string),
		CreatedAt:       now,
	}
	s.store.Put(draft)

	s.logger.Sugar().Infow("draft started",
		"draft_id", draft.ID, "student_id", studentID,
		"instructor_id", req.InstructorID, "minimum_required", minimum)

	view := s.dateView(draft)
	return &view, nil
}

// DateStep returns the current date step view.
func (s *WizardService) DateStep(draftID, studentID string) (*dto.DateStepView, error) {
	draft, err := s.store.Get(draftID, studentID)
	if err != nil {
		return nil, err
	}
	view := s.dateView(draft)
	return &view, nil
}

// ToggleDate selects or deselects a date. Past dates are ignored
// rather than rejected: the calendar shows them disabled and a stale
// tap should not surface an error. Deselecting a date drops any times
// chosen for it.
func (s *WizardService) ToggleDate(draftID, studentID string, req dto.ToggleDateRequest) (*dto.DateStepView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid date payload")
	}
	date, err := models.NormalizeISODate(req.Date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}

	draft, err := s.store.Get(draftID, studentID)
	if err != nil {
		return nil, err
	}

	if models.IsPastDate(date, s.now()) {
		view := s.dateView(draft)
		return &view, nil
	}

	if draft.HasDate(date) {
		kept := draft.SelectedDates[:0]
		for _, d := range draft.SelectedDates {
			if d != date {
				kept = append(kept, d)
			}
		}
		draft.SelectedDates = kept
		delete(draft.SelectedTimes, date)
		if draft.ActiveDate == date {
			draft.ActiveDate = ""
		}
	} else {
		if len(draft.SelectedDates) >= models.MaxSelectableDates {
			return nil, appErrors.ErrSelectionLimit
		}
		draft.SelectedDates = append(draft.SelectedDates, date)
	}

	s.store.Put(draft)
	view := s.dateView(draft)
	return &view, nil
}

// ShiftMonth moves the calendar view one month, wrapping across year
// boundaries. The selection is untouched.
func (s *WizardService) ShiftMonth(draftID, studentID string, req dto.ShiftMonthRequest) (*dto.DateStepView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid month payload")
	}
	draft, err := s.store.Get(draftID, studentID)
	if err != nil {
		return nil, err
	}

	ref := models.MonthRef{Year: draft.ViewYear, Month: draft.ViewMonth}
	if req.Direction == "PREV" {
		ref = ref.Prev()
	} else {
		ref = ref.Next()
	}
	draft.ViewYear = ref.Year
	draft.ViewMonth = ref.Month

	s.store.Put(draft)
	view := s.dateView(draft)
	return &view, nil
}

// ProceedDates advances to the time step once the minimum is met.
func (s *WizardService) ProceedDates(draftID, studentID string) (*dto.TimeStepView, error) {
	draft, err := s.store.Get(draftID, studentID)
	if err != nil {
		return nil, err
	}

	if len(draft.SelectedDates) < draft.MinimumRequired {
		msg := fmt.Sprintf("select at least %d dates", draft.MinimumRequired)
		if draft.MinimumRequired == 1 {
			msg = "select at least 1 date"
		}
		return nil, appErrors.Clone(appErrors.ErrSelectionShort, msg)
	}

	sort.Strings(draft.SelectedDates)
	draft.Step = models.StepTimes
	if draft.ActiveDate == "" || !draft.HasDate(draft.ActiveDate) {
		draft.ActiveDate = draft.SelectedDates[0]
	}

	s.store.Put(draft)
	view := s.timeView(draft)
	return &view, nil
}

// TimeStep returns the current time step view.
func (s *WizardService) TimeStep(draftID, studentID string) (*dto.TimeStepView, error) {
	draft, err := s.store.Get(draftID, studentID)
	if err != nil {
		return nil, err
	}
	view := s.timeView(draft)
	return &view, nil
}

// ToggleTime selects or deselects a slot for a date. More than one
// slot per date is allowed; the total across dates is what submission
// prices.
func (s *WizardService) ToggleTime(draftID, studentID string, req dto.ToggleTimeRequest) (*dto.TimeStepView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid time payload")
	}
	if !models.ValidTimeSlot(req.Time) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s is not a bookable time", req.Time))
	}

	draft, err := s.store.Get(draftID, studentID)
	if err != nil {
		return nil, err
	}

	date := req.Date
	if date == "" {
		date = draft.ActiveDate
	} else {
		if date, err = models.NormalizeISODate(date); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
		}
	}
	if !draft.HasDate(date) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s is not a selected date", date))
	}

	times := draft.SelectedTimes[date]
	removed := times[:0]
	found := false
	for _, t := range times {
		if t == req.Time {
			found = true
			continue
		}
		removed = append(removed, t)
	}
	if found {
		if len(removed) == 0 {
			delete(draft.SelectedTimes, date)
		} else {
			draft.SelectedTimes[date] = removed
		}
	} else {
		draft.SelectedTimes[date] = append(times, req.Time)
	}
	draft.ActiveDate = date

	s.store.Put(draft)
	view := s.timeView(draft)
	return &view, nil
}

// SetActiveDate switches which date's slots the time step shows.
func (s *WizardService) SetActiveDate(draftID, studentID string, req dto.SetActiveDateRequest) (*dto.TimeStepView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid date payload")
	}
	date, err := models.NormalizeISODate(req.Date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}

	draft, err := s.store.Get(draftID, studentID)
	if err != nil {
		return nil, err
	}
	if !draft.HasDate(date) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s is not a selected date", date))
	}

	draft.ActiveDate = date
	s.store.Put(draft)
	view := s.timeView(draft)
	return &view, nil
}

// ProceedTimes advances to review once every date is covered: the slot
// count must reach the date count.
func (s *WizardService) ProceedTimes(draftID, studentID string) (*models.BookingDraft, error) {
	draft, err := s.store.Get(draftID, studentID)
	if err != nil {
		return nil, err
	}

	if short := draft.TimeShortfall(); short > 0 {
		noun := "time slots"
		if short == 1 {
			noun = "time slot"
		}
		return nil, appErrors.Clone(appErrors.ErrSelectionShort, fmt.Sprintf("select %d more %s", short, noun))
	}

	draft.Step = models.StepReview
	s.store.Put(draft)
	return &draft, nil
}

// Discard throws the draft away. Used when the student backs out.
func (s *WizardService) Discard(draftID, studentID string) error {
	if _, err := s.store.Get(draftID, studentID); err != nil {
		return err
	}
	s.store.Delete(draftID)
	return nil
}

func (s *WizardService) dateView(draft models.BookingDraft) dto.DateStepView {
	ref := models.MonthRef{Year: draft.ViewYear, Month: draft.ViewMonth}
	return dto.DateStepView{
		DraftID:         draft.ID,
		Month:           ref,
		Grid:            models.MonthGrid(ref, s.now(), draft.SelectedDates),
		SelectedDates:   sortedCopy(draft.SelectedDates),
		SelectedCount:   len(draft.SelectedDates),
		MinimumRequired: draft.MinimumRequired,
		MaxSelectable:   models.MaxSelectableDates,
		CanProceed:      len(draft.SelectedDates) >= draft.MinimumRequired,
	}
}

func (s *WizardService) timeView(draft models.BookingDraft) dto.TimeStepView {
	active := draft.ActiveDate
	selected := map[string]bool{}
	for _, t := range draft.SelectedTimes[active] {
		selected[t] = true
	}
	slots := make([]dto.TimeSlotView, 0, len(models.LessonTimeSlots))
	for _, t := range models.LessonTimeSlots {
		slots = append(slots, dto.TimeSlotView{Time: t, IsSelected: selected[t]})
	}
	return dto.TimeStepView{
		DraftID:       draft.ID,
		Dates:         sortedCopy(draft.SelectedDates),
		ActiveDate:    active,
		Slots:         slots,
		SelectedTimes: draft.SelectedTimes,
		SelectedCount: draft.TotalSelectedTimes(),
		RequiredCount: len(draft.SelectedDates),
		Shortfall:     draft.TimeShortfall(),
		CanProceed:    draft.TimeShortfall() == 0,
	}
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
