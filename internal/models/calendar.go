package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatISODate renders a calendar day as YYYY-MM-DD from its
// components, deliberately without going through a time zone.
func FormatISODate(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// NormalizeISODate re-formats a date string into canonical zero-padded
// YYYY-MM-DD by splitting on "-" and reassembling the numeric parts.
// "2025-3-7" becomes "2025-03-07". Returns an error for anything that
// is not three numeric dash-separated fields.
func NormalizeISODate(s string) (string, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return "", fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", fmt.Errorf("invalid year in %q", s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", fmt.Errorf("invalid month in %q", s)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", fmt.Errorf("invalid day in %q", s)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", fmt.Errorf("date %q out of range", s)
	}
	return FormatISODate(year, time.Month(month), day), nil
}

// TodayISO renders now's calendar day in now's location as YYYY-MM-DD.
// Comparison against selected dates is plain string comparison, which
// matches chronological order for this format.
func TodayISO(now time.Time) string {
	return FormatISODate(now.Year(), now.Month(), now.Day())
}

// IsPastDate reports whether date (YYYY-MM-DD) is strictly before
// today. Lexicographic comparison is correct for zero-padded ISO dates.
func IsPastDate(date string, now time.Time) bool {
	return date < TodayISO(now)
}

// MonthRef identifies a calendar month shown in the date step.
type MonthRef struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// Prev returns the previous month, wrapping January to December of the
// prior year.
func (m MonthRef) Prev() MonthRef {
	if m.Month == time.January {
		return MonthRef{Year: m.Year - 1, Month: time.December}
	}
	return MonthRef{Year: m.Year, Month: m.Month - 1}
}

// Next returns the following month, wrapping December to January of
// the next year.
func (m MonthRef) Next() MonthRef {
	if m.Month == time.December {
		return MonthRef{Year: m.Year + 1, Month: time.January}
	}
	return MonthRef{Year: m.Year, Month: m.Month + 1}
}

// CalendarDay is one cell of the month grid.
type CalendarDay struct {
	Date       string `json:"date"` // YYYY-MM-DD, empty for pad cells
	Day        int    `json:"day"`  // 0 for pad cells
	IsPast     bool   `json:"isPast"`
	IsSelected bool   `json:"isSelected"`
}

// MonthGrid lays out a month as rows of seven days starting on Monday.
// Leading cells before the 1st are empty pad cells. selected holds the
// normalized dates currently chosen.
func MonthGrid(ref MonthRef, now time.Time, selected []string) [][]CalendarDay {
	first := time.Date(ref.Year, ref.Month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	// Weekday() has Sunday=0; shift so Monday=0.
	lead := (int(first.Weekday()) + 6) % 7

	isSelected := make(map[string]bool, len(selected))
	for _, d := range selected {
		isSelected[d] = true
	}

	var grid [][]CalendarDay
	row := make([]CalendarDay, 0, 7)
	for i := 0; i < lead; i++ {
		row = append(row, CalendarDay{})
	}
	for day := 1; day <= daysInMonth; day++ {
		date := FormatISODate(ref.Year, ref.Month, day)
		row = append(row, CalendarDay{
			Date:       date,
			Day:        day,
			IsPast:     IsPastDate(date, now),
			IsSelected: isSelected[date],
		})
		if len(row) == 7 {
			grid = append(grid, row)
			row = make([]CalendarDay, 0, 7)
		}
	}
	if len(row) > 0 {
		for len(row) < 7 {
			row = append(row, CalendarDay{})
		}
		grid = append(grid, row)
	}
	return grid
}

// LessonTimeSlots is the fixed set of bookable start times.
var LessonTimeSlots = []string{
	"08:00", "09:00", "10:00", "11:00",
	"14:00", "15:00", "16:00", "17:00",
}

// ValidTimeSlot reports whether t is one of the bookable start times.
func ValidTimeSlot(t string) bool {
	for _, s := range LessonTimeSlots {
		if s == t {
			return true
		}
	}
	return false
}
