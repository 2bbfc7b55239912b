package services

import (
	"fmt"
	"strings"
	"time"
)

const monthLayout = "2006-01"

type CalendarDayState struct {
	Date        time.Time `json:"-"`
	DateString  string    `json:"date"`
	Day         int       `json:"day"`
	InMonth     bool      `json:"inMonth"`
	IsToday     bool      `json:"isToday"`
	HasMoments  bool      `json:"hasMoments"`
	MomentColor string    `json:"color,omitempty"`
}

// DateAtLocation truncates value to midnight of its calendar day in location.
func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// ParseMonth accepts YYYY-MM and returns the first day of that month.
func ParseMonth(raw string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	parsed, err := time.ParseInLocation(monthLayout, strings.TrimSpace(raw), location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: month %q must be YYYY-MM", ErrInvalidInput, raw)
	}
	return parsed, nil
}

// BuildCalendarDayStates lays out monthStart's month as whole Sunday-first
// weeks, marking days that carry planned moments with their date color.
func BuildCalendarDayStates(monthStart time.Time, datesWithMoments map[string]struct{}, now time.Time) []CalendarDayState {
	location := monthStart.Location()
	monthStart = time.Date(monthStart.Year(), monthStart.Month(), 1, 0, 0, 0, 0, location)
	monthEnd := monthStart.AddDate(0, 1, -1)
	gridStart := monthStart.AddDate(0, 0, -int(monthStart.Weekday()))
	gridEnd := monthEnd.AddDate(0, 0, 6-int(monthEnd.Weekday()))

	return buildDayStates(gridStart, gridEnd, monthStart.Month(), datesWithMoments, now)
}

// BuildWeekDayStates returns the Sunday-first week containing day. Every
// entry counts as in-month.
func BuildWeekDayStates(day time.Time, datesWithMoments map[string]struct{}, now time.Time) []CalendarDayState {
	day = DateAtLocation(day, day.Location())
	weekStart := day.AddDate(0, 0, -int(day.Weekday()))
	return buildDayStates(weekStart, weekStart.AddDate(0, 0, 6), 0, datesWithMoments, now)
}

func buildDayStates(from time.Time, to time.Time, month time.Month, datesWithMoments map[string]struct{}, now time.Time) []CalendarDayState {
	todayKey := DateKey(DateAtLocation(now, from.Location()))

	days := make([]CalendarDayState, 0, 42)
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		key := DateKey(day)
		_, hasMoments := datesWithMoments[key]
		state := CalendarDayState{
			Date:       day,
			DateString: key,
			Day:        day.Day(),
			InMonth:    month == 0 || day.Month() == month,
			IsToday:    key == todayKey,
			HasMoments: hasMoments,
		}
		if hasMoments {
			state.MomentColor = ColorForDate(key)
		}
		days = append(days, state)
	}
	return days
}
