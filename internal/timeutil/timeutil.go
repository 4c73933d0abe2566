// Package timeutil provides calendar helpers for the timevault application.
// All instants are naive local wall-clock values; nothing here normalizes
// to UTC.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	// InstantLayout is the canonical date-time format used in entry lines.
	InstantLayout = "2006-01-02 15:04"
	// DateLayout is the canonical date format used in section markers.
	DateLayout = "2006-01-02"
	// PeriodLayout is the year-month format used as document period keys.
	PeriodLayout = "2006-01"
)

// ParseInstant parses a date-time string in the canonical "YYYY-MM-DD HH:mm"
// format. The result is in the local timezone.
func ParseInstant(s string) (time.Time, error) {
	t, err := time.ParseInLocation(InstantLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date-time %q: expected format YYYY-MM-DD HH:mm", s)
	}
	return t, nil
}

// FormatInstant formats a time in the canonical "YYYY-MM-DD HH:mm" format.
func FormatInstant(t time.Time) string {
	return t.Format(InstantLayout)
}

// ParseDate parses a date string in the canonical "YYYY-MM-DD" format.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected format YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDate formats a time as a "YYYY-MM-DD" date string.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// PeriodKey returns the year-month period key ("YYYY-MM") for the given time.
// One document holds all entries of one period.
func PeriodKey(t time.Time) string {
	return t.Format(PeriodLayout)
}

// ParsePeriod parses a period key ("YYYY-MM") into the first instant of
// that month.
func ParsePeriod(s string) (time.Time, error) {
	t, err := time.ParseInLocation(PeriodLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid period %q: expected format YYYY-MM", s)
	}
	return t, nil
}

// StartOfDay returns midnight (00:00:00) of the given day in the same timezone
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of the given day (23:59:59.999999999)
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24*time.Hour - time.Nanosecond)
}

// StartOfWeek returns the first day of the week containing the given time
// at 00:00:00. weekStartDay is "monday" (ISO 8601) or "sunday"; anything
// else falls back to Monday. Handles the Sunday edge case where Go's
// Weekday() returns 0.
func StartOfWeek(t time.Time, weekStartDay string) time.Time {
	weekday := int(t.Weekday())
	if strings.EqualFold(weekStartDay, "sunday") {
		return StartOfDay(t).AddDate(0, 0, -weekday)
	}
	if weekday == 0 { // Sunday
		weekday = 7
	}
	return StartOfDay(t).AddDate(0, 0, -(weekday - 1))
}

// EndOfWeek returns the last nanosecond of the week containing the given time.
func EndOfWeek(t time.Time, weekStartDay string) time.Time {
	return StartOfWeek(t, weekStartDay).AddDate(0, 0, 7).Add(-time.Nanosecond)
}

// StartOfMonth returns the first day of the month at 00:00:00 in the same timezone
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last nanosecond of the last day of the month.
// Adding a month to the start handles different month lengths (28-31 days).
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// IsInRange checks if the given time t falls within the range [start, end] (inclusive)
func IsInRange(t, start, end time.Time) bool {
	return (t.Equal(start) || t.After(start)) && (t.Equal(end) || t.Before(end))
}

// PeriodsInRange returns the period keys of every month the range
// [start, end] touches, in chronological order.
func PeriodsInRange(start, end time.Time) []string {
	if end.Before(start) {
		return nil
	}
	var periods []string
	for cur := StartOfMonth(start); !cur.After(end); cur = cur.AddDate(0, 1, 0) {
		periods = append(periods, PeriodKey(cur))
	}
	return periods
}
