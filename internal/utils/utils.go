package utils

import "time"

const (
	monthLayout = "2006-01"
	dayLayout   = "2006-01-02"
)

// MonthKey returns the calendar-month ledger key for t, e.g. "2026-09".
func MonthKey(t time.Time) string {
	return t.Format(monthLayout)
}

// PreviousMonthKey returns the ledger key for the month before t.
func PreviousMonthKey(t time.Time) string {
	return t.AddDate(0, -1, 0).Format(monthLayout)
}

// DayKey returns the calendar-day key for t, e.g. "2026-09-01".
func DayKey(t time.Time) string {
	return t.Format(dayLayout)
}

// SameDay reports whether a day key was produced on the same calendar day as t.
func SameDay(dayKey string, t time.Time) bool {
	return dayKey == DayKey(t)
}
