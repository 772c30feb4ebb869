package utils

import (
	"time"
)

// DisplayTimeFormat is the layout used for timestamps in reports
const DisplayTimeFormat = "2006-01-02 15:04:05"

// StartOfMonth returns the first instant of the calendar month containing t, in UTC
func StartOfMonth(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// FormatTimestamp formats an optional timestamp in UTC, returning an empty string for nil
func FormatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(DisplayTimeFormat)
}
