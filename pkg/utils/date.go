package utils

import (
	"time"
)

const DateLayout = "2006-01-02"

// Today returns the calendar date of now in now's own location.
func Today(now time.Time) string {
	return FormatDate(now)
}

// IsToday reports whether date is the local calendar date of now.
func IsToday(date string, now time.Time) bool {
	return date == Today(now)
}

// IsFuture reports whether date falls after the calendar date of now.
// Both sides are YYYY-MM-DD, so a string compare is enough.
func IsFuture(date string, now time.Time) bool {
	return date > Today(now)
}

func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(DateLayout, dateStr)
}

func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}
