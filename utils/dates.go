package utils

import (
	"time"

	"main/model"
)

// Today returns the current calendar date in the server's local time,
// truncated to midnight.
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// DateKey formats a time as a completion-log date key.
func DateKey(t time.Time) string {
	return t.Format(model.DateLayout)
}

// ParseDateKey parses a completion-log date key. Any valid calendar date is
// accepted, including future dates.
func ParseDateKey(value string) (time.Time, error) {
	return time.Parse(model.DateLayout, value)
}

// DateRange returns the date keys for the trailing `days` calendar days
// ending at `end` inclusive, most recent first.
func DateRange(end time.Time, days int) []string {
	keys := make([]string, 0, days)
	for i := 0; i < days; i++ {
		keys = append(keys, DateKey(end.AddDate(0, 0, -i)))
	}
	return keys
}
