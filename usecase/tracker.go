package usecase

import (
	"errors"
	"math"
	"time"

	"main/model"
	"main/utils"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrInvalidWindow = errors.New("window must be at least one day")
)

// CompletionRate counts completed days within the trailing windowDays
// calendar days ending at today inclusive, and returns the share as a
// percentage rounded to the nearest integer. An empty log yields 0.
func CompletionRate(log model.CompletionLog, today time.Time, windowDays int) (int, error) {
	if windowDays < 1 {
		return 0, ErrInvalidWindow
	}

	completed := 0
	for _, key := range utils.DateRange(today, windowDays) {
		if log[key] {
			completed++
		}
	}

	return int(math.Round(100 * float64(completed) / float64(windowDays))), nil
}

// CurrentStreak counts consecutive completed days walking backward from
// today. Today itself being absent or false does not end the walk; the count
// then simply starts at yesterday. Any earlier gap ends it. maxDays caps the
// walk as a safety bound.
func CurrentStreak(log model.CompletionLog, today time.Time, maxDays int) int {
	streak := 0
	day := today

	// Today may legitimately be not-yet-completed without breaking
	// yesterday's streak.
	if !log[utils.DateKey(day)] {
		day = day.AddDate(0, 0, -1)
	}

	for i := 0; i < maxDays; i++ {
		if !log[utils.DateKey(day)] {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}

	return streak
}
