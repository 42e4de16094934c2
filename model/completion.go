package model

import "time"

// DateLayout is the calendar-date key format used throughout the completion
// log. Dates carry no time component.
const DateLayout = "2006-01-02"

// Completion marks whether a habit was performed on a calendar date. At most
// one document exists per (habit, user, date). A missing document reads the
// same as Completed=false.
type Completion struct {
	CompletionID string    `bson:"_id" json:"id"`
	HabitID      string    `bson:"habit_id" json:"habit_id"`
	UserID       string    `bson:"user_id" json:"user_id"`
	Date         string    `bson:"date" json:"date"`
	Completed    bool      `bson:"completed" json:"completed"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// CompletionLog is a sparse calendar of completion marks keyed by date
// string. Absent keys are treated as not completed.
type CompletionLog map[string]bool
