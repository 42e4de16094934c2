package model

import "time"

// RecommendedCategories is the suggested set shown by clients. Free-text
// categories are accepted as well.
var RecommendedCategories = []string{
	"Health",
	"Fitness",
	"Productivity",
	"Learning",
	"Mindfulness",
	"Social",
}

// NotificationSettings controls per-habit reminders. Time is "HH:MM" in the
// server's local time, Days are weekdays 0 (Sunday) through 6 (Saturday).
type NotificationSettings struct {
	Enabled bool   `bson:"enabled" json:"enabled"`
	Time    string `bson:"time" json:"time" validate:"omitempty,reminder_time"`
	Days    []int  `bson:"days" json:"days" validate:"omitempty,weekdays"`
}

type Habit struct {
	HabitID      string               `bson:"_id" json:"id"`
	UserID       string               `bson:"user_id" json:"user_id"`
	Name         string               `bson:"name" json:"name" binding:"required"`
	Category     string               `bson:"category" json:"category"`
	Notification NotificationSettings `bson:"notification" json:"notification"`
	CreatedAt    time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time            `bson:"updated_at" json:"updated_at"`
}

// DefaultNotificationSettings mirrors what clients get when they leave the
// reminder section untouched: disabled, 09:00 on weekdays.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		Enabled: false,
		Time:    "09:00",
		Days:    []int{1, 2, 3, 4, 5},
	}
}
