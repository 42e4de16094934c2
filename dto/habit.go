package dto

import (
	"time"

	"main/model"
)

type HabitCreateRequest struct {
	Name         string                      `json:"name" binding:"required"`
	Category     string                      `json:"category"`
	Notification *model.NotificationSettings `json:"notification"`
}

type HabitUpdateRequest struct {
	Name         *string                     `json:"name"`
	Category     *string                     `json:"category"`
	Notification *model.NotificationSettings `json:"notification"`
}

type HabitResponse struct {
	ID           string                     `json:"id"`
	Name         string                     `json:"name"`
	Category     string                     `json:"category"`
	Notification model.NotificationSettings `json:"notification"`
	CreatedAt    time.Time                  `json:"created_at"`
	Stats        *model.HabitStats          `json:"stats,omitempty"`
}

// Convert model.Habit to HabitResponse
func ToHabitResponse(habit *model.Habit, stats *model.HabitStats) HabitResponse {
	return HabitResponse{
		ID:           habit.HabitID,
		Name:         habit.Name,
		Category:     habit.Category,
		Notification: habit.Notification,
		CreatedAt:    habit.CreatedAt,
		Stats:        stats,
	}
}
