package dto

import "main/model"

type CompletionToggleRequest struct {
	Date string `json:"date" binding:"required"` // YYYY-MM-DD
}

type CompletionToggleResponse struct {
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

type CompletionLogResponse struct {
	HabitID     string              `json:"habit_id"`
	Completions model.CompletionLog `json:"completions"`
	Stats       model.HabitStats    `json:"stats"`
}
