package model

type HabitStats struct {
	HabitID        string `json:"habit_id"`
	CurrentStreak  int    `json:"current_streak"`
	CompletionRate int    `json:"completion_rate"`
}

type OverallStats struct {
	TotalHabits         int          `json:"total_habits"`
	CompletedToday      int          `json:"completed_today"`
	TodayCompletionRate int          `json:"today_completion_rate"`
	HabitsStats         []HabitStats `json:"habits_stats"`
}
