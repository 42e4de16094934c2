package config

import "main/utils"

// StatsConfig bounds the derived-statistics computations. The trailing
// window and the streak walk cap are deployment configuration, shared by the
// API defaults and the reminder scheduler.
type StatsConfig struct {
	WindowDays    int
	StreakMaxDays int
}

func LoadStatsConfig() StatsConfig {
	return StatsConfig{
		WindowDays:    utils.GetEnvAsInt("STATS_WINDOW_DAYS", 30),
		StreakMaxDays: utils.GetEnvAsInt("STREAK_MAX_DAYS", 365),
	}
}
