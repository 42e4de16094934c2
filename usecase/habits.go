package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"main/config"
	"main/model"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

type HabitsService struct {
	HabitsRepo      *repository.HabitsRepo
	CompletionsRepo *repository.CompletionsRepo
	StatsCache      *services.StatsCache
	Stats           config.StatsConfig
}

func NewHabitsService(
	habitsRepo *repository.HabitsRepo,
	completionsRepo *repository.CompletionsRepo,
	statsCache *services.StatsCache,
	statsCfg config.StatsConfig,
) *HabitsService {
	return &HabitsService{
		HabitsRepo:      habitsRepo,
		CompletionsRepo: completionsRepo,
		StatsCache:      statsCache,
		Stats:           statsCfg,
	}
}

// CreateHabit validates and stores a new habit for the user.
func (svc *HabitsService) CreateHabit(ctx context.Context, habit *model.Habit) error {
	if habit.UserID == "" {
		return errors.New("user ID is required")
	}
	if habit.Name == "" {
		return errors.New("habit name is required")
	}

	if habit.Notification.Time == "" && habit.Notification.Days == nil {
		habit.Notification = model.DefaultNotificationSettings()
	}
	if habit.Notification.Time != "" && !utils.ValidateReminderTime(habit.Notification.Time) {
		return errors.New("invalid reminder time")
	}
	if !utils.ValidateWeekdays(habit.Notification.Days) {
		return errors.New("invalid reminder days")
	}

	if habit.HabitID == "" {
		habit.HabitID = uuid.New().String()
	}
	now := time.Now()
	habit.CreatedAt = now
	habit.UpdatedAt = now

	return svc.HabitsRepo.CreateHabit(ctx, habit)
}

// GetUserHabits returns all habits owned by the user.
func (svc *HabitsService) GetUserHabits(ctx context.Context, userID string) ([]*model.Habit, error) {
	return svc.HabitsRepo.GetUserHabits(ctx, userID)
}

// GetHabit fetches one habit, failing with ErrHabitNotFound when it does not
// exist or belongs to another user.
func (svc *HabitsService) GetHabit(ctx context.Context, habitID, userID string) (*model.Habit, error) {
	habit, err := svc.HabitsRepo.GetHabit(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}
	if habit == nil {
		return nil, ErrHabitNotFound
	}
	return habit, nil
}

// UpdateHabit applies a partial update. The habit identifier is immutable.
func (svc *HabitsService) UpdateHabit(ctx context.Context, habitID, userID string, name, category *string, notification *model.NotificationSettings) (*model.Habit, error) {
	if _, err := svc.GetHabit(ctx, habitID, userID); err != nil {
		return nil, err
	}

	updates := bson.M{}
	if name != nil {
		if *name == "" {
			return nil, errors.New("habit name is required")
		}
		updates["name"] = *name
	}
	if category != nil {
		updates["category"] = *category
	}
	if notification != nil {
		if notification.Time != "" && !utils.ValidateReminderTime(notification.Time) {
			return nil, errors.New("invalid reminder time")
		}
		if !utils.ValidateWeekdays(notification.Days) {
			return nil, errors.New("invalid reminder days")
		}
		updates["notification"] = notification
	}

	if len(updates) > 0 {
		if err := svc.HabitsRepo.UpdateHabit(ctx, habitID, userID, updates); err != nil {
			return nil, err
		}
	}

	return svc.GetHabit(ctx, habitID, userID)
}

// DeleteHabit removes a habit and cascades its completion log.
func (svc *HabitsService) DeleteHabit(ctx context.Context, habitID, userID string) error {
	if _, err := svc.GetHabit(ctx, habitID, userID); err != nil {
		return err
	}

	if err := svc.HabitsRepo.DeleteHabit(ctx, habitID, userID); err != nil {
		return err
	}
	if err := svc.CompletionsRepo.DeleteHabitCompletions(ctx, habitID, userID); err != nil {
		// Habit is gone; orphaned marks only waste space and never surface
		// in reads, so log and carry on.
		log.Printf("failed to cascade completion delete for habit %s: %v", habitID, err)
	}

	svc.invalidateStats(userID)
	return nil
}

// ToggleCompletion flips the completion mark for one (habit, date) pair,
// treating absence as false, and returns the new value. The date may be any
// valid calendar date, including future ones.
func (svc *HabitsService) ToggleCompletion(ctx context.Context, userID, habitID, date string) (bool, error) {
	if _, err := utils.ParseDateKey(date); err != nil {
		return false, errors.New("invalid date")
	}
	if _, err := svc.GetHabit(ctx, habitID, userID); err != nil {
		return false, err
	}

	existing, err := svc.CompletionsRepo.GetCompletion(ctx, habitID, userID, date)
	if err != nil {
		return false, err
	}

	newStatus := !(existing != nil && existing.Completed)
	if err := svc.CompletionsRepo.SetCompletion(ctx, habitID, userID, date, newStatus); err != nil {
		return false, err
	}

	svc.invalidateStats(userID)
	return newStatus, nil
}

// GetCompletionLog returns the sparse completion map for the trailing
// windowDays plus enough history to evaluate the streak.
func (svc *HabitsService) GetCompletionLog(ctx context.Context, userID, habitID string, windowDays int) (model.CompletionLog, error) {
	if windowDays < 1 {
		return nil, ErrInvalidWindow
	}
	if _, err := svc.GetHabit(ctx, habitID, userID); err != nil {
		return nil, err
	}

	span := windowDays
	if svc.Stats.StreakMaxDays+1 > span {
		span = svc.Stats.StreakMaxDays + 1
	}
	since := utils.DateKey(utils.Today().AddDate(0, 0, -(span - 1)))

	return svc.CompletionsRepo.GetCompletionLog(ctx, habitID, userID, since)
}

// HabitStats derives the current streak and trailing completion rate for one
// habit from its completion log.
func (svc *HabitsService) HabitStats(ctx context.Context, userID, habitID string, windowDays int) (model.HabitStats, error) {
	if windowDays < 1 {
		windowDays = svc.Stats.WindowDays
	}

	completionLog, err := svc.GetCompletionLog(ctx, userID, habitID, windowDays)
	if err != nil {
		return model.HabitStats{}, err
	}

	today := utils.Today()
	rate, err := CompletionRate(completionLog, today, windowDays)
	if err != nil {
		return model.HabitStats{}, err
	}

	return model.HabitStats{
		HabitID:        habitID,
		CurrentStreak:  CurrentStreak(completionLog, today, svc.Stats.StreakMaxDays),
		CompletionRate: rate,
	}, nil
}

// OverallStats aggregates today's progress and per-habit stats for a user.
// Results are served from the stats cache when fresh.
func (svc *HabitsService) OverallStats(ctx context.Context, userID string) (*model.OverallStats, error) {
	if svc.StatsCache != nil {
		if cached, err := svc.StatsCache.Get(ctx, userID); err != nil {
			log.Printf("stats cache read failed for user %s: %v", userID, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	habits, err := svc.HabitsRepo.GetUserHabits(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := utils.DateKey(utils.Today())
	completedToday, err := svc.CompletionsRepo.CountCompletedForDate(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	stats := &model.OverallStats{
		TotalHabits:    len(habits),
		CompletedToday: completedToday,
		HabitsStats:    make([]model.HabitStats, 0, len(habits)),
	}
	if len(habits) > 0 {
		stats.TodayCompletionRate = int(float64(completedToday) / float64(len(habits)) * 100)
	}

	for _, habit := range habits {
		habitStats, err := svc.HabitStats(ctx, userID, habit.HabitID, svc.Stats.WindowDays)
		if err != nil {
			return nil, err
		}
		stats.HabitsStats = append(stats.HabitsStats, habitStats)
	}

	if svc.StatsCache != nil {
		if err := svc.StatsCache.Set(ctx, userID, stats); err != nil {
			log.Printf("stats cache write failed for user %s: %v", userID, err)
		}
	}

	return stats, nil
}

func (svc *HabitsService) invalidateStats(userID string) {
	if svc.StatsCache == nil {
		return
	}
	if err := svc.StatsCache.Invalidate(context.Background(), userID); err != nil {
		log.Printf("stats cache invalidation failed for user %s: %v", userID, err)
	}
}
