package services

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"main/model"
	"main/repository"
	"main/utils"
)

// ReminderScheduler walks habits with reminders enabled and pushes a
// reminder to the owner's device when the configured time of day comes up.
// Habits already completed today are skipped.
type ReminderScheduler struct {
	HabitsRepo      *repository.HabitsRepo
	CompletionsRepo *repository.CompletionsRepo
	UserRepo        *repository.UserRepo
	Sender          *PushSender
	Interval        time.Duration

	sent map[string]bool // habitID+date pairs already reminded
}

func NewReminderScheduler(
	habitsRepo *repository.HabitsRepo,
	completionsRepo *repository.CompletionsRepo,
	userRepo *repository.UserRepo,
	sender *PushSender,
	interval time.Duration,
) *ReminderScheduler {
	return &ReminderScheduler{
		HabitsRepo:      habitsRepo,
		CompletionsRepo: completionsRepo,
		UserRepo:        userRepo,
		Sender:          sender,
		Interval:        interval,
		sent:            make(map[string]bool),
	}
}

// Start runs the scheduler loop until the context is cancelled.
func (rs *ReminderScheduler) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(rs.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := rs.RunOnce(ctx, time.Now()); err != nil {
					log.Printf("reminder run failed: %v", err)
				}
			}
		}
	}()
}

// RunOnce performs a single reminder sweep for the given wall-clock time.
func (rs *ReminderScheduler) RunOnce(ctx context.Context, now time.Time) error {
	habits, err := rs.HabitsRepo.GetHabitsWithRemindersEnabled(ctx)
	if err != nil {
		return err
	}

	today := utils.DateKey(now)
	users := make(map[string]*model.User)

	for _, habit := range habits {
		if !IsReminderDue(habit.Notification, now) {
			continue
		}

		sentKey := habit.HabitID + ":" + today
		if rs.sent[sentKey] {
			continue
		}

		completion, err := rs.CompletionsRepo.GetCompletion(ctx, habit.HabitID, habit.UserID, today)
		if err != nil {
			log.Printf("reminder completion lookup failed for habit %s: %v", habit.HabitID, err)
			continue
		}
		if completion != nil && completion.Completed {
			continue
		}

		user, ok := users[habit.UserID]
		if !ok {
			user, err = rs.UserRepo.FindUser(ctx, habit.UserID)
			if err != nil {
				log.Printf("reminder user lookup failed for %s: %v", habit.UserID, err)
				continue
			}
			users[habit.UserID] = user
		}
		if user == nil || user.Subscription == nil {
			continue
		}

		err = rs.Sender.Send(ctx, user.Subscription, HabitReminderPayload(habit.Name))
		if err == ErrSubscriptionGone {
			log.Printf("pruning gone subscription for user %s", user.UserID)
			if _, clearErr := rs.UserRepo.ClearSubscription(ctx, user.UserID); clearErr != nil {
				log.Printf("failed to prune subscription for user %s: %v", user.UserID, clearErr)
			}
			user.Subscription = nil
			continue
		}
		if err != nil {
			log.Printf("reminder push failed for habit %s: %v", habit.HabitID, err)
			continue
		}

		rs.sent[sentKey] = true
	}

	rs.pruneSent(today)
	return nil
}

// IsReminderDue reports whether the reminder settings match the given time:
// enabled, today's weekday listed (0=Sunday through 6=Saturday), and the
// time of day within one minute of the configured HH:MM.
func IsReminderDue(settings model.NotificationSettings, now time.Time) bool {
	if !settings.Enabled {
		return false
	}

	weekday := int(now.Weekday())
	listed := false
	for _, day := range settings.Days {
		if day == weekday {
			listed = true
			break
		}
	}
	if !listed {
		return false
	}

	parts := strings.Split(settings.Time, ":")
	if len(parts) != 2 {
		return false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return false
	}

	if now.Hour() != hour {
		return false
	}
	diff := now.Minute() - minute
	if diff < 0 {
		diff = -diff
	}
	return diff <= 1
}

// pruneSent drops dedup entries from previous days.
func (rs *ReminderScheduler) pruneSent(today string) {
	for key := range rs.sent {
		if !strings.HasSuffix(key, ":"+today) {
			delete(rs.sent, key)
		}
	}
}
