package repository

import (
	"context"
	"errors"
	"time"

	"main/middleware"
	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type HabitsRepo struct {
	MongoCollection *mongo.Collection
}

func GetHabitsRepo(client *mongo.Client) *HabitsRepo {
	collectionName := utils.GetEnvAsString("HABITS_COLLECTION", "habits")
	return &HabitsRepo{
		MongoCollection: client.Database(utils.DatabaseName()).Collection(collectionName),
	}
}

// CreateHabit adds a new habit
func (r *HabitsRepo) CreateHabit(ctx context.Context, habit *model.Habit) error {
	timer := middleware.TrackDBOperation("insert", "habits")
	defer timer.ObserveDuration()

	if habit.UserID == "" {
		return errors.New("user ID is required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, habit)
	if err != nil {
		middleware.TrackError("database")
		return err
	}

	middleware.TrackHabitOperation("create")
	return nil
}

// GetUserHabits retrieves all habits for a user
func (r *HabitsRepo) GetUserHabits(ctx context.Context, userID string) ([]*model.Habit, error) {
	timer := middleware.TrackDBOperation("find", "habits")
	defer timer.ObserveDuration()

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		middleware.TrackError("database")
		return nil, err
	}
	defer cursor.Close(ctx)

	var habits []*model.Habit
	if err = cursor.All(ctx, &habits); err != nil {
		return nil, err
	}
	return habits, nil
}

// GetHabit fetches a habit owned by the user. Returns nil without error when
// absent.
func (r *HabitsRepo) GetHabit(ctx context.Context, habitID, userID string) (*model.Habit, error) {
	timer := middleware.TrackDBOperation("find", "habits")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     habitID,
		"user_id": userID, // Ensure user owns this habit
	}

	var habit model.Habit
	err := r.MongoCollection.FindOne(ctx, filter).Decode(&habit)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		middleware.TrackError("database")
		return nil, err
	}
	return &habit, nil
}

// UpdateHabit applies the given field updates to a habit
func (r *HabitsRepo) UpdateHabit(ctx context.Context, habitID, userID string, updates bson.M) error {
	timer := middleware.TrackDBOperation("update", "habits")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     habitID,
		"user_id": userID,
	}

	updates["updated_at"] = time.Now()
	update := bson.M{"$set": updates}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		middleware.TrackError("database")
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("habit not found")
	}

	middleware.TrackHabitOperation("update")
	return nil
}

// DeleteHabit removes a habit. The caller cascades the completion-log delete.
func (r *HabitsRepo) DeleteHabit(ctx context.Context, habitID, userID string) error {
	timer := middleware.TrackDBOperation("delete", "habits")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     habitID,
		"user_id": userID,
	}

	result, err := r.MongoCollection.DeleteOne(ctx, filter)
	if err != nil {
		middleware.TrackError("database")
		return err
	}
	if result.DeletedCount == 0 {
		return errors.New("habit not found")
	}

	middleware.TrackHabitOperation("delete")
	return nil
}

// CountUserHabits counts the habits owned by a user
func (r *HabitsRepo) CountUserHabits(ctx context.Context, userID string) (int, error) {
	timer := middleware.TrackDBOperation("count", "habits")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// GetHabitsWithRemindersEnabled returns all habits across all users whose
// notification settings are switched on. Used by the reminder scheduler.
func (r *HabitsRepo) GetHabitsWithRemindersEnabled(ctx context.Context) ([]*model.Habit, error) {
	timer := middleware.TrackDBOperation("find", "habits")
	defer timer.ObserveDuration()

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"notification.enabled": true})
	if err != nil {
		middleware.TrackError("database")
		return nil, err
	}
	defer cursor.Close(ctx)

	var habits []*model.Habit
	if err = cursor.All(ctx, &habits); err != nil {
		return nil, err
	}
	return habits, nil
}
