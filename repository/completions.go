package repository

import (
	"context"
	"time"

	"main/middleware"
	"main/model"
	"main/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CompletionsRepo struct {
	MongoCollection *mongo.Collection
}

func GetCompletionsRepo(client *mongo.Client) *CompletionsRepo {
	collectionName := utils.GetEnvAsString("COMPLETIONS_COLLECTION", "completions")
	return &CompletionsRepo{
		MongoCollection: client.Database(utils.DatabaseName()).Collection(collectionName),
	}
}

// GetCompletion fetches the completion mark for one (habit, date) pair.
// Returns nil without error when no mark exists.
func (r *CompletionsRepo) GetCompletion(ctx context.Context, habitID, userID, date string) (*model.Completion, error) {
	timer := middleware.TrackDBOperation("find", "completions")
	defer timer.ObserveDuration()

	filter := bson.M{
		"habit_id": habitID,
		"user_id":  userID,
		"date":     date,
	}

	var completion model.Completion
	err := r.MongoCollection.FindOne(ctx, filter).Decode(&completion)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		middleware.TrackError("database")
		return nil, err
	}
	return &completion, nil
}

// SetCompletion upserts the completion mark for one (habit, date) pair.
func (r *CompletionsRepo) SetCompletion(ctx context.Context, habitID, userID, date string, completed bool) error {
	timer := middleware.TrackDBOperation("upsert", "completions")
	defer timer.ObserveDuration()

	filter := bson.M{
		"habit_id": habitID,
		"user_id":  userID,
		"date":     date,
	}
	update := bson.M{
		"$set": bson.M{
			"completed":  completed,
			"created_at": time.Now(),
		},
		"$setOnInsert": bson.M{
			"_id": uuid.New().String(),
		},
	}

	_, err := r.MongoCollection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		middleware.TrackError("database")
		return err
	}

	middleware.TrackHabitOperation("toggle")
	return nil
}

// GetCompletionLog returns the sparse date->completed map for a habit,
// covering marks dated `since` or later.
func (r *CompletionsRepo) GetCompletionLog(ctx context.Context, habitID, userID string, since string) (model.CompletionLog, error) {
	timer := middleware.TrackDBOperation("find", "completions")
	defer timer.ObserveDuration()

	filter := bson.M{
		"habit_id": habitID,
		"user_id":  userID,
		"date":     bson.M{"$gte": since},
	}

	cursor, err := r.MongoCollection.Find(ctx, filter)
	if err != nil {
		middleware.TrackError("database")
		return nil, err
	}
	defer cursor.Close(ctx)

	log := model.CompletionLog{}
	for cursor.Next(ctx) {
		var completion model.Completion
		if err := cursor.Decode(&completion); err != nil {
			return nil, err
		}
		log[completion.Date] = completion.Completed
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return log, nil
}

// CountCompletedForDate counts a user's habits marked completed on a date.
func (r *CompletionsRepo) CountCompletedForDate(ctx context.Context, userID, date string) (int, error) {
	timer := middleware.TrackDBOperation("count", "completions")
	defer timer.ObserveDuration()

	filter := bson.M{
		"user_id":   userID,
		"date":      date,
		"completed": true,
	}

	count, err := r.MongoCollection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// DeleteHabitCompletions removes every completion for a habit. Called when
// the owning habit is deleted.
func (r *CompletionsRepo) DeleteHabitCompletions(ctx context.Context, habitID, userID string) error {
	timer := middleware.TrackDBOperation("delete", "completions")
	defer timer.ObserveDuration()

	filter := bson.M{
		"habit_id": habitID,
		"user_id":  userID,
	}

	_, err := r.MongoCollection.DeleteMany(ctx, filter)
	if err != nil {
		middleware.TrackError("database")
		return err
	}
	return nil
}
