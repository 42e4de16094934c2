package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	usersCollection := db.Collection("users")
	habitsCollection := db.Collection("habits")
	completionsCollection := db.Collection("completions")

	userIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetName("user_id_unique").
				SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "google_id", Value: 1}},
			Options: options.Index().
				SetName("google_id_index").
				SetSparse(true),
		},
	}

	habitIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().
				SetName("user_habits_date").
				SetUnique(false),
		},
		{
			Keys: bson.D{
				{Key: "notification.enabled", Value: 1},
			},
			Options: options.Index().
				SetName("reminder_enabled_index"),
		},
	}

	completionIndexes := []mongo.IndexModel{
		// One mark per habit per calendar date
		{
			Keys: bson.D{
				{Key: "habit_id", Value: 1},
				{Key: "user_id", Value: 1},
				{Key: "date", Value: 1},
			},
			Options: options.Index().
				SetName("habit_date_unique").
				SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "date", Value: 1},
				{Key: "completed", Value: 1},
			},
			Options: options.Index().
				SetName("user_date_completed"),
		},
	}

	if _, err := usersCollection.Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create users indexes: %w", err)
	}
	if _, err := habitsCollection.Indexes().CreateMany(ctx, habitIndexes); err != nil {
		return fmt.Errorf("failed to create habits indexes: %w", err)
	}
	if _, err := completionsCollection.Indexes().CreateMany(ctx, completionIndexes); err != nil {
		return fmt.Errorf("failed to create completions indexes: %w", err)
	}

	log.Println("MongoDB indexes created")
	return nil
}
