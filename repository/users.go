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

type UserRepo struct {
	MongoCollection *mongo.Collection
}

func GetUserRepo(client *mongo.Client) *UserRepo {
	collectionName := utils.GetEnvAsString("USERS_COLLECTION", "users")
	return &UserRepo{
		MongoCollection: client.Database(utils.DatabaseName()).Collection(collectionName),
	}
}

// AddUser inserts a new user
func (r *UserRepo) AddUser(ctx context.Context, user *model.User) error {
	timer := middleware.TrackDBOperation("insert", "users")
	defer timer.ObserveDuration()

	if user.UserID == "" || user.Email == "" {
		middleware.TrackError("database")
		return errors.New("user ID and email required")
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.MongoCollection.InsertOne(ctx, user)
	if err != nil {
		middleware.TrackError("database")
		return errors.New("failed to add user to database")
	}

	return nil
}

// FindUser looks up a user by ID. Returns nil without error when absent.
func (r *UserRepo) FindUser(ctx context.Context, userID string) (*model.User, error) {
	timer := middleware.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	filter := bson.D{{Key: "user_id", Value: userID}}

	err := r.MongoCollection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		middleware.TrackError("database")
		return nil, err
	}

	return &user, nil
}

// FindUserByGoogleID looks up a user by Google account ID. Returns nil
// without error when absent.
func (r *UserRepo) FindUserByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	timer := middleware.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	filter := bson.D{{Key: "google_id", Value: googleID}}

	err := r.MongoCollection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		middleware.TrackError("database")
		return nil, err
	}

	return &user, nil
}

// UpdateUserProfile refreshes the fields mirrored from the identity provider.
func (r *UserRepo) UpdateUserProfile(ctx context.Context, userID string, name, email, picture string) error {
	timer := middleware.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": userID}
	update := bson.M{
		"$set": bson.M{
			"name":       name,
			"email":      email,
			"picture":    picture,
			"updated_at": time.Now(),
		},
	}

	_, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		middleware.TrackError("database")
		return err
	}
	return nil
}

// SetSubscription stores the push subscription for a user, replacing any
// previous one. At most one subscription is kept per user.
func (r *UserRepo) SetSubscription(ctx context.Context, userID string, sub *model.PushSubscription) error {
	timer := middleware.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": userID}
	update := bson.M{
		"$set": bson.M{
			"push_subscription": sub,
			"updated_at":        time.Now(),
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		middleware.TrackError("database")
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("user not found")
	}
	return nil
}

// ClearSubscription removes the stored push subscription. Returns whether one
// existed to remove.
func (r *UserRepo) ClearSubscription(ctx context.Context, userID string) (bool, error) {
	timer := middleware.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": userID, "push_subscription": bson.M{"$ne": nil}}
	update := bson.M{
		"$unset": bson.M{"push_subscription": ""},
		"$set":   bson.M{"updated_at": time.Now()},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		middleware.TrackError("database")
		return false, err
	}
	return result.ModifiedCount > 0, nil
}

// FindSubscribedUsers returns users holding an active push subscription.
func (r *UserRepo) FindSubscribedUsers(ctx context.Context) ([]*model.User, error) {
	timer := middleware.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	cursor, err := r.MongoCollection.Find(ctx,
		bson.M{"push_subscription": bson.M{"$ne": nil}})
	if err != nil {
		middleware.TrackError("database")
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []*model.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
