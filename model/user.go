package model

import "time"

type User struct {
	UserID       string            `bson:"user_id" json:"user_id"`
	GoogleID     string            `bson:"google_id,omitempty" json:"google_id,omitempty"`
	Email        string            `bson:"email" json:"email" validate:"required,email"`
	Name         string            `bson:"name" json:"name" validate:"required"`
	Picture      string            `bson:"picture,omitempty" json:"picture,omitempty"`
	Subscription *PushSubscription `bson:"push_subscription,omitempty" json:"push_subscription,omitempty"`
	CreatedAt    time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time         `bson:"updated_at" json:"updated_at"`
}
