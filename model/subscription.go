package model

import "time"

// PushSubscription is the platform-issued endpoint/key bundle a browser hands
// us when it opts into push. The backend persists it to address later pushes
// at that device; at most one is kept per user.
type PushSubscription struct {
	Endpoint   string    `bson:"endpoint" json:"endpoint" binding:"required"`
	P256dh     string    `bson:"p256dh" json:"p256dh"`
	Auth       string    `bson:"auth" json:"auth"`
	DeviceName string    `bson:"device_name,omitempty" json:"device_name,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
