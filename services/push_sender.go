package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"main/config"
	"main/middleware"
	"main/model"

	webpush "github.com/SherClockHolmes/webpush-go"
)

// ErrSubscriptionGone signals that the push relay no longer knows the
// endpoint. The stored subscription should be pruned.
var ErrSubscriptionGone = errors.New("push subscription gone")

// NotificationAction is a button rendered on the notification.
type NotificationAction struct {
	Action string `json:"action"`
	Title  string `json:"title"`
}

// NotificationPayload is the JSON body delivered through the push relay and
// rendered by the client's service worker.
type NotificationPayload struct {
	Title              string               `json:"title"`
	Body               string               `json:"body"`
	Icon               string               `json:"icon,omitempty"`
	Badge              string               `json:"badge,omitempty"`
	Tag                string               `json:"tag,omitempty"`
	RequireInteraction bool                 `json:"requireInteraction,omitempty"`
	Actions            []NotificationAction `json:"actions,omitempty"`
	Data               map[string]any       `json:"data,omitempty"`
}

// HabitReminderPayload builds the reminder notification for a habit.
func HabitReminderPayload(habitName string) NotificationPayload {
	return NotificationPayload{
		Title:              "Habit Reminder",
		Body:               fmt.Sprintf("Time to complete: %s", habitName),
		Icon:               "/icon-192x192.png",
		Badge:              "/badge-72x72.png",
		Tag:                "habit-reminder",
		RequireInteraction: true,
		Actions: []NotificationAction{
			{Action: "complete", Title: "Mark Complete"},
			{Action: "dismiss", Title: "Dismiss"},
		},
	}
}

// TestNotificationPayload builds the payload for a user-triggered test push.
func TestNotificationPayload(message string) NotificationPayload {
	return NotificationPayload{
		Title: "Test Notification",
		Body:  message,
		Icon:  "/icon-192x192.png",
		Tag:   "test-notification",
	}
}

// PushSender delivers notifications to stored subscriptions through a web
// push relay, signing each request with the configured VAPID key pair.
type PushSender struct {
	cfg config.PushConfig
}

func NewPushSender(cfg config.PushConfig) *PushSender {
	return &PushSender{cfg: cfg}
}

// PublicKey exposes the application-server key clients subscribe against.
func (s *PushSender) PublicKey() string {
	return s.cfg.VAPIDPublicKey
}

// Send delivers one payload to one subscription. Returns
// ErrSubscriptionGone when the relay reports the endpoint no longer exists.
func (s *PushSender) Send(ctx context.Context, sub *model.PushSubscription, payload NotificationPayload) error {
	if !s.cfg.Enabled() {
		return errors.New("push sending is not configured")
	}
	if sub == nil {
		return errors.New("no subscription to send to")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %v", err)
	}

	resp, err := webpush.SendNotificationWithContext(ctx, body, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      s.cfg.Subscriber,
		VAPIDPublicKey:  s.cfg.VAPIDPublicKey,
		VAPIDPrivateKey: s.cfg.VAPIDPrivateKey,
		TTL:             60,
	})
	if err != nil {
		middleware.TrackPushDelivery("failed")
		return fmt.Errorf("failed to send notification: %v", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		middleware.TrackPushDelivery("gone")
		return ErrSubscriptionGone
	case resp.StatusCode >= 400:
		middleware.TrackPushDelivery("failed")
		return fmt.Errorf("push relay returned status %d", resp.StatusCode)
	}

	middleware.TrackPushDelivery("sent")
	return nil
}
