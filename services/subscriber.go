package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"main/model"
)

// Subscriber drives one browser installation's opt-in to push reminders. The
// platform capabilities (service worker, push manager, permission prompt)
// sit behind the PushPlatform interface so the lifecycle can run against a
// fake in tests instead of a real browser.

type SubscriberState string

const (
	StateUnregistered      SubscriberState = "unregistered"
	StateRegistered        SubscriberState = "registered"
	StatePermissionDenied  SubscriberState = "permission_denied"
	StatePermissionGranted SubscriberState = "permission_granted"
	StateSubscribed        SubscriberState = "subscribed"
	StateUnsubscribed      SubscriberState = "unsubscribed"
)

var (
	// ErrUnsupported means the platform lacks a required capability. Callers
	// must treat this as a degraded mode, not a failure.
	ErrUnsupported = errors.New("push not supported on this platform")
	// ErrPermissionDenied means the user declined the permission prompt.
	ErrPermissionDenied = errors.New("notification permission denied")
	// ErrNotReady means no service worker registration exists yet.
	ErrNotReady = errors.New("service worker not registered")
)

// Default notification content used when a push payload is missing or
// malformed. A push event must never be dropped silently; the platform can
// revoke the subscription over undelivered pushes.
const (
	DefaultNotificationTitle = "Habit Tracker"
	DefaultNotificationBody  = "Time to check your habits!"
)

// PushPlatform abstracts the browser push capabilities the subscriber
// drives.
type PushPlatform interface {
	// PushSupported reports whether service workers and a push manager
	// exist at all.
	PushSupported() bool
	// NotificationsSupported reports whether a permission API exists.
	NotificationsSupported() bool
	// RegisterWorker installs the service worker.
	RegisterWorker(ctx context.Context) error
	// ExistingSubscription returns the active subscription, or nil.
	ExistingSubscription(ctx context.Context) (*model.PushSubscription, error)
	// RequestPermission prompts the user. The result is cached by the
	// platform, not by the subscriber.
	RequestPermission(ctx context.Context) (bool, error)
	// Subscribe creates a push subscription against the application-server
	// key.
	Subscribe(ctx context.Context, applicationServerKey string) (*model.PushSubscription, error)
	// Unsubscribe tears down the subscription, reporting whether one
	// existed.
	Unsubscribe(ctx context.Context) (bool, error)
	// ShowNotification displays an immediate notification.
	ShowNotification(payload NotificationPayload) error
}

type Subscriber struct {
	mu           sync.Mutex
	platform     PushPlatform
	appServerKey string
	state        SubscriberState
	registered   bool
	granted      bool
	subscription *model.PushSubscription
}

// NewSubscriber builds a subscriber around a platform and the configured
// application-server (VAPID public) key.
func NewSubscriber(platform PushPlatform, appServerKey string) *Subscriber {
	return &Subscriber{
		platform:     platform,
		appServerKey: appServerKey,
		state:        StateUnregistered,
	}
}

func (s *Subscriber) State() SubscriberState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Initialize registers the service worker and adopts any subscription that
// already exists. On platforms without push support it returns
// ErrUnsupported; callers run without reminders in that case.
func (s *Subscriber) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.platform.PushSupported() {
		return ErrUnsupported
	}

	if err := s.platform.RegisterWorker(ctx); err != nil {
		return err
	}
	s.registered = true

	existing, err := s.platform.ExistingSubscription(ctx)
	if err != nil {
		return err
	}
	if existing != nil {
		s.subscription = existing
		s.state = StateSubscribed
		return nil
	}

	s.state = StateRegistered
	return nil
}

// RequestPermission prompts the platform permission dialog once per call.
func (s *Subscriber) RequestPermission(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requestPermissionLocked(ctx)
}

func (s *Subscriber) requestPermissionLocked(ctx context.Context) (bool, error) {
	if !s.platform.NotificationsSupported() {
		return false, ErrUnsupported
	}

	granted, err := s.platform.RequestPermission(ctx)
	if err != nil {
		return false, err
	}

	s.granted = granted
	if s.state != StateSubscribed {
		if granted {
			s.state = StatePermissionGranted
		} else {
			s.state = StatePermissionDenied
		}
	}
	return granted, nil
}

// Subscribe creates the push subscription, prompting for permission first if
// it has not been granted. Subscribing while already subscribed returns the
// existing handle without touching the platform again.
func (s *Subscriber) Subscribe(ctx context.Context) (*model.PushSubscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateSubscribed && s.subscription != nil {
		return s.subscription, nil
	}
	if !s.registered {
		return nil, ErrNotReady
	}

	if !s.granted {
		granted, err := s.requestPermissionLocked(ctx)
		if err != nil {
			return nil, err
		}
		if !granted {
			return nil, ErrPermissionDenied
		}
	}

	sub, err := s.platform.Subscribe(ctx, s.appServerKey)
	if err != nil {
		return nil, err
	}

	s.subscription = sub
	s.state = StateSubscribed
	return sub, nil
}

// Unsubscribe tears down the platform subscription if one exists. A missing
// subscription is a valid outcome, not an error.
func (s *Subscriber) Unsubscribe(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existed, err := s.platform.Unsubscribe(ctx)
	if err != nil {
		return false, err
	}

	s.subscription = nil
	s.state = StateUnsubscribed
	return existed, nil
}

// ShowNotification displays an immediate notification through the
// registered worker.
func (s *Subscriber) ShowNotification(payload NotificationPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.registered {
		return ErrNotReady
	}
	return s.platform.ShowNotification(payload)
}

// ParsePushPayload turns an inbound push message into the notification to
// display. Malformed or empty payloads fall back to the defaults; exactly
// one notification always results. It deliberately reads no subscriber
// state: push delivery runs in a worker context outside the application's
// lifetime.
func ParsePushPayload(data []byte) NotificationPayload {
	fallback := NotificationPayload{
		Title: DefaultNotificationTitle,
		Body:  DefaultNotificationBody,
		Icon:  "/icon-192x192.png",
		Badge: "/badge-72x72.png",
	}

	if len(data) == 0 {
		return fallback
	}

	var payload NotificationPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fallback
	}

	if payload.Title == "" {
		payload.Title = fallback.Title
	}
	if payload.Body == "" {
		payload.Body = fallback.Body
	}
	if payload.Icon == "" {
		payload.Icon = fallback.Icon
	}
	if payload.Badge == "" {
		payload.Badge = fallback.Badge
	}
	return payload
}

// ClickOutcome is what the worker does after a notification interaction.
type ClickOutcome struct {
	Kind ClickOutcomeKind
	URL  string
}

type ClickOutcomeKind string

const (
	// ClickFocus focuses an already-open application window.
	ClickFocus ClickOutcomeKind = "focus"
	// ClickOpen opens a new window at the application URL.
	ClickOpen ClickOutcomeKind = "open"
	// ClickNone dismisses with no further action.
	ClickNone ClickOutcomeKind = "none"
)

// HandleNotificationClick resolves a notification interaction. The
// notification is always closed first; a dismiss-class action does nothing
// further, otherwise an open window at appURL is focused or a new one is
// opened. Pure function of its inputs for the same worker-context reason as
// ParsePushPayload.
func HandleNotificationClick(action, appURL string, openWindows []string) ClickOutcome {
	if action == "dismiss" || action == "close" {
		return ClickOutcome{Kind: ClickNone}
	}

	for _, window := range openWindows {
		if window == appURL {
			return ClickOutcome{Kind: ClickFocus, URL: window}
		}
	}
	return ClickOutcome{Kind: ClickOpen, URL: appURL}
}
