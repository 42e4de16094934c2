package services

import (
	"context"
	"errors"
	"testing"

	"main/model"
)

// fakePlatform is a scriptable PushPlatform for exercising the subscriber
// lifecycle without a browser.
type fakePlatform struct {
	pushSupported          bool
	notificationsSupported bool

	registerErr   error
	existing      *model.PushSubscription
	permission    bool
	permissionErr error
	subscribeErr  error
	hasSub        bool

	registerCalls   int
	permissionCalls int
	subscribeCalls  int
	shown           []NotificationPayload
}

func (f *fakePlatform) PushSupported() bool          { return f.pushSupported }
func (f *fakePlatform) NotificationsSupported() bool { return f.notificationsSupported }

func (f *fakePlatform) RegisterWorker(ctx context.Context) error {
	f.registerCalls++
	return f.registerErr
}

func (f *fakePlatform) ExistingSubscription(ctx context.Context) (*model.PushSubscription, error) {
	return f.existing, nil
}

func (f *fakePlatform) RequestPermission(ctx context.Context) (bool, error) {
	f.permissionCalls++
	return f.permission, f.permissionErr
}

func (f *fakePlatform) Subscribe(ctx context.Context, applicationServerKey string) (*model.PushSubscription, error) {
	f.subscribeCalls++
	if f.subscribeErr != nil {
		return nil, f.subscribeErr
	}
	f.hasSub = true
	return &model.PushSubscription{
		Endpoint: "https://push.example.com/endpoint",
		P256dh:   "p256dh-key",
		Auth:     "auth-secret",
	}, nil
}

func (f *fakePlatform) Unsubscribe(ctx context.Context) (bool, error) {
	existed := f.hasSub
	f.hasSub = false
	return existed, nil
}

func (f *fakePlatform) ShowNotification(payload NotificationPayload) error {
	f.shown = append(f.shown, payload)
	return nil
}

func supportedPlatform() *fakePlatform {
	return &fakePlatform{
		pushSupported:          true,
		notificationsSupported: true,
		permission:             true,
	}
}

func TestSubscriberInitialize(t *testing.T) {
	ctx := context.Background()

	t.Run("Unsupported Platform", func(t *testing.T) {
		sub := NewSubscriber(&fakePlatform{}, "server-key")
		if err := sub.Initialize(ctx); !errors.Is(err, ErrUnsupported) {
			t.Errorf("expected ErrUnsupported, got %v", err)
		}
		if sub.State() != StateUnregistered {
			t.Errorf("expected unregistered, got %s", sub.State())
		}
	})

	t.Run("Registers Worker", func(t *testing.T) {
		platform := supportedPlatform()
		sub := NewSubscriber(platform, "server-key")
		if err := sub.Initialize(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if platform.registerCalls != 1 {
			t.Errorf("expected 1 register call, got %d", platform.registerCalls)
		}
		if sub.State() != StateRegistered {
			t.Errorf("expected registered, got %s", sub.State())
		}
	})

	t.Run("Adopts Existing Subscription", func(t *testing.T) {
		platform := supportedPlatform()
		platform.existing = &model.PushSubscription{Endpoint: "https://push.example.com/old"}
		platform.hasSub = true
		sub := NewSubscriber(platform, "server-key")
		if err := sub.Initialize(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sub.State() != StateSubscribed {
			t.Errorf("expected subscribed, got %s", sub.State())
		}
	})

	t.Run("Register Failure Propagates", func(t *testing.T) {
		platform := supportedPlatform()
		platform.registerErr = errors.New("registration failed")
		sub := NewSubscriber(platform, "server-key")
		if err := sub.Initialize(ctx); err == nil {
			t.Error("expected error")
		}
	})
}

func TestSubscriberPermission(t *testing.T) {
	ctx := context.Background()

	t.Run("Granted", func(t *testing.T) {
		platform := supportedPlatform()
		sub := NewSubscriber(platform, "server-key")
		if err := sub.Initialize(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		granted, err := sub.RequestPermission(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !granted {
			t.Error("expected permission granted")
		}
		if sub.State() != StatePermissionGranted {
			t.Errorf("expected permission_granted, got %s", sub.State())
		}
	})

	t.Run("Denied", func(t *testing.T) {
		platform := supportedPlatform()
		platform.permission = false
		sub := NewSubscriber(platform, "server-key")
		if err := sub.Initialize(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		granted, err := sub.RequestPermission(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if granted {
			t.Error("expected permission denied")
		}
		if sub.State() != StatePermissionDenied {
			t.Errorf("expected permission_denied, got %s", sub.State())
		}
	})

	t.Run("No Notification API", func(t *testing.T) {
		platform := supportedPlatform()
		platform.notificationsSupported = false
		sub := NewSubscriber(platform, "server-key")
		if err := sub.Initialize(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := sub.RequestPermission(ctx); !errors.Is(err, ErrUnsupported) {
			t.Errorf("expected ErrUnsupported, got %v", err)
		}
	})
}

func TestSubscriberSubscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("Before Initialize", func(t *testing.T) {
		sub := NewSubscriber(supportedPlatform(), "server-key")
		if _, err := sub.Subscribe(ctx); !errors.Is(err, ErrNotReady) {
			t.Errorf("expected ErrNotReady, got %v", err)
		}
	})

	t.Run("Prompts For Permission First", func(t *testing.T) {
		platform := supportedPlatform()
		sub := NewSubscriber(platform, "server-key")
		if err := sub.Initialize(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := sub.Subscribe(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || got.Endpoint == "" {
			t.Fatal("expected a subscription")
		}
		if platform.permissionCalls != 1 {
			t.Errorf("expected 1 permission prompt, got %d", platform.permissionCalls)
		}
		if sub.State() != StateSubscribed {
			t.Errorf("expected subscribed, got %s", sub.State())
		}
	})

	t.Run("Denied Permission Blocks Subscribe", func(t *testing.T) {
		platform := supportedPlatform()
		platform.permission = false
		sub := NewSubscriber(platform, "server-key")
		if err := sub.Initialize(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := sub.Subscribe(ctx); !errors.Is(err, ErrPermissionDenied) {
			t.Errorf("expected ErrPermissionDenied, got %v", err)
		}
		if platform.subscribeCalls != 0 {
			t.Errorf("expected no subscribe calls, got %d", platform.subscribeCalls)
		}
	})

	t.Run("Idempotent While Subscribed", func(t *testing.T) {
		platform := supportedPlatform()
		sub := NewSubscriber(platform, "server-key")
		if err := sub.Initialize(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		first, err := sub.Subscribe(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := sub.Subscribe(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first != second {
			t.Error("expected the same subscription handle")
		}
		if platform.subscribeCalls != 1 {
			t.Errorf("expected 1 platform subscribe, got %d", platform.subscribeCalls)
		}
	})
}

func TestSubscriberUnsubscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("Existing Subscription", func(t *testing.T) {
		platform := supportedPlatform()
		sub := NewSubscriber(platform, "server-key")
		if err := sub.Initialize(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := sub.Subscribe(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		existed, err := sub.Unsubscribe(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !existed {
			t.Error("expected existed=true")
		}
		if sub.State() != StateUnsubscribed {
			t.Errorf("expected unsubscribed, got %s", sub.State())
		}
	})

	t.Run("Nothing To Remove", func(t *testing.T) {
		platform := supportedPlatform()
		sub := NewSubscriber(platform, "server-key")
		if err := sub.Initialize(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		existed, err := sub.Unsubscribe(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if existed {
			t.Error("expected existed=false")
		}
	})
}

func TestShowNotification(t *testing.T) {
	ctx := context.Background()

	t.Run("Requires Registration", func(t *testing.T) {
		sub := NewSubscriber(supportedPlatform(), "server-key")
		err := sub.ShowNotification(NotificationPayload{Title: "hello"})
		if !errors.Is(err, ErrNotReady) {
			t.Errorf("expected ErrNotReady, got %v", err)
		}
	})

	t.Run("Delivers Payload", func(t *testing.T) {
		platform := supportedPlatform()
		sub := NewSubscriber(platform, "server-key")
		if err := sub.Initialize(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := sub.ShowNotification(NotificationPayload{Title: "hello"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(platform.shown) != 1 || platform.shown[0].Title != "hello" {
			t.Errorf("unexpected shown notifications: %+v", platform.shown)
		}
	})
}

func TestParsePushPayload(t *testing.T) {
	t.Run("Empty Payload Uses Defaults", func(t *testing.T) {
		got := ParsePushPayload(nil)
		if got.Title != DefaultNotificationTitle || got.Body != DefaultNotificationBody {
			t.Errorf("unexpected defaults: %+v", got)
		}
		if got.Icon == "" || got.Badge == "" {
			t.Error("expected default icon and badge")
		}
	})

	t.Run("Malformed JSON Uses Defaults", func(t *testing.T) {
		got := ParsePushPayload([]byte("{not json"))
		if got.Title != DefaultNotificationTitle || got.Body != DefaultNotificationBody {
			t.Errorf("unexpected defaults: %+v", got)
		}
	})

	t.Run("Valid Payload Passes Through", func(t *testing.T) {
		got := ParsePushPayload([]byte(`{"title":"Drink Water","body":"Don't forget!","tag":"habit-1"}`))
		if got.Title != "Drink Water" || got.Body != "Don't forget!" || got.Tag != "habit-1" {
			t.Errorf("unexpected payload: %+v", got)
		}
	})

	t.Run("Partial Payload Fills Gaps", func(t *testing.T) {
		got := ParsePushPayload([]byte(`{"title":"Drink Water"}`))
		if got.Title != "Drink Water" {
			t.Errorf("unexpected title: %q", got.Title)
		}
		if got.Body != DefaultNotificationBody {
			t.Errorf("expected default body, got %q", got.Body)
		}
	})
}

func TestHandleNotificationClick(t *testing.T) {
	appURL := "https://habits.example.com"

	tests := []struct {
		name        string
		action      string
		openWindows []string
		want        ClickOutcome
	}{
		{"Dismiss Action", "dismiss", []string{appURL}, ClickOutcome{Kind: ClickNone}},
		{"Close Action", "close", nil, ClickOutcome{Kind: ClickNone}},
		{"Focus Open Window", "", []string{"https://other.example.com", appURL}, ClickOutcome{Kind: ClickFocus, URL: appURL}},
		{"Open New Window", "", []string{"https://other.example.com"}, ClickOutcome{Kind: ClickOpen, URL: appURL}},
		{"Complete Action Opens App", "complete", nil, ClickOutcome{Kind: ClickOpen, URL: appURL}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HandleNotificationClick(tt.action, appURL, tt.openWindows)
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
