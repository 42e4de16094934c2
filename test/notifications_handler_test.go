package test

import (
	"context"
	"net/http"
	"os"
	"testing"

	"main/config"
	"main/handler"
	"main/model"
	"main/repository"
	"main/services"
	"main/test/testutils"

	"github.com/gin-gonic/gin"
)

func setupNotificationsRouter(t *testing.T) (*gin.Engine, *repository.UserRepo, func()) {
	t.Helper()

	testutils.SetupTestEnvironment()
	client, cleanup := testutils.SetupTestDB(t)

	db := client.Database(os.Getenv("MONGO_DB_TEST"))
	_ = db.Collection("users").Drop(context.Background())

	userRepo := &repository.UserRepo{
		MongoCollection: db.Collection("users"),
	}
	sender := services.NewPushSender(config.PushConfig{})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	notifications := router.Group("/api/notifications", mockAuth())
	{
		notifications.POST("/subscribe", func(c *gin.Context) {
			handler.SubscribeHandler(c, userRepo)
		})
		notifications.DELETE("/subscribe", func(c *gin.Context) {
			handler.UnsubscribeHandler(c, userRepo)
		})
		notifications.POST("/test", func(c *gin.Context) {
			handler.TestNotificationHandler(c, userRepo, sender)
		})
	}
	router.GET("/api/notifications/vapid-public-key", func(c *gin.Context) {
		handler.VAPIDPublicKeyHandler(c, sender)
	})

	return router, userRepo, cleanup
}

func TestSubscriptionLifecycle(t *testing.T) {
	router, userRepo, cleanup := setupNotificationsRouter(t)
	defer cleanup()

	ctx := context.Background()
	userID := "notify-user"
	if err := userRepo.AddUser(ctx, &model.User{
		UserID: userID,
		Email:  "notify@example.com",
		Name:   "Notify User",
	}); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	payload := gin.H{
		"subscription": gin.H{
			"endpoint": "https://push.example.com/endpoint",
			"keys": gin.H{
				"p256dh": "p256dh-key",
				"auth":   "auth-secret",
			},
		},
	}

	t.Run("Subscribe Stores Device", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/notifications/subscribe", userID, payload)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		user, err := userRepo.FindUser(ctx, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Subscription == nil {
			t.Fatal("expected stored subscription")
		}
		if user.Subscription.Endpoint != "https://push.example.com/endpoint" {
			t.Errorf("unexpected endpoint %q", user.Subscription.Endpoint)
		}
		if user.Subscription.DeviceName == "" {
			t.Error("expected generated device name")
		}
	})

	t.Run("Subscribe Rejects Incomplete Payload", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/notifications/subscribe", userID, gin.H{
			"subscription": gin.H{"endpoint": "https://push.example.com/no-keys"},
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("Unsubscribe Reports Existence", func(t *testing.T) {
		w := doJSON(t, router, "DELETE", "/api/notifications/subscribe", userID, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		data := decodeData(t, w)
		if data["existed"] != true {
			t.Errorf("expected existed=true, got %v", data["existed"])
		}

		w = doJSON(t, router, "DELETE", "/api/notifications/subscribe", userID, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		data = decodeData(t, w)
		if data["existed"] != false {
			t.Errorf("expected existed=false on repeat, got %v", data["existed"])
		}
	})

	t.Run("Test Push Without Subscription", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/notifications/test", userID, gin.H{"message": "hi"})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("VAPID Key Unconfigured", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/api/notifications/vapid-public-key", "", nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404 without keys, got %d", w.Code)
		}
	})
}
