package handler

import (
	"log"
	"time"

	"main/dto"
	"main/model"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// SubscribeHandler stores the browser's push subscription on the user,
// replacing any previous device.
func SubscribeHandler(c *gin.Context, userRepo *repository.UserRepo) {
	userID := c.GetString("user_id")

	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid subscription payload")
		return
	}

	sub := &model.PushSubscription{
		Endpoint:   req.Subscription.Endpoint,
		P256dh:     req.Subscription.Keys.P256dh,
		Auth:       req.Subscription.Keys.Auth,
		DeviceName: utils.GenerateDeviceName(c.GetHeader("User-Agent")),
		CreatedAt:  time.Now(),
	}

	if err := userRepo.SetSubscription(c.Request.Context(), userID, sub); err != nil {
		log.Printf("failed to store subscription for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to subscribe to notifications")
		return
	}

	utils.Success(c, gin.H{"message": "Successfully subscribed to notifications"})
}

// UnsubscribeHandler removes the stored subscription. A missing
// subscription is reported, not treated as an error.
func UnsubscribeHandler(c *gin.Context, userRepo *repository.UserRepo) {
	userID := c.GetString("user_id")

	existed, err := userRepo.ClearSubscription(c.Request.Context(), userID)
	if err != nil {
		log.Printf("failed to clear subscription for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to unsubscribe")
		return
	}

	utils.Success(c, dto.UnsubscribeResponse{Existed: existed})
}

// VAPIDPublicKeyHandler exposes the application-server key browsers
// subscribe against.
func VAPIDPublicKeyHandler(c *gin.Context, sender *services.PushSender) {
	key := sender.PublicKey()
	if key == "" {
		utils.NotFound(c, "Push notifications are not configured")
		return
	}
	utils.Success(c, dto.VAPIDPublicKeyResponse{PublicKey: key})
}

// TestNotificationHandler sends an immediate push to the caller's
// subscribed device.
func TestNotificationHandler(c *gin.Context, userRepo *repository.UserRepo, sender *services.PushSender) {
	userID := c.GetString("user_id")

	// The body is optional; an empty request sends the default message.
	var req dto.TestNotificationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequest(c, "Invalid request body")
			return
		}
	}
	if req.Message == "" {
		req.Message = "Test notification from Habit Tracker!"
	}

	user, err := userRepo.FindUser(c.Request.Context(), userID)
	if err != nil {
		log.Printf("failed to fetch user %s: %v", userID, err)
		utils.InternalError(c, "Failed to fetch user")
		return
	}
	if user == nil || user.Subscription == nil {
		utils.BadRequest(c, "User not subscribed to notifications")
		return
	}

	err = sender.Send(c.Request.Context(), user.Subscription, services.TestNotificationPayload(req.Message))
	if err == services.ErrSubscriptionGone {
		if _, clearErr := userRepo.ClearSubscription(c.Request.Context(), userID); clearErr != nil {
			log.Printf("failed to prune subscription for user %s: %v", userID, clearErr)
		}
		utils.BadRequest(c, "Subscription is no longer valid")
		return
	}
	if err != nil {
		log.Printf("failed to send test notification to user %s: %v", userID, err)
		utils.InternalError(c, "Failed to send test notification")
		return
	}

	utils.Success(c, gin.H{"message": "Test notification sent successfully"})
}
