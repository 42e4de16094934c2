package handler

import (
	"log"
	"strings"

	"main/dto"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// GoogleAuthHandler exchanges a Google OAuth access token for an API token,
// creating the user on first login.
func GoogleAuthHandler(c *gin.Context, userRepo *repository.UserRepo) {
	var req dto.GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	googleUser, err := services.VerifyGoogleToken(c.Request.Context(), req.Token)
	if err != nil {
		middleware.TrackAuthAttempt("failure", "google")
		utils.Unauthorized(c, "Authentication failed")
		return
	}

	user, err := services.GetOrCreateUser(c.Request.Context(), userRepo, googleUser)
	if err != nil {
		log.Printf("failed to get or create user: %v", err)
		utils.InternalError(c, "Failed to create user")
		return
	}

	token, err := services.GenerateToken(user.UserID)
	if err != nil {
		utils.InternalError(c, "Failed to generate token")
		return
	}

	middleware.TrackAuthAttempt("success", "google")
	utils.Success(c, dto.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        dto.ToUserResponse(user),
	})
}

// GetProfileHandler returns the authenticated user's profile.
func GetProfileHandler(c *gin.Context, userRepo *repository.UserRepo) {
	userID := c.GetString("user_id")

	user, err := userRepo.FindUser(c.Request.Context(), userID)
	if err != nil {
		log.Printf("failed to fetch user %s: %v", userID, err)
		utils.InternalError(c, "Failed to fetch user")
		return
	}
	if user == nil {
		utils.NotFound(c, "User not found")
		return
	}

	utils.Success(c, dto.ToUserResponse(user))
}

// LogoutHandler blacklists the presented token so the client's discarded
// session cannot be replayed.
func LogoutHandler(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	if err := services.BlacklistToken(tokenString); err != nil {
		log.Printf("failed to blacklist token: %v", err)
		utils.InternalError(c, "Failed to log out")
		return
	}

	middleware.TrackAuthAttempt("success", "logout")
	utils.Success(c, gin.H{"message": "Logged out successfully"})
}
