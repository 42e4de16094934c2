package dto

import "main/model"

type GoogleAuthRequest struct {
	Token string `json:"token" binding:"required"`
}

type UserResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

func ToUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:      user.UserID,
		Email:   user.Email,
		Name:    user.Name,
		Picture: user.Picture,
	}
}
