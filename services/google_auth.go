package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"main/model"
	"main/repository"
	"main/utils"
)

// ErrInvalidGoogleToken is returned when Google rejects the presented OAuth
// access token.
var ErrInvalidGoogleToken = errors.New("invalid google token")

// DemoGoogleToken short-circuits token verification for local demos and
// automated tests.
const DemoGoogleToken = "mock-google-token-for-demo"

type GoogleUserData struct {
	GoogleID string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Picture  string `json:"picture"`
}

var googleHTTPClient = &http.Client{Timeout: 10 * time.Second}

// VerifyGoogleToken validates an OAuth access token against Google and
// returns the token owner's profile.
func VerifyGoogleToken(ctx context.Context, token string) (*GoogleUserData, error) {
	if token == DemoGoogleToken {
		return &GoogleUserData{
			GoogleID: "demo-user-123",
			Email:    "demo@habittracker.com",
			Name:     "Demo User",
			Picture:  "https://via.placeholder.com/150",
		}, nil
	}

	infoURL := "https://oauth2.googleapis.com/tokeninfo?access_token=" + url.QueryEscape(token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, infoURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := googleHTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not verify google token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrInvalidGoogleToken
	}

	profileReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		"https://www.googleapis.com/oauth2/v2/userinfo", nil)
	if err != nil {
		return nil, err
	}
	profileReq.Header.Set("Authorization", "Bearer "+token)

	profileResp, err := googleHTTPClient.Do(profileReq)
	if err != nil {
		return nil, fmt.Errorf("could not fetch user profile: %w", err)
	}
	defer profileResp.Body.Close()

	if profileResp.StatusCode != http.StatusOK {
		return nil, ErrInvalidGoogleToken
	}

	var profile GoogleUserData
	if err := json.NewDecoder(profileResp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("could not decode user profile: %w", err)
	}

	return &profile, nil
}

// GetOrCreateUser returns the existing user for the Google account, updating
// the mirrored profile fields, or creates a new one.
func GetOrCreateUser(ctx context.Context, userRepo *repository.UserRepo, data *GoogleUserData) (*model.User, error) {
	existing, err := userRepo.FindUserByGoogleID(ctx, data.GoogleID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		// Refresh profile info in case it changed at the provider
		if err := userRepo.UpdateUserProfile(ctx, existing.UserID, data.Name, data.Email, data.Picture); err != nil {
			return nil, err
		}
		existing.Name = data.Name
		existing.Email = data.Email
		existing.Picture = data.Picture
		return existing, nil
	}

	user := &model.User{
		UserID:   utils.GenerateUserID(),
		GoogleID: data.GoogleID,
		Email:    data.Email,
		Name:     data.Name,
		Picture:  data.Picture,
	}
	if err := userRepo.AddUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
