package oauthprovider

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/dwestland/auth-starter/internal/domain/auth"
)

type githubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

// fetchGitHubProfile reads /user and, for the address and its verification
// state, /user/emails.
func fetchGitHubProfile(ctx context.Context, client *http.Client, apiBase string) (*auth.Profile, error) {
	var user githubUser
	if err := getJSON(ctx, client, apiBase+"/user", &user); err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, errors.New("github user has no id")
	}

	profile := &auth.Profile{
		ProviderUserID: strconv.FormatInt(user.ID, 10),
		Email:          user.Email,
		Name:           user.Name,
		Image:          user.AvatarURL,
	}
	if profile.Name == "" {
		profile.Name = user.Login
	}

	var emails []githubEmail
	if err := getJSON(ctx, client, apiBase+"/user/emails", &emails); err != nil {
		return nil, err
	}
	if primary := pickGitHubEmail(emails); primary != nil {
		profile.Email = primary.Email
		profile.EmailVerified = primary.Verified
	}

	if profile.Email == "" {
		return nil, errors.New("github account has no email address")
	}
	return profile, nil
}

// pickGitHubEmail prefers the verified primary address, then any verified one.
func pickGitHubEmail(emails []githubEmail) *githubEmail {
	var fallback *githubEmail
	for i := range emails {
		e := &emails[i]
		if !e.Verified {
			continue
		}
		if e.Primary {
			return e
		}
		if fallback == nil {
			fallback = e
		}
	}
	return fallback
}
