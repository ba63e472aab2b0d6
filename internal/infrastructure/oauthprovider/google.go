package oauthprovider

import (
	"context"
	"errors"
	"net/http"

	"github.com/dwestland/auth-starter/internal/domain/auth"
)

type googleUserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func fetchGoogleProfile(ctx context.Context, client *http.Client, apiBase string) (*auth.Profile, error) {
	var info googleUserInfo
	if err := getJSON(ctx, client, apiBase+"/oauth2/v3/userinfo", &info); err != nil {
		return nil, err
	}
	if info.Sub == "" || info.Email == "" {
		return nil, errors.New("google userinfo is missing sub or email")
	}

	return &auth.Profile{
		ProviderUserID: info.Sub,
		Email:          info.Email,
		EmailVerified:  info.EmailVerified,
		Name:           info.Name,
		Image:          info.Picture,
	}, nil
}
