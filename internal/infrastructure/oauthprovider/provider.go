// Package oauthprovider implements GitHub and Google sign-in on top of
// golang.org/x/oauth2.
package oauthprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dwestland/auth-starter/internal/domain/auth"
	"github.com/dwestland/auth-starter/internal/pkg/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// maxProfileBytes bounds profile API responses.
const maxProfileBytes = 1 << 20

// profileFunc loads a profile with an authorized client.
type profileFunc func(ctx context.Context, client *http.Client, apiBase string) (*auth.Profile, error)

// Provider is an auth.OAuthProvider backed by an oauth2.Config.
type Provider struct {
	id      string
	config  *oauth2.Config
	apiBase string
	profile profileFunc
}

// ID returns the provider id.
func (p *Provider) ID() string { return p.id }

// AuthCodeURL returns the consent URL with an S256 PKCE challenge.
func (p *Provider) AuthCodeURL(state, codeVerifier string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline, oauth2.S256ChallengeOption(codeVerifier))
}

// Exchange trades an authorization code for tokens.
func (p *Provider) Exchange(ctx context.Context, code, codeVerifier string) (*auth.OAuthToken, error) {
	tok, err := p.config.Exchange(ctx, code, oauth2.VerifierOption(codeVerifier))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange %s code: %w", p.id, err)
	}

	scope, _ := tok.Extra("scope").(string)
	return &auth.OAuthToken{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		Scope:        scope,
		Expiry:       tok.Expiry,
	}, nil
}

// FetchProfile calls the provider user API with token.
func (p *Provider) FetchProfile(ctx context.Context, token *auth.OAuthToken) (*auth.Profile, error) {
	client := p.config.Client(ctx, &oauth2.Token{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       token.Expiry,
	})
	profile, err := p.profile(ctx, client, p.apiBase)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s profile: %w", p.id, err)
	}
	return profile, nil
}

// Options override provider endpoints, mainly for tests.
type Options struct {
	AuthURL  string
	TokenURL string
	APIBase  string
}

// NewGitHub creates the GitHub provider.
func NewGitHub(settings config.OAuthProviderSettings, redirectURL string, opts Options) *Provider {
	endpoint := endpoints.GitHub
	apiBase := "https://api.github.com"
	applyOptions(&endpoint, &apiBase, opts)

	return &Provider{
		id: auth.ProviderGitHub,
		config: &oauth2.Config{
			ClientID:     settings.ClientID,
			ClientSecret: settings.ClientSecret,
			Endpoint:     endpoint,
			RedirectURL:  redirectURL,
			Scopes:       []string{"read:user", "user:email"},
		},
		apiBase: apiBase,
		profile: fetchGitHubProfile,
	}
}

// NewGoogle creates the Google provider.
func NewGoogle(settings config.OAuthProviderSettings, redirectURL string, opts Options) *Provider {
	endpoint := endpoints.Google
	apiBase := "https://www.googleapis.com"
	applyOptions(&endpoint, &apiBase, opts)

	return &Provider{
		id: auth.ProviderGoogle,
		config: &oauth2.Config{
			ClientID:     settings.ClientID,
			ClientSecret: settings.ClientSecret,
			Endpoint:     endpoint,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
		},
		apiBase: apiBase,
		profile: fetchGoogleProfile,
	}
}

// FromSettings builds every enabled provider. Redirect URLs are
// {authURL}/api/auth/callback/{provider}.
func FromSettings(settings *config.AuthSettings) []auth.OAuthProvider {
	var providers []auth.OAuthProvider
	for _, id := range settings.EnabledProviders() {
		creds, _ := settings.Provider(id)
		redirect := CallbackURL(settings.URL, id)
		switch id {
		case config.GitHubProvider:
			providers = append(providers, NewGitHub(creds, redirect, Options{}))
		case config.GoogleProvider:
			providers = append(providers, NewGoogle(creds, redirect, Options{}))
		}
	}
	return providers
}

// CallbackURL returns the redirect URL registered with a provider.
func CallbackURL(authURL, providerID string) string {
	return strings.TrimRight(authURL, "/") + "/api/auth/callback/" + providerID
}

func applyOptions(endpoint *oauth2.Endpoint, apiBase *string, opts Options) {
	if opts.AuthURL != "" {
		endpoint.AuthURL = opts.AuthURL
	}
	if opts.TokenURL != "" {
		endpoint.TokenURL = opts.TokenURL
	}
	if opts.APIBase != "" {
		*apiBase = strings.TrimRight(opts.APIBase, "/")
	}
}

func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GET %s: status %d: %s", url, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxProfileBytes)).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", url, err)
	}
	return nil
}
