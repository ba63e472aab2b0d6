package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// GitHubProvider identifies the GitHub OAuth application
const GitHubProvider = "github"

// GoogleProvider identifies the Google OAuth application
const GoogleProvider = "google"

// DefaultSessionCookieName is the cookie carrying the opaque session token.
const DefaultSessionCookieName = "auth.session_token"

// OAuthProviderSettings holds the client credentials of one OAuth application.
type OAuthProviderSettings struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
}

// Enabled reports whether both halves of the credential pair are present.
func (s OAuthProviderSettings) Enabled() bool {
	return s.ClientID != "" && s.ClientSecret != ""
}

// AuthSettings configures session issuance, magic links and social sign-in.
type AuthSettings struct {
	Secret           string                `mapstructure:"secret" validate:"required,min=32"`
	URL              string                `mapstructure:"url" validate:"required,url"`
	CookieName       string                `mapstructure:"cookie_name" validate:"required"`
	SessionTTL       time.Duration         `mapstructure:"session_ttl" validate:"required"`
	SessionUpdateAge time.Duration         `mapstructure:"session_update_age" validate:"required"`
	MagicLinkTTL     time.Duration         `mapstructure:"magic_link_ttl" validate:"required"`
	OAuthStateTTL    time.Duration         `mapstructure:"oauth_state_ttl" validate:"required"`
	BcryptCost       int                   `mapstructure:"bcrypt_cost" validate:"omitempty,min=4,max=31"`
	GitHub           OAuthProviderSettings `mapstructure:"github"`
	Google           OAuthProviderSettings `mapstructure:"google"`
}

// Validate checks that all fields in AuthSettings are valid
func (s *AuthSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for AuthSettings: %w", err)
	}

	if s.SessionUpdateAge > s.SessionTTL {
		return fmt.Errorf("session update age %s exceeds session ttl %s", s.SessionUpdateAge, s.SessionTTL)
	}

	return nil
}

// EnabledProviders returns the OAuth providers with a complete credential pair,
// in a stable order.
func (s *AuthSettings) EnabledProviders() []string {
	var providers []string
	if s.GitHub.Enabled() {
		providers = append(providers, GitHubProvider)
	}
	if s.Google.Enabled() {
		providers = append(providers, GoogleProvider)
	}
	return providers
}

// Provider returns the credentials for an enabled provider.
func (s *AuthSettings) Provider(id string) (OAuthProviderSettings, bool) {
	var p OAuthProviderSettings
	switch id {
	case GitHubProvider:
		p = s.GitHub
	case GoogleProvider:
		p = s.Google
	default:
		return OAuthProviderSettings{}, false
	}
	return p, p.Enabled()
}
