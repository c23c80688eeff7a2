package google

import (
	"os"

	"github.com/DjordjeVuckovic/media-placements/pkg/config/env"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/sheets/v4"
)

const DefaultRedirectURI = "http://localhost:8080/google/auth/callback"

type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       []string
	// Endpoint overrides the Google OAuth endpoint when set.
	Endpoint oauth2.Endpoint
}

func LoadEnv() Config {
	return Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURI:  env.String("GOOGLE_REDIRECT_URI", DefaultRedirectURI),
		Scopes:       []string{docs.DocumentsScope, sheets.SpreadsheetsScope},
	}
}

// OAuthEnabled reports whether a client id and secret are configured.
func (c Config) OAuthEnabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

func (c Config) oauth2Config() *oauth2.Config {
	endpoint := c.Endpoint
	if endpoint.TokenURL == "" {
		endpoint = googleoauth.Endpoint
	}
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURI,
		Scopes:       c.Scopes,
		Endpoint:     endpoint,
	}
}
