package domain

import "time"

// GoogleCredential holds the single set of Google API credentials the service uses.
// Either an API key (read only) or an OAuth token (read and write) must be present.
type GoogleCredential struct {
	ID           int64      `json:"id"`
	APIKey       string     `json:"api_key,omitempty"`
	OAuthToken   string     `json:"-"`
	RefreshToken string     `json:"-"`
	TokenExpiry  *time.Time `json:"token_expiry,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (c *GoogleCredential) HasAPIKey() bool {
	return c != nil && c.APIKey != ""
}

func (c *GoogleCredential) HasOAuth() bool {
	return c != nil && c.OAuthToken != ""
}
