package google

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/DjordjeVuckovic/media-placements/internal/domain"
	"github.com/DjordjeVuckovic/media-placements/internal/storage"
	"golang.org/x/oauth2"
)

var ErrOAuthNotConfigured = errors.New("google oauth client id and secret are not configured")

// OAuth runs the authorization code flow and keeps the stored token fresh.
type OAuth struct {
	cfg     *oauth2.Config
	enabled bool
	store   storage.CredentialStore
}

func NewOAuth(cfg Config, store storage.CredentialStore) *OAuth {
	return &OAuth{
		cfg:     cfg.oauth2Config(),
		enabled: cfg.OAuthEnabled(),
		store:   store,
	}
}

func (o *OAuth) Enabled() bool {
	return o != nil && o.enabled
}

// NewState returns a random value for the state parameter of the consent redirect.
func NewState() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate oauth state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// AuthCodeURL asks for offline access and forces the consent screen so a refresh token is issued.
func (o *OAuth) AuthCodeURL(state string) (string, error) {
	if !o.Enabled() {
		return "", ErrOAuthNotConfigured
	}
	return o.cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce), nil
}

// Exchange trades the callback code for a token and stores it next to any existing API key.
func (o *OAuth) Exchange(ctx context.Context, code string) (*domain.GoogleCredential, error) {
	if !o.Enabled() {
		return nil, ErrOAuthNotConfigured
	}
	tok, err := o.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	cred, err := o.current(ctx)
	if err != nil {
		return nil, err
	}
	if err := applyToken(&cred, tok); err != nil {
		return nil, err
	}

	saved, err := o.store.SaveGoogleCredential(ctx, cred)
	if err != nil {
		return nil, fmt.Errorf("failed to save google credential: %w", err)
	}
	slog.Info("Stored google oauth token", "expiry", tok.Expiry)
	return saved, nil
}

// TokenSource refreshes the stored token when it expires and writes the refreshed token back.
func (o *OAuth) TokenSource(ctx context.Context, cred *domain.GoogleCredential) (oauth2.TokenSource, error) {
	tok, err := decodeToken(cred.OAuthToken)
	if err != nil {
		return nil, err
	}
	if tok.RefreshToken == "" {
		tok.RefreshToken = cred.RefreshToken
	}
	return &persistingTokenSource{
		ctx:   ctx,
		base:  o.cfg.TokenSource(ctx, tok),
		store: o.store,
		last:  tok.AccessToken,
	}, nil
}

func (o *OAuth) current(ctx context.Context) (domain.GoogleCredential, error) {
	existing, err := o.store.GetGoogleCredential(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return domain.GoogleCredential{}, nil
	}
	if err != nil {
		return domain.GoogleCredential{}, fmt.Errorf("failed to load google credential: %w", err)
	}
	return *existing, nil
}

type persistingTokenSource struct {
	ctx   context.Context
	base  oauth2.TokenSource
	store storage.CredentialStore

	mu   sync.Mutex
	last string
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken == s.last {
		return tok, nil
	}
	s.last = tok.AccessToken

	cred, err := s.store.GetGoogleCredential(s.ctx)
	if err != nil {
		slog.Warn("Failed to load google credential for token refresh", "error", err)
		return tok, nil
	}
	if err := applyToken(cred, tok); err != nil {
		slog.Warn("Failed to encode refreshed google token", "error", err)
		return tok, nil
	}
	if _, err := s.store.SaveGoogleCredential(s.ctx, *cred); err != nil {
		slog.Warn("Failed to persist refreshed google token", "error", err)
	}
	return tok, nil
}

func applyToken(cred *domain.GoogleCredential, tok *oauth2.Token) error {
	raw, err := encodeToken(tok)
	if err != nil {
		return err
	}
	cred.OAuthToken = raw
	if tok.RefreshToken != "" {
		cred.RefreshToken = tok.RefreshToken
	}
	if tok.Expiry.IsZero() {
		cred.TokenExpiry = nil
	} else {
		expiry := tok.Expiry.UTC()
		cred.TokenExpiry = &expiry
	}
	return nil
}

func encodeToken(tok *oauth2.Token) (string, error) {
	raw, err := json.Marshal(tok)
	if err != nil {
		return "", fmt.Errorf("failed to encode oauth token: %w", err)
	}
	return string(raw), nil
}

func decodeToken(raw string) (*oauth2.Token, error) {
	var tok oauth2.Token
	if err := json.Unmarshal([]byte(raw), &tok); err != nil {
		return nil, fmt.Errorf("failed to decode stored oauth token: %w", err)
	}
	return &tok, nil
}
