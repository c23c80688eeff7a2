package router

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/media-placements/internal/apperr"
	"github.com/DjordjeVuckovic/media-placements/internal/domain"
	"github.com/DjordjeVuckovic/media-placements/internal/storage"
	"github.com/labstack/echo/v4"
)

type GoogleSettings struct {
	APIKeySet      bool       `json:"api_key_set"`
	APIKeyHint     string     `json:"api_key_hint,omitempty" example:"****c3d4"`
	OAuthEnabled   bool       `json:"oauth_enabled"`
	OAuthConnected bool       `json:"oauth_connected"`
	TokenExpiry    *time.Time `json:"token_expiry,omitempty"`
}

type GoogleSettingsRequest struct {
	APIKey string `json:"api_key"`
}

type SettingsRouter struct {
	e            *echo.Echo
	creds        storage.CredentialStore
	oauthEnabled bool
}

func NewSettingsRouter(e *echo.Echo, creds storage.CredentialStore, oauthEnabled bool) *SettingsRouter {
	return &SettingsRouter{e: e, creds: creds, oauthEnabled: oauthEnabled}
}

func (r *SettingsRouter) Bind() {
	r.e.GET("/api/settings/google", r.getHandler)
	r.e.PUT("/api/settings/google", r.putHandler)
}

//	@Summary	Show the Google integration status
//	@Tags		settings
//	@Produce	json
//	@Success	200	{object}	GoogleSettings
//	@Router		/api/settings/google [get]
func (r *SettingsRouter) getHandler(c echo.Context) error {
	cred, err := r.current(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r.view(cred))
}

// putHandler stores the API key, keeping any OAuth token already connected.
//
//	@Summary	Save the Google API key
//	@Tags		settings
//	@Accept		json
//	@Produce	json
//	@Param		request	body		GoogleSettingsRequest	true	"API key"
//	@Success	200		{object}	GoogleSettings
//	@Failure	400		{object}	ErrorResponse
//	@Router		/api/settings/google [put]
func (r *SettingsRouter) putHandler(c echo.Context) error {
	var req GoogleSettingsRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}
	key := strings.TrimSpace(req.APIKey)
	if key == "" {
		return apperr.NewValidation("api_key is required")
	}

	cred, err := r.current(c)
	if err != nil {
		return err
	}
	next := domain.GoogleCredential{}
	if cred != nil {
		next = *cred
	}
	next.APIKey = key

	saved, err := r.creds.SaveGoogleCredential(c.Request().Context(), next)
	if err != nil {
		return fmt.Errorf("failed to save google credential: %w", err)
	}
	return c.JSON(http.StatusOK, r.view(saved))
}

func (r *SettingsRouter) current(c echo.Context) (*domain.GoogleCredential, error) {
	cred, err := r.creds.GetGoogleCredential(c.Request().Context())
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load google credential: %w", err)
	}
	return cred, nil
}

func (r *SettingsRouter) view(cred *domain.GoogleCredential) GoogleSettings {
	v := GoogleSettings{
		APIKeySet:      cred.HasAPIKey(),
		OAuthEnabled:   r.oauthEnabled,
		OAuthConnected: cred.HasOAuth(),
	}
	if v.APIKeySet {
		v.APIKeyHint = maskKey(cred.APIKey)
	}
	if cred != nil {
		v.TokenExpiry = cred.TokenExpiry
	}
	return v
}

func maskKey(key string) string {
	r := []rune(key)
	if len(r) <= 4 {
		return "****"
	}
	return "****" + string(r[len(r)-4:])
}
