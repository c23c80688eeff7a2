package router

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/DjordjeVuckovic/media-placements/internal/apperr"
	"github.com/DjordjeVuckovic/media-placements/internal/google"
	"github.com/labstack/echo/v4"
)

const (
	oauthStateCookie = "google_oauth_state"
	oauthStateTTL    = 10 * time.Minute
)

type GoogleAuthResponse struct {
	Status      string     `json:"status" example:"connected"`
	TokenExpiry *time.Time `json:"token_expiry,omitempty"`
}

// GoogleAuthRouter runs the OAuth consent flow for Docs and Sheets access.
type GoogleAuthRouter struct {
	e     *echo.Echo
	oauth *google.OAuth
}

func NewGoogleAuthRouter(e *echo.Echo, oauth *google.OAuth) *GoogleAuthRouter {
	return &GoogleAuthRouter{e: e, oauth: oauth}
}

func (r *GoogleAuthRouter) Bind() {
	r.e.GET("/google/auth", r.authHandler)
	r.e.GET("/google/auth/callback", r.callbackHandler)
}

//	@Summary	Start the Google OAuth flow
//	@Tags		google
//	@Success	302
//	@Failure	400	{object}	ErrorResponse
//	@Router		/google/auth [get]
func (r *GoogleAuthRouter) authHandler(c echo.Context) error {
	state, err := google.NewState()
	if err != nil {
		return err
	}
	target, err := r.oauth.AuthCodeURL(state)
	if err != nil {
		return mapError(err, "")
	}

	c.SetCookie(&http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/google/auth",
		MaxAge:   int(oauthStateTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   c.Scheme() == "https",
	})
	return c.Redirect(http.StatusFound, target)
}

//	@Summary	Finish the Google OAuth flow
//	@Tags		google
//	@Produce	json
//	@Param		state	query		string	true	"State issued by /google/auth"
//	@Param		code	query		string	true	"Authorization code"
//	@Success	200		{object}	GoogleAuthResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/google/auth/callback [get]
func (r *GoogleAuthRouter) callbackHandler(c echo.Context) error {
	if reason := c.QueryParam("error"); reason != "" {
		return apperr.NewValidation(fmt.Sprintf("google authorization failed: %s", reason))
	}

	cookie, err := c.Cookie(oauthStateCookie)
	state := c.QueryParam("state")
	if err != nil || state == "" || subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(state)) != 1 {
		return apperr.NewValidation("invalid oauth state")
	}
	c.SetCookie(&http.Cookie{
		Name:     oauthStateCookie,
		Path:     "/google/auth",
		MaxAge:   -1,
		HttpOnly: true,
	})

	code := c.QueryParam("code")
	if code == "" {
		return apperr.NewValidation("code parameter is required")
	}

	cred, err := r.oauth.Exchange(c.Request().Context(), code)
	if err != nil {
		return mapError(err, "")
	}
	slog.Info("Google account connected")
	return c.JSON(http.StatusOK, GoogleAuthResponse{Status: "connected", TokenExpiry: cred.TokenExpiry})
}
