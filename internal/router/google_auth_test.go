package router

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/DjordjeVuckovic/media-placements/internal/apperr"
	"github.com/DjordjeVuckovic/media-placements/internal/google"
	"github.com/DjordjeVuckovic/media-placements/internal/storage/in_mem"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newAuthAPI(t *testing.T, tokenURL string) (*echo.Echo, *in_mem.InMemStorer) {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()
	store := in_mem.NewInMemStorer()
	oauth := google.NewOAuth(google.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURI:  google.DefaultRedirectURI,
		Scopes:       []string{"scope"},
		Endpoint: oauth2.Endpoint{
			AuthURL:   "https://accounts.example.com/auth",
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}, store)
	NewGoogleAuthRouter(e, oauth).Bind()
	return e, store
}

func TestGoogleAuth_RedirectsWithState(t *testing.T) {
	e, _ := newAuthAPI(t, "https://accounts.example.com/token")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/google/auth", nil))

	require.Equal(t, http.StatusFound, rec.Code)
	loc, err := url.Parse(rec.Header().Get(echo.HeaderLocation))
	require.NoError(t, err)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, oauthStateCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, cookies[0].Value, loc.Query().Get("state"))
	assert.Equal(t, "offline", loc.Query().Get("access_type"))
}

func TestGoogleAuth_Callback(t *testing.T) {
	// Arrange
	tokens := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at","token_type":"Bearer","refresh_token":"rt","expires_in":3600}`))
	}))
	defer tokens.Close()
	e, store := newAuthAPI(t, tokens.URL)

	req := httptest.NewRequest(http.MethodGet, "/google/auth/callback?state=s1&code=c1", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "s1"})
	rec := httptest.NewRecorder()

	// Act
	e.ServeHTTP(rec, req)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "connected", decode[GoogleAuthResponse](t, rec).Status)
	cred, err := store.GetGoogleCredential(req.Context())
	require.NoError(t, err)
	assert.True(t, cred.HasOAuth())
	assert.Equal(t, "rt", cred.RefreshToken)
}

func TestGoogleAuth_CallbackRejectsBadState(t *testing.T) {
	e, _ := newAuthAPI(t, "https://accounts.example.com/token")

	noCookie := httptest.NewRecorder()
	e.ServeHTTP(noCookie, httptest.NewRequest(http.MethodGet, "/google/auth/callback?state=s1&code=c1", nil))

	req := httptest.NewRequest(http.MethodGet, "/google/auth/callback?state=s2&code=c1", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "s1"})
	mismatch := httptest.NewRecorder()
	e.ServeHTTP(mismatch, req)

	denied := httptest.NewRecorder()
	e.ServeHTTP(denied, httptest.NewRequest(http.MethodGet, "/google/auth/callback?error=access_denied", nil))

	assert.Equal(t, http.StatusBadRequest, noCookie.Code)
	assert.Equal(t, http.StatusBadRequest, mismatch.Code)
	assert.Equal(t, http.StatusBadRequest, denied.Code)
}
