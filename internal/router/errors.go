package router

import (
	"errors"
	"net/http"

	"github.com/DjordjeVuckovic/media-placements/internal/apperr"
	"github.com/DjordjeVuckovic/media-placements/internal/docket"
	"github.com/DjordjeVuckovic/media-placements/internal/google"
	"github.com/DjordjeVuckovic/media-placements/internal/storage"
	"google.golang.org/api/googleapi"
)

// ErrorResponse is the body written by the global error handler.
type ErrorResponse struct {
	Error string `json:"error"`
	Title string `json:"title,omitempty"`
}

// mapError turns store and integration errors into the API error types.
func mapError(err error, id string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NewNotFound("placement", id)
	}
	if errors.Is(err, google.ErrNoCredentials) ||
		errors.Is(err, google.ErrNotAuthorized) ||
		errors.Is(err, google.ErrOAuthNotConfigured) ||
		errors.Is(err, docket.ErrNoPublisher) {
		return apperr.NewValidationWrap("google integration is not ready", err)
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return apperr.NewValidationWrap("google rejected the request", err)
		}
	}
	return err
}
