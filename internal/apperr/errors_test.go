package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DjordjeVuckovic/media-placements/internal/apperr"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestNewValidation(t *testing.T) {
	err := apperr.NewValidation("field is required")

	assert.Equal(t, "field is required", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestNewValidationWrap(t *testing.T) {
	inner := fmt.Errorf("parse failed")
	err := apperr.NewValidationWrap("invalid publication date", inner)

	assert.Equal(t, "invalid publication date: parse failed", err.Error())
	assert.True(t, errors.Is(err, inner))
}

func TestValidationError_SurvivesFmtWrapping(t *testing.T) {
	original := apperr.NewValidation("input_type is required")

	doubleWrapped := fmt.Errorf("handler: %w", fmt.Errorf("failed to bind: %w", original))

	var ve *apperr.ValidationError
	assert.True(t, errors.As(doubleWrapped, &ve))
	assert.Equal(t, "input_type is required", ve.Message)
}

func TestNotFoundError_Message(t *testing.T) {
	assert.Equal(t, "placement 42 not found", apperr.NewNotFound("placement", "42").Error())
	assert.Equal(t, "google credential not found", apperr.NewNotFound("google credential", "").Error())
}

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"validation", apperr.NewValidation("bad"), http.StatusBadRequest, `"error":"bad"`},
		{"not found", fmt.Errorf("lookup: %w", apperr.NewNotFound("placement", "x")), http.StatusNotFound, `"placement x not found"`},
		{"unprocessable", apperr.NewUnprocessable("No valid media links found in the provided text."), http.StatusUnprocessableEntity, `No valid media links`},
		{"echo http error", echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed, `"nope"`},
		{"plain", errors.New("db exploded"), http.StatusInternalServerError, `internal server error`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			// Act
			apperr.GlobalErrorHandler()(tt.err, c)

			// Assert
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}
