package docket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPScreenshotter_Capture(t *testing.T) {
	// Arrange
	var gotURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.Query().Get("url")
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("\x89PNG"))
	}))
	defer srv.Close()
	s := NewHTTPScreenshotter(srv.URL+"/render?width=1280", nil)

	// Act
	img, err := s.Capture(context.Background(), "https://example.com/a?b=c")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), img)
	assert.Equal(t, "https://example.com/a?b=c", gotURL)
}

func TestHTTPScreenshotter_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"bad status", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}},
		{"not an image", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html></html>"))
		}},
		{"empty body", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/png")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewHTTPScreenshotter(srv.URL, nil).Capture(context.Background(), "https://example.com")

			assert.Error(t, err)
		})
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("SCREENSHOT_SERVICE_URL", "http://render:3000/shot")
	t.Setenv("SUMMARY_MAX_LENGTH", "nope")
	t.Setenv("S3_BUCKET", "dockets")

	cfg := LoadEnv()

	assert.Equal(t, "http://render:3000/shot", cfg.ScreenshotServiceURL)
	assert.Equal(t, DefaultSummaryMaxLength, cfg.SummaryMaxLength)
	assert.True(t, cfg.Blob.Enabled())
}
