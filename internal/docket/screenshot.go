package docket

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	screenshotTimeout  = 30 * time.Second
	maxScreenshotBytes = 10 << 20
)

type Screenshotter interface {
	Capture(ctx context.Context, pageURL string) ([]byte, error)
}

// HTTPScreenshotter asks an external render service for a PNG of the page.
type HTTPScreenshotter struct {
	endpoint string
	client   *http.Client
}

func NewHTTPScreenshotter(endpoint string, client *http.Client) *HTTPScreenshotter {
	if client == nil {
		client = &http.Client{Timeout: screenshotTimeout}
	}
	return &HTTPScreenshotter{endpoint: endpoint, client: client}
}

func (s *HTTPScreenshotter) Capture(ctx context.Context, pageURL string) ([]byte, error) {
	target, err := url.Parse(s.endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse screenshot service url: %w", err)
	}
	q := target.Query()
	q.Set("url", pageURL)
	target.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "image/png")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call screenshot service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("screenshot service returned status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("screenshot service returned %s, want an image", ct)
	}

	img, err := io.ReadAll(io.LimitReader(resp.Body, maxScreenshotBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read screenshot: %w", err)
	}
	if len(img) == 0 {
		return nil, fmt.Errorf("screenshot service returned an empty image")
	}
	return img, nil
}
