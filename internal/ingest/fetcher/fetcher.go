// Package fetcher derives placement metadata from a single URL.
package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/DjordjeVuckovic/media-placements/internal/domain"
	"github.com/DjordjeVuckovic/media-placements/internal/ingest/classify"
	"github.com/PuerkitoBio/goquery"
)

type Result struct {
	Metadata domain.PlacementMetadata
	// Err is set when the page could not be fetched or parsed.
	// Metadata still carries whatever was derived from the URL.
	Err error
}

type Fetcher struct {
	cfg        Config
	client     *http.Client
	classifier *classify.Classifier
	titles     []TitleStrategy
	dates      []DateStrategy
}

type Option func(*Fetcher)

func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

func WithClassifier(c *classify.Classifier) Option {
	return func(f *Fetcher) {
		f.classifier = c
	}
}

func New(cfg Config, opts ...Option) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	cfg.Timeout = clampTimeout(cfg.Timeout)
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}

	f := &Fetcher{
		cfg:        cfg,
		client:     &http.Client{},
		classifier: classify.Default(),
		titles:     TitleStrategies,
		dates:      DateStrategies,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch never fails outright: network and parse problems are reported in Result.Err.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) Result {
	var res Result
	res.Metadata.MediaType = domain.DefaultMediaType

	u, err := url.Parse(rawURL)
	if err != nil {
		res.Err = fmt.Errorf("failed to parse url: %w", err)
		slog.Warn("Skipping page fetch for invalid url", "url", rawURL, "error", err)
		return res
	}

	host := SourceFromHost(u.Hostname())
	res.Metadata.Source = host
	res.Metadata.MediaType = f.classifier.Classify(host, u.Path)

	body, err := f.Get(ctx, rawURL)
	if err != nil {
		res.Err = err
		slog.Warn("Failed to fetch placement page", "url", rawURL, "error", err)
		return res
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		res.Err = fmt.Errorf("failed to parse HTML: %w", err)
		slog.Warn("Failed to parse placement page", "url", rawURL, "error", err)
		return res
	}

	for _, s := range f.titles {
		if t, ok := s(doc); ok {
			res.Metadata.Title = t
			break
		}
	}
	for _, s := range f.dates {
		if d, ok := s(doc); ok {
			res.Metadata.PublicationDate = &d
			break
		}
	}

	slog.Debug("Fetched placement metadata",
		"url", rawURL,
		"title", res.Metadata.Title,
		"source", res.Metadata.Source,
		"media_type", res.Metadata.MediaType,
	)
	return res
}

// Get downloads the page body, truncated to the configured size.
func (f *Fetcher) Get(ctx context.Context, rawURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// SourceFromHost lower-cases the host and drops a leading "www.".
func SourceFromHost(host string) string {
	host = strings.ToLower(host)
	return strings.TrimPrefix(host, "www.")
}
