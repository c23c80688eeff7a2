package docket

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/DjordjeVuckovic/media-placements/pkg/stringsutil"
	readability "github.com/go-shiori/go-readability"
)

// PageGetter downloads a page body.
type PageGetter interface {
	Get(ctx context.Context, rawURL string) ([]byte, error)
}

type Summarizer struct {
	pages     PageGetter
	maxLength int
}

func NewSummarizer(pages PageGetter, maxLength int) *Summarizer {
	if maxLength <= 0 {
		maxLength = DefaultSummaryMaxLength
	}
	return &Summarizer{pages: pages, maxLength: maxLength}
}

// Summarize extracts the readable text of the page and cuts it at a word boundary.
func (s *Summarizer) Summarize(ctx context.Context, rawURL string) (string, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse url: %w", err)
	}

	body, err := s.pages.Get(ctx, rawURL)
	if err != nil {
		return "", err
	}

	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return "", fmt.Errorf("readability extraction failed: %w", err)
	}

	text := collapseSpace(article.TextContent)
	if text == "" {
		text = collapseSpace(article.Excerpt)
	}
	if text == "" {
		return "", fmt.Errorf("no readable text found")
	}
	return stringsutil.Truncate(text, s.maxLength), nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
