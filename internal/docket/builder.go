// Package docket turns a stored placement into a shareable document with a summary and a screenshot.
package docket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/media-placements/internal/blob"
	"github.com/DjordjeVuckovic/media-placements/internal/domain"
	"github.com/DjordjeVuckovic/media-placements/internal/export"
	"github.com/DjordjeVuckovic/media-placements/internal/google"
	"github.com/DjordjeVuckovic/media-placements/internal/storage"
	"github.com/google/uuid"
)

var ErrNoPublisher = errors.New("no docket publisher is configured")

type Publisher interface {
	CreateDocket(ctx context.Context, content google.DocketContent) (string, error)
}

type Result struct {
	Placement     domain.Placement `json:"placement"`
	DocketURL     string           `json:"docket_url"`
	ScreenshotURL string           `json:"screenshot_url,omitempty"`
	Warnings      []string         `json:"warnings"`
}

type Builder struct {
	store      storage.PlacementStore
	publisher  Publisher
	summarizer *Summarizer
	shots      Screenshotter
	blobs      blob.Store
	indexer    storage.Indexer
}

type Option func(*Builder)

func WithSummarizer(s *Summarizer) Option {
	return func(b *Builder) {
		b.summarizer = s
	}
}

// WithScreenshots enables screenshots; both a renderer and a store are needed.
func WithScreenshots(s Screenshotter, store blob.Store) Option {
	return func(b *Builder) {
		b.shots = s
		b.blobs = store
	}
}

func WithIndexer(idx storage.Indexer) Option {
	return func(b *Builder) {
		b.indexer = idx
	}
}

func NewBuilder(store storage.PlacementStore, publisher Publisher, opts ...Option) *Builder {
	b := &Builder{store: store, publisher: publisher}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build creates the docket for one placement and records its URL.
// Summary and screenshot problems become warnings; a failed publish is an error.
func (b *Builder) Build(ctx context.Context, id uuid.UUID) (*Result, error) {
	if b.publisher == nil {
		return nil, ErrNoPublisher
	}

	p, err := b.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load placement %s: %w", id, err)
	}

	res := &Result{Warnings: make([]string, 0)}
	content := google.DocketContent{
		Title:           p.Title,
		URL:             p.URL,
		Source:          p.Source,
		PublicationDate: export.FormatDate(p.PublicationDate),
		MediaType:       p.MediaType.String(),
		Notes:           p.Notes,
	}

	if b.summarizer != nil {
		summary, err := b.summarizer.Summarize(ctx, p.URL)
		if err != nil {
			slog.Warn("Failed to summarize placement page", "url", p.URL, "error", err)
			res.Warnings = append(res.Warnings, "summary unavailable: "+err.Error())
		} else {
			content.Summary = summary
		}
	}

	if b.shots != nil && b.blobs != nil {
		shotURL, err := b.screenshot(ctx, p)
		if err != nil {
			slog.Warn("Failed to capture placement screenshot", "url", p.URL, "error", err)
			res.Warnings = append(res.Warnings, "screenshot unavailable: "+err.Error())
		} else {
			content.ScreenshotURL = shotURL
			res.ScreenshotURL = shotURL
		}
	}

	docketURL, err := b.publisher.CreateDocket(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("failed to publish docket: %w", err)
	}

	p.DocketURL = docketURL
	p.UpdatedAt = time.Now().UTC()
	if err := b.store.Update(ctx, *p); err != nil {
		return nil, fmt.Errorf("failed to save docket url: %w", err)
	}
	if b.indexer != nil {
		if err := b.indexer.Index(ctx, []domain.Placement{*p}); err != nil {
			slog.Error("Failed to reindex placement", "id", p.ID, "error", err)
		}
	}

	slog.Info("Docket created", "id", p.ID, "docket_url", docketURL, "warnings", len(res.Warnings))
	res.Placement = *p
	res.DocketURL = docketURL
	return res, nil
}

func (b *Builder) screenshot(ctx context.Context, p *domain.Placement) (string, error) {
	img, err := b.shots.Capture(ctx, p.URL)
	if err != nil {
		return "", err
	}
	return b.blobs.Put(ctx, "screenshots/"+p.ID.String()+".png", img, "image/png")
}
