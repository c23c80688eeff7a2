// Package main Media Placements API
// @title Media Placements API
// @version 1.0
// @description Collects media placement links, enriches them with page metadata and builds dockets
// @BasePath /
package main

import (
	"context"
	"log/slog"
	"os"

	_ "github.com/DjordjeVuckovic/media-placements/docs"
	"github.com/DjordjeVuckovic/media-placements/internal/blob"
	"github.com/DjordjeVuckovic/media-placements/internal/docket"
	"github.com/DjordjeVuckovic/media-placements/internal/google"
	"github.com/DjordjeVuckovic/media-placements/internal/ingest"
	"github.com/DjordjeVuckovic/media-placements/internal/ingest/fetcher"
	"github.com/DjordjeVuckovic/media-placements/internal/router"
	"github.com/DjordjeVuckovic/media-placements/internal/server"
	"github.com/DjordjeVuckovic/media-placements/internal/storage/factory"
	"github.com/labstack/echo/v4"
)

func main() {
	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	stores, err := factory.New(ctx, cfg.Storage)
	if err != nil {
		slog.Error("Failed to create storage", "error", err)
		os.Exit(1)
	}
	defer stores.Close()

	s := server.New(sCfg, stores.Health).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "Media Placements API is running")
	})

	f := fetcher.New(cfg.Fetch, fetcher.WithClassifier(cfg.Classifier))
	svc := ingest.NewService(ingest.NewAssembler(f), stores.Placements, ingest.WithIndexer(stores.Index))

	oauth := google.NewOAuth(cfg.Google, stores.Credentials)
	gclient := google.NewClient(stores.Credentials, oauth)

	builder, err := newDocketBuilder(ctx, cfg.Docket, f, gclient, stores)
	if err != nil {
		slog.Error("Failed to create docket builder", "error", err)
		os.Exit(1)
	}

	router.NewPlacementRouter(s.Echo, svc, stores.Placements, stores.Index,
		router.WithGoogle(gclient, gclient),
		router.WithDocketBuilder(builder),
	).Bind()
	router.NewSettingsRouter(s.Echo, stores.Credentials, oauth.Enabled()).Bind()
	router.NewGoogleAuthRouter(s.Echo, oauth).Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	if err := s.Start(); err != nil {
		slog.Error("Failed to start server", "error", err)
		stores.Close()
		os.Exit(1)
	}
}

func newDocketBuilder(
	ctx context.Context,
	cfg docket.Config,
	pages docket.PageGetter,
	publisher docket.Publisher,
	stores *factory.Stores,
) (*docket.Builder, error) {
	opts := []docket.Option{
		docket.WithSummarizer(docket.NewSummarizer(pages, cfg.SummaryMaxLength)),
		docket.WithIndexer(stores.Index),
	}

	switch {
	case cfg.ScreenshotServiceURL == "":
		slog.Info("Docket screenshots disabled: SCREENSHOT_SERVICE_URL is not set")
	case !cfg.Blob.Enabled():
		slog.Warn("Docket screenshots disabled: S3_BUCKET is not set")
	default:
		blobs, err := blob.NewS3Store(ctx, cfg.Blob)
		if err != nil {
			return nil, err
		}
		opts = append(opts, docket.WithScreenshots(docket.NewHTTPScreenshotter(cfg.ScreenshotServiceURL, nil), blobs))
	}

	return docket.NewBuilder(stores.Placements, publisher, opts...), nil
}
