package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/DjordjeVuckovic/media-placements/internal/ingest"
	"github.com/DjordjeVuckovic/media-placements/internal/ingest/classify"
	"github.com/DjordjeVuckovic/media-placements/internal/ingest/fetcher"
	"github.com/DjordjeVuckovic/media-placements/internal/storage/factory"
	"github.com/DjordjeVuckovic/media-placements/pkg/config/env"
)

func main() {
	if err := env.LoadDotEnv(os.Getenv("ENV"), "cmd/placements_ingest/.env"); err != nil {
		slog.Info("Skipping .env environment variables...", "error", err)
	}
	slog.SetLogLoggerLevel(env.LogLevel())

	inputPath := os.Getenv("INPUT_PATH")
	if inputPath == "" {
		slog.Error("INPUT_PATH environment variable is not set")
		os.Exit(1)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration", "error", err)
		os.Exit(1)
	}
	fetchCfg, err := fetcher.LoadEnv()
	if err != nil {
		slog.Error("Failed to load fetch configuration", "error", err)
		os.Exit(1)
	}
	classifier, err := classify.LoadEnv()
	if err != nil {
		slog.Error("Failed to load media rules", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := factory.New(ctx, storageCfg)
	if err != nil {
		slog.Error("Failed to create storage", "error", err)
		os.Exit(1)
	}
	defer stores.Close()

	f := fetcher.New(fetchCfg, fetcher.WithClassifier(classifier))
	svc := ingest.NewService(ingest.NewAssembler(f), stores.Placements, ingest.WithIndexer(stores.Index))

	var pipeline ingest.Pipeline = ingest.NewFilePipeline(inputPath, svc)
	report, err := pipeline.Run(ctx)
	if err != nil {
		slog.Error("Failed to run ingest", "error", err)
		stores.Close()
		os.Exit(1)
	}

	if report.Outcome != ingest.OutcomeReady {
		slog.Warn(report.Outcome.Message(), "source", report.Source)
		stores.Close()
		os.Exit(2)
	}
	for _, w := range report.Warnings {
		slog.Warn("Saved placement without page metadata", "url", w.URL, "reason", w.Message)
	}
	for _, p := range report.Placements {
		slog.Info("Saved placement", "id", p.ID, "url", p.URL, "title", p.Title, "media_type", p.MediaType)
	}
	slog.Info("Ingest finished", "source", report.Source, "saved", len(report.Placements), "warnings", len(report.Warnings))
}
