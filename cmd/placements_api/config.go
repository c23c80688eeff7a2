package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/media-placements/internal/docket"
	"github.com/DjordjeVuckovic/media-placements/internal/google"
	"github.com/DjordjeVuckovic/media-placements/internal/ingest/classify"
	"github.com/DjordjeVuckovic/media-placements/internal/ingest/fetcher"
	"github.com/DjordjeVuckovic/media-placements/internal/storage/factory"
	"github.com/DjordjeVuckovic/media-placements/pkg/config/env"
)

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type AppConfig struct {
	ENV string
}

type APIConfig struct {
	Storage    *factory.StorageConfig
	Fetch      fetcher.Config
	Classifier *classify.Classifier
	Google     google.Config
	Docket     docket.Config
}

func (as *AppConfig) Load() (*APIConfig, error) {
	if err := env.LoadDotEnv(as.ENV, "cmd/placements_api/.env"); err != nil {
		slog.Info("Skipping .env environment variables...", "error", err)
	}
	slog.SetLogLoggerLevel(env.LogLevel())

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	fetchCfg, err := fetcher.LoadEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load fetch config: %w", err)
	}

	classifier, err := classify.LoadEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load media rules: %w", err)
	}

	googleCfg := google.LoadEnv()
	if !googleCfg.OAuthEnabled() {
		slog.Warn("GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET not set, Google OAuth is disabled")
	}

	return &APIConfig{
		Storage:    storageCfg,
		Fetch:      fetchCfg,
		Classifier: classifier,
		Google:     googleCfg,
		Docket:     docket.LoadEnv(),
	}, nil
}
