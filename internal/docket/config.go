package docket

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/DjordjeVuckovic/media-placements/internal/blob"
)

const DefaultSummaryMaxLength = 600

type Config struct {
	// ScreenshotServiceURL is a render service answering GET ?url=<page> with a PNG.
	ScreenshotServiceURL string
	SummaryMaxLength     int
	Blob                 blob.Config
}

func LoadEnv() Config {
	cfg := Config{
		ScreenshotServiceURL: os.Getenv("SCREENSHOT_SERVICE_URL"),
		SummaryMaxLength:     DefaultSummaryMaxLength,
		Blob:                 blob.LoadEnv(),
	}
	if raw := os.Getenv("SUMMARY_MAX_LENGTH"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			slog.Warn("Invalid SUMMARY_MAX_LENGTH, using default", "value", raw, "default", DefaultSummaryMaxLength)
		} else {
			cfg.SummaryMaxLength = n
		}
	}
	return cfg
}
