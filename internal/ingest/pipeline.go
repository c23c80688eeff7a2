package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/DjordjeVuckovic/media-placements/internal/source"
)

// Pipeline is a one-shot ingestion job.
type Pipeline interface {
	Run(ctx context.Context) (*Report, error)
}

// FilePipeline ingests the links found in a text, CSV or XLSX file.
type FilePipeline struct {
	path    string
	service *Service
}

func NewFilePipeline(path string, service *Service) *FilePipeline {
	return &FilePipeline{path: path, service: service}
}

func (p *FilePipeline) Run(ctx context.Context) (*Report, error) {
	start := time.Now()

	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	src, err := source.FromUpload(p.path, f)
	if err != nil {
		return nil, err
	}

	report, err := p.service.Ingest(ctx, src)
	if err != nil {
		return nil, err
	}

	slog.Info("FilePipeline run completed", "path", p.path, "outcome", report.Outcome, "duration", time.Since(start))
	return report, nil
}
