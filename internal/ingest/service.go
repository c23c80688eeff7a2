package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/media-placements/internal/domain"
	"github.com/DjordjeVuckovic/media-placements/internal/source"
	"github.com/DjordjeVuckovic/media-placements/internal/storage"
)

// Warning reports a link whose page could not be fetched. The link is still saved.
type Warning struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}

type Report struct {
	Source     string
	Outcome    Outcome
	Placements []domain.Placement
	Warnings   []Warning
}

type Service struct {
	assembler *Assembler
	store     storage.PlacementStore
	indexer   storage.Indexer
}

type ServiceOption func(*Service)

// WithIndexer mirrors saved placements into a search index.
func WithIndexer(idx storage.Indexer) ServiceOption {
	return func(s *Service) {
		s.indexer = idx
	}
}

func NewService(a *Assembler, store storage.PlacementStore, opts ...ServiceOption) *Service {
	s := &Service{
		assembler: a,
		store:     store,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest reads src, assembles its links and stores them when the batch is usable.
// A batch without links or without usable metadata is reported, not returned as an error.
func (s *Service) Ingest(ctx context.Context, src source.Source) (*Report, error) {
	start := time.Now()

	text, err := src.Text(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read source %s: %w", src.Name(), err)
	}

	batch := s.assembler.Assemble(ctx, text)
	report := &Report{
		Source:   src.Name(),
		Outcome:  batch.Outcome(),
		Warnings: warnings(batch),
	}
	if report.Outcome != OutcomeReady {
		slog.Info("Nothing to save for ingest", "source", src.Name(), "outcome", report.Outcome, "links", len(batch.Candidates))
		return report, nil
	}

	placements := make([]domain.Placement, 0, len(batch.Candidates))
	for _, c := range batch.Candidates {
		placements = append(placements, domain.NewPlacement(c.URL, c.Metadata))
	}

	if err := s.store.SaveBulk(ctx, placements); err != nil {
		return nil, fmt.Errorf("failed to save placements: %w", err)
	}
	report.Placements = placements

	if s.indexer != nil {
		if err := s.indexer.Index(ctx, placements); err != nil {
			slog.Error("Failed to index placements", "error", err, "count", len(placements))
		}
	}

	slog.Info("Ingest completed",
		"source", src.Name(),
		"saved", len(placements),
		"warnings", len(report.Warnings),
		"duration", time.Since(start))
	return report, nil
}

func warnings(b Batch) []Warning {
	out := make([]Warning, 0)
	for _, c := range b.Candidates {
		if c.FetchErr != nil {
			out = append(out, Warning{URL: c.URL, Message: c.FetchErr.Error()})
		}
	}
	return out
}
