package ingest

import (
	"context"
	"log/slog"

	"github.com/DjordjeVuckovic/media-placements/internal/domain"
	"github.com/DjordjeVuckovic/media-placements/internal/ingest/fetcher"
	"github.com/DjordjeVuckovic/media-placements/internal/ingest/links"
)

type MetadataFetcher interface {
	Fetch(ctx context.Context, rawURL string) fetcher.Result
}

// Candidate is one extracted link with whatever metadata could be learned about it.
type Candidate struct {
	URL      string
	Metadata domain.PlacementMetadata
	FetchErr error
}

func (c Candidate) Usable() bool {
	return c.Metadata.Usable()
}

type Outcome int

const (
	OutcomeReady Outcome = iota
	OutcomeNoLinks
	OutcomeNoMetadata
)

func (o Outcome) String() string {
	switch o {
	case OutcomeReady:
		return "ready"
	case OutcomeNoLinks:
		return "no_links"
	case OutcomeNoMetadata:
		return "no_metadata"
	default:
		return "unknown"
	}
}

// Message is the user facing explanation of a batch that cannot be saved.
func (o Outcome) Message() string {
	switch o {
	case OutcomeNoLinks:
		return "No valid media links found in the provided text."
	case OutcomeNoMetadata:
		return "Could not extract media information from the provided links."
	default:
		return ""
	}
}

// Batch holds one candidate per distinct URL in order of first appearance.
type Batch struct {
	Candidates []Candidate
}

func (b Batch) Outcome() Outcome {
	if len(b.Candidates) == 0 {
		return OutcomeNoLinks
	}
	for _, c := range b.Candidates {
		if c.Usable() {
			return OutcomeReady
		}
	}
	return OutcomeNoMetadata
}

type Assembler struct {
	fetcher MetadataFetcher
}

func NewAssembler(f MetadataFetcher) *Assembler {
	return &Assembler{fetcher: f}
}

// Assemble fetches every extracted URL one after another.
func (a *Assembler) Assemble(ctx context.Context, text string) Batch {
	urls := links.Extract(text)
	slog.Info("Extracted links", "count", len(urls))

	batch := Batch{Candidates: make([]Candidate, 0, len(urls))}
	for _, u := range urls {
		res := a.fetcher.Fetch(ctx, u)
		batch.Candidates = append(batch.Candidates, Candidate{
			URL:      u,
			Metadata: res.Metadata,
			FetchErr: res.Err,
		})
	}
	return batch
}
