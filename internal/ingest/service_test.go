package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DjordjeVuckovic/media-placements/internal/domain"
	"github.com/DjordjeVuckovic/media-placements/internal/ingest/fetcher"
	"github.com/DjordjeVuckovic/media-placements/internal/source"
	"github.com/DjordjeVuckovic/media-placements/internal/storage/in_mem"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingIndexer struct {
	indexed []domain.Placement
	err     error
}

func (r *recordingIndexer) Index(_ context.Context, ps []domain.Placement) error {
	r.indexed = append(r.indexed, ps...)
	return r.err
}

func (r *recordingIndexer) Remove(context.Context, uuid.UUID) error { return nil }

type failingSource struct{}

func (failingSource) Name() string { return "broken" }
func (failingSource) Text(context.Context) (string, error) {
	return "", errors.New("permission denied")
}

func newTestService(f MetadataFetcher, opts ...ServiceOption) (*Service, *in_mem.InMemStorer) {
	store := in_mem.NewInMemStorer()
	return NewService(NewAssembler(f), store, opts...), store
}

func TestIngest_SavesUsableBatchWithWarnings(t *testing.T) {
	// Arrange
	f := &fakeFetcher{results: map[string]fetcher.Result{
		"https://a.example.com/ok": {Metadata: domain.PlacementMetadata{Title: "OK", Source: "a.example.com", MediaType: domain.MediaArticle}},
	}}
	idx := &recordingIndexer{}
	svc, store := newTestService(f, WithIndexer(idx))

	// Act
	report, err := svc.Ingest(context.Background(), source.Direct("https://a.example.com/ok https://b.example.com/down"))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, OutcomeReady, report.Outcome)
	require.Len(t, report.Placements, 2)
	assert.Equal(t, "OK", report.Placements[0].Title)
	assert.Equal(t, "https://b.example.com/down", report.Placements[1].URL)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, "https://b.example.com/down", report.Warnings[0].URL)

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Len(t, idx.indexed, 2)
}

func TestIngest_NothingPersistedWithoutUsableMetadata(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Outcome
	}{
		{"no links", "no links in here", OutcomeNoLinks},
		{"no metadata", "https://a.example.com https://b.example.com", OutcomeNoMetadata},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestService(&fakeFetcher{})

			report, err := svc.Ingest(context.Background(), source.Direct(tt.text))

			require.NoError(t, err)
			assert.Equal(t, tt.want, report.Outcome)
			assert.Empty(t, report.Placements)
			n, _ := store.Count(context.Background())
			assert.Zero(t, n)
		})
	}
}

func TestIngest_IndexFailureIsNotFatal(t *testing.T) {
	f := &fakeFetcher{results: map[string]fetcher.Result{
		"https://a.example.com": {Metadata: domain.PlacementMetadata{Title: "A"}},
	}}
	svc, _ := newTestService(f, WithIndexer(&recordingIndexer{err: errors.New("es down")}))

	report, err := svc.Ingest(context.Background(), source.Direct("https://a.example.com"))

	require.NoError(t, err)
	assert.Len(t, report.Placements, 1)
}

func TestIngest_SourceErrorPropagates(t *testing.T) {
	svc, _ := newTestService(&fakeFetcher{})

	_, err := svc.Ingest(context.Background(), failingSource{})

	assert.ErrorContains(t, err, "permission denied")
}

func TestFilePipeline_Run(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "links.csv")
	require.NoError(t, os.WriteFile(path, []byte("link\nhttps://a.example.com/x\n"), 0o600))
	f := &fakeFetcher{results: map[string]fetcher.Result{
		"https://a.example.com/x": {Metadata: domain.PlacementMetadata{Title: "X"}},
	}}
	svc, _ := newTestService(f)

	// Act
	report, err := NewFilePipeline(path, svc).Run(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "csv", report.Source)
	assert.Len(t, report.Placements, 1)
}

func TestFilePipeline_MissingFile(t *testing.T) {
	svc, _ := newTestService(&fakeFetcher{})

	_, err := NewFilePipeline(filepath.Join(t.TempDir(), "nope.txt"), svc).Run(context.Background())

	assert.Error(t, err)
}
