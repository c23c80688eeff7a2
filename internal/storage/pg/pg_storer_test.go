package pg

import (
	"context"
	"flag"
	"os"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/media-placements/internal/domain"
	"github.com/DjordjeVuckovic/media-placements/internal/storage"
	pkgtesting "github.com/DjordjeVuckovic/media-placements/pkg/testing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testCtx  context.Context
	testPool *ConnectionPool
)

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() || os.Getenv("SKIP_INTEGRATION") != "" {
		os.Exit(0)
	}
	testCtx = context.Background()

	pg, err := pkgtesting.NewPGContainer(testCtx, pkgtesting.DefaultPGConfig())
	if err != nil {
		panic(err)
	}

	testPool, err = NewConnectionPool(testCtx, PoolConfig{ConnStr: pg.ConnString})
	if err != nil {
		_ = pg.Terminate()
		panic(err)
	}

	code := m.Run()
	testPool.Close()
	_ = pg.Terminate()
	os.Exit(code)
}

func truncateTables(t *testing.T) {
	t.Helper()
	_, err := testPool.GetConn().Exec(testCtx, "TRUNCATE TABLE media_placements, google_credentials")
	require.NoError(t, err)
}

func newStorer(t *testing.T) *Storer {
	t.Helper()
	truncateTables(t)
	t.Cleanup(func() { truncateTables(t) })
	s, err := NewStorer(testPool)
	require.NoError(t, err)
	return s
}

func TestStorer_SaveAndGet(t *testing.T) {
	// Arrange
	s := newStorer(t)
	d := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	p := domain.NewPlacement("https://example.com/story", domain.PlacementMetadata{
		Title:           "Story",
		Source:          "example.com",
		MediaType:       domain.MediaBlog,
		PublicationDate: &d,
	})

	// Act
	id, err := s.Save(testCtx, p)
	require.NoError(t, err)
	got, err := s.Get(testCtx, id)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "Story", got.Title)
	assert.Equal(t, domain.MediaBlog, got.MediaType)
	require.NotNil(t, got.PublicationDate)
	assert.Equal(t, "2024-03-15", got.PublicationDate.Format(domain.DateLayout))
}

func TestStorer_GetMissing(t *testing.T) {
	s := newStorer(t)

	_, err := s.Get(testCtx, uuid.New())

	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStorer_SaveBulkListAndCount(t *testing.T) {
	// Arrange
	s := newStorer(t)
	base := time.Now().UTC().Add(-time.Hour)
	ps := make([]domain.Placement, 3)
	for i := range ps {
		ps[i] = domain.NewPlacement("https://example.com/"+string(rune('a'+i)), domain.PlacementMetadata{Title: string(rune('A' + i))})
		ps[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
	}

	// Act
	require.NoError(t, s.SaveBulk(testCtx, ps))
	page, err := s.List(testCtx, 1, 2)
	require.NoError(t, err)
	count, err := s.Count(testCtx)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, int64(3), count)
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "C", page.Items[0].Title)
	assert.Equal(t, "B", page.Items[1].Title)
}

func TestStorer_UpdateAndDelete(t *testing.T) {
	s := newStorer(t)
	id, err := s.Save(testCtx, domain.NewPlacement("https://example.com", domain.PlacementMetadata{}))
	require.NoError(t, err)
	p, err := s.Get(testCtx, id)
	require.NoError(t, err)
	p.Notes = "syndicated"
	p.PublicationDate = nil

	require.NoError(t, s.Update(testCtx, *p))
	got, err := s.Get(testCtx, id)
	require.NoError(t, err)
	assert.Equal(t, "syndicated", got.Notes)

	require.NoError(t, s.Delete(testCtx, id))
	assert.ErrorIs(t, s.Delete(testCtx, id), storage.ErrNotFound)
	assert.ErrorIs(t, s.Update(testCtx, *p), storage.ErrNotFound)
}

func TestSearcher_Search(t *testing.T) {
	s := newStorer(t)
	require.NoError(t, s.SaveBulk(testCtx, []domain.Placement{
		domain.NewPlacement("https://news.example.com/a", domain.PlacementMetadata{Title: "Quarterly earnings beat", Source: "news.example.com"}),
		domain.NewPlacement("https://blog.example.com/b", domain.PlacementMetadata{Title: "Hiring update", Source: "blog.example.com"}),
	}))

	res, err := NewSearcher(testPool).Search(testCtx, "earnings", 1, 10)

	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)
	assert.Equal(t, "Quarterly earnings beat", res.Items[0].Title)
}

func TestCredentialStore_Upsert(t *testing.T) {
	// Arrange
	newStorer(t)
	cs := NewCredentialStore(testPool)

	// Act
	_, missingErr := cs.GetGoogleCredential(testCtx)
	first, err := cs.SaveGoogleCredential(testCtx, domain.GoogleCredential{APIKey: "one"})
	require.NoError(t, err)
	second, err := cs.SaveGoogleCredential(testCtx, domain.GoogleCredential{APIKey: "two", RefreshToken: "r"})
	require.NoError(t, err)
	got, err := cs.GetGoogleCredential(testCtx)
	require.NoError(t, err)

	// Assert
	assert.ErrorIs(t, missingErr, storage.ErrNotFound)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "two", got.APIKey)
	assert.Equal(t, "r", got.RefreshToken)
}

func TestHealthChecker(t *testing.T) {
	assert.True(t, NewHealthChecker(testPool).Healthy(testCtx))
	assert.False(t, NewHealthChecker(nil).Healthy(testCtx))
}
