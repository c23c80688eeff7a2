package in_mem

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/media-placements/internal/domain"
	"github.com/DjordjeVuckovic/media-placements/internal/storage"
	"github.com/DjordjeVuckovic/media-placements/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placementAt(url, title string, created time.Time) domain.Placement {
	p := domain.NewPlacement(url, domain.PlacementMetadata{Title: title, Source: "example.com"})
	p.CreatedAt = created
	return p
}

func TestInMemStorer_SaveBulkAndList(t *testing.T) {
	// Arrange
	ctx := context.Background()
	s := NewInMemStorer()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ps := []domain.Placement{
		placementAt("https://example.com/1", "one", base),
		placementAt("https://example.com/2", "two", base.Add(time.Hour)),
		placementAt("https://example.com/3", "three", base.Add(2*time.Hour)),
	}

	// Act
	require.NoError(t, s.SaveBulk(ctx, ps))
	first, err := s.List(ctx, 1, 2)
	require.NoError(t, err)
	second, err := s.List(ctx, 2, 2)
	require.NoError(t, err)
	beyond, err := s.List(ctx, 5, 2)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, int64(3), first.Total)
	require.Len(t, first.Items, 2)
	assert.Equal(t, "three", first.Items[0].Title)
	assert.Equal(t, "two", first.Items[1].Title)
	require.Len(t, second.Items, 1)
	assert.Equal(t, "one", second.Items[0].Title)
	assert.Empty(t, beyond.Items)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestInMemStorer_ListRejectsOverflowingPage(t *testing.T) {
	s := NewInMemStorer()
	require.NoError(t, s.SaveBulk(context.Background(), []domain.Placement{
		placementAt("https://example.com/1", "one", time.Now()),
	}))

	_, listErr := s.List(context.Background(), math.MaxInt, 2)
	_, searchErr := s.Search(context.Background(), "one", math.MaxInt, 2)

	assert.ErrorIs(t, listErr, pagination.ErrPageOutOfRange)
	assert.ErrorIs(t, searchErr, pagination.ErrPageOutOfRange)
}

func TestInMemStorer_SaveAssignsIDAndTimestamps(t *testing.T) {
	s := NewInMemStorer()

	id, err := s.Save(context.Background(), domain.Placement{URL: "https://example.com"})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	got, err := s.Get(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Equal(t, domain.MediaArticle, got.MediaType)
}

func TestInMemStorer_UpdateAndDelete(t *testing.T) {
	// Arrange
	ctx := context.Background()
	s := NewInMemStorer()
	id, err := s.Save(ctx, domain.NewPlacement("https://example.com", domain.PlacementMetadata{Title: "before"}))
	require.NoError(t, err)
	p, err := s.Get(ctx, id)
	require.NoError(t, err)
	p.Title = "after"

	// Act
	require.NoError(t, s.Update(ctx, *p))
	updated, err := s.Get(ctx, id)
	require.NoError(t, err)
	delErr := s.Delete(ctx, id)
	_, getErr := s.Get(ctx, id)

	// Assert
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)
	assert.NoError(t, delErr)
	assert.ErrorIs(t, getErr, storage.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, id), storage.ErrNotFound)
	assert.ErrorIs(t, s.Update(ctx, *p), storage.ErrNotFound)
}

func TestInMemStorer_Search(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorer()
	require.NoError(t, s.SaveBulk(ctx, []domain.Placement{
		domain.NewPlacement("https://news.example.com/launch", domain.PlacementMetadata{Title: "Product Launch", Source: "news.example.com"}),
		domain.NewPlacement("https://youtube.com/watch?v=1", domain.PlacementMetadata{Title: "Interview", Source: "youtube.com"}),
	}))

	res, err := s.Search(ctx, "LAUNCH", 1, 10)

	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)
	assert.Equal(t, "Product Launch", res.Items[0].Title)
}

func TestInMemStorer_GoogleCredential(t *testing.T) {
	// Arrange
	ctx := context.Background()
	s := NewInMemStorer()

	// Act
	_, missingErr := s.GetGoogleCredential(ctx)
	first, err := s.SaveGoogleCredential(ctx, domain.GoogleCredential{APIKey: "key-1"})
	require.NoError(t, err)
	second, err := s.SaveGoogleCredential(ctx, domain.GoogleCredential{APIKey: "key-2"})
	require.NoError(t, err)
	got, err := s.GetGoogleCredential(ctx)
	require.NoError(t, err)

	// Assert
	assert.ErrorIs(t, missingErr, storage.ErrNotFound)
	assert.Equal(t, int64(1), second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, "key-2", got.APIKey)
}
