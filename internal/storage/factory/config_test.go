package factory

import (
	"context"
	"testing"

	"github.com/DjordjeVuckovic/media-placements/internal/domain"
	"github.com/DjordjeVuckovic/media-placements/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    storage.Type
		wantEs  bool
		wantErr bool
	}{
		{name: "default in memory", env: map[string]string{}, want: storage.InMem},
		{name: "pg", env: map[string]string{"STORAGE_TYPE": "pg", "PG_CONNECTION_STRING": "postgres://u:p@localhost/db"}, want: storage.PG},
		{name: "pg without connection string", env: map[string]string{"STORAGE_TYPE": "pg"}, wantErr: true},
		{name: "unknown type", env: map[string]string{"STORAGE_TYPE": "mongo"}, wantErr: true},
		{name: "with search index", env: map[string]string{"STORAGE_TYPE": "in_mem", "ES_ADDRESSES": "http://es:9200, http://es2:9200"}, want: storage.InMem, wantEs: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			for _, k := range []string{"STORAGE_TYPE", "PG_CONNECTION_STRING", "ES_ADDRESSES", "ES_INDEX_NAME"} {
				t.Setenv(k, tt.env[k])
			}

			// Act
			cfg, err := LoadEnv()

			// Assert
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Type)
			assert.Equal(t, tt.wantEs, cfg.Es != nil)
			if tt.wantEs {
				assert.Equal(t, []string{"http://es:9200", "http://es2:9200"}, cfg.Es.Addresses)
				assert.Equal(t, "media_placements", cfg.Es.IndexName)
			}
		})
	}
}

func TestNew_InMemory(t *testing.T) {
	// Arrange
	ctx := context.Background()

	// Act
	stores, err := New(ctx, &StorageConfig{Type: storage.InMem})
	require.NoError(t, err)
	defer stores.Close()

	id, err := stores.Placements.Save(ctx, domain.NewPlacement("https://example.com", domain.PlacementMetadata{Title: "x"}))
	require.NoError(t, err)
	page, err := stores.Index.Search(ctx, "x", 1, 10)
	require.NoError(t, err)

	// Assert
	assert.True(t, stores.Health.Healthy(ctx))
	assert.Equal(t, id, page.Items[0].ID)
}

func TestNew_Unsupported(t *testing.T) {
	_, err := New(context.Background(), &StorageConfig{Type: "mongo"})

	assert.Error(t, err)
}
