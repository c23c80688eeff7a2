package factory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/media-placements/internal/storage"
	"github.com/DjordjeVuckovic/media-placements/internal/storage/es"
	"github.com/DjordjeVuckovic/media-placements/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/media-placements/internal/storage/pg"
	"github.com/DjordjeVuckovic/media-placements/pkg/server"
)

// Stores bundles everything built from a StorageConfig.
type Stores struct {
	Placements  storage.PlacementStore
	Credentials storage.CredentialStore
	// Index is the configured search index, or the primary store's own search.
	Index  storage.Index
	Health server.HealthChecker
	close  func()
}

func (s *Stores) Close() {
	if s.close != nil {
		s.close()
	}
}

func New(ctx context.Context, cfg *StorageConfig) (*Stores, error) {
	stores, err := newPrimary(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Es != nil {
		idx, err := NewIndex(ctx, *cfg.Es)
		if err != nil {
			stores.Close()
			return nil, err
		}
		stores.Index = idx
		stores.Health = server.All(stores.Health, idx)
	}
	slog.Info("Storage initialized", "config", cfg.String())
	return stores, nil
}

func newPrimary(ctx context.Context, cfg *StorageConfig) (*Stores, error) {
	switch cfg.Type {
	case storage.PG:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("invalid config for PostgreSQL storage: pool config is missing")
		}
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		placements, err := pg.NewStorer(pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return &Stores{
			Placements:  placements,
			Credentials: pg.NewCredentialStore(pool),
			Index:       pg.NewSearcher(pool),
			Health:      pg.NewHealthChecker(pool),
			close:       pool.Close,
		}, nil

	case storage.InMem:
		mem := in_mem.NewInMemStorer()
		return &Stores{
			Placements:  mem,
			Credentials: mem,
			Index:       mem,
			Health:      server.NewOkHealthChecker(),
		}, nil

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}
}

func NewIndex(ctx context.Context, cfg es.ClientConfig) (*es.Index, error) {
	idx, err := es.NewIndex(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch index: %w", err)
	}
	return idx, nil
}
