package storage

import (
	"context"

	"github.com/DjordjeVuckovic/media-placements/internal/domain"
	"github.com/google/uuid"
)

// Indexer keeps a secondary search index in sync with the placement store.
type Indexer interface {
	Index(ctx context.Context, ps []domain.Placement) error
	Remove(ctx context.Context, id uuid.UUID) error
}
