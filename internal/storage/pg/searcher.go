package pg

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/media-placements/internal/domain"
	"github.com/DjordjeVuckovic/media-placements/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Searcher ranks placements with the generated search_vector column.
// It backs the search endpoint when no Elasticsearch index is configured.
type Searcher struct {
	db *pgxpool.Pool
}

func NewSearcher(pool *ConnectionPool) *Searcher {
	return &Searcher{db: pool.conn}
}

func (s *Searcher) Search(ctx context.Context, query string, page, size int) (*storage.Page, error) {
	slog.Info("Executing pg full-text search", "query", query, "page", page, "size", size)
	req, err := storage.PageRequest(page, size)
	if err != nil {
		return nil, err
	}

	var total int64
	err = s.db.QueryRow(ctx,
		`SELECT count(*) FROM media_placements WHERE search_vector @@ plainto_tsquery('simple', $1)`,
		query,
	).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("failed to count search matches: %w", err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT `+placementColumns+`
		FROM media_placements
		WHERE search_vector @@ plainto_tsquery('simple', $1)
		ORDER BY ts_rank(search_vector, plainto_tsquery('simple', $1)) DESC, created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, query, req.Size, req.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to execute search query: %w", err)
	}
	items, err := collectPlacements(rows)
	if err != nil {
		return nil, err
	}
	return &storage.Page{Items: items, Total: total}, nil
}

// Index is a no-op: the search vector is maintained by Postgres.
func (s *Searcher) Index(context.Context, []domain.Placement) error {
	return nil
}

func (s *Searcher) Remove(context.Context, uuid.UUID) error {
	return nil
}
